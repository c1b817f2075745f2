package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCookie は署名のない、または改ざんされたセッションCookieを表す。
var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieSigner はセッションIDにHMAC-SHA256署名を付与・検証する。
// Cookieの値は "<sessionID>.<base64url(署名)>" 形式になる。
type CookieSigner struct {
	secret []byte
}

// NewCookieSigner はSESSION_SECRETを鍵とするCookieSignerを生成する。
func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

// Sign はセッションIDに署名を付与したCookie値を返す。
func (s *CookieSigner) Sign(sessionID string) string {
	return sessionID + "." + base64.RawURLEncoding.EncodeToString(s.mac(sessionID))
}

// Verify はCookie値の署名を検証し、セッションIDを返す。
func (s *CookieSigner) Verify(value string) (string, error) {
	i := strings.LastIndexByte(value, '.')
	if i <= 0 || i == len(value)-1 {
		return "", ErrInvalidCookie
	}
	sessionID, encoded := value[:i], value[i+1:]

	sig, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCookie
	}
	if !hmac.Equal(sig, s.mac(sessionID)) {
		return "", ErrInvalidCookie
	}
	return sessionID, nil
}

func (s *CookieSigner) mac(sessionID string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(sessionID))
	return h.Sum(nil)
}
