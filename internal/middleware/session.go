// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
)

// SessionCookieName はセッションCookieの名前。値は署名付きのセッションID。
const SessionCookieName = "taskman_sid"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	userIDContextKey    = contextKey("user_id")
	sessionIDContextKey = contextKey("session_id")
)

// SessionFinder はセッションの検索に必要なインターフェース。
// repository.SessionRepositoryの部分集合として定義する。
type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*model.Session, error)
}

// CookieVerifier は署名付きCookie値からセッションIDを取り出すインターフェース。
type CookieVerifier interface {
	Verify(value string) (string, error)
}

// NewSessionMiddleware はセッションCookieを検証し、ログイン済みのリクエストだけを通すガードを返す。
// Cookieがない、署名が不正、セッションが存在しないか期限切れの場合は401を返し、後続のハンドラーは呼ばない。
// 通過したリクエストのコンテキストにはユーザーIDとセッションIDが格納される。
func NewSessionMiddleware(verifier CookieVerifier, sessions SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. CookieからセッションIDを取り出す
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteErrorResponse(w, model.NewUnauthorizedError())
				return
			}
			sessionID, err := verifier.Verify(cookie.Value)
			if err != nil {
				slog.WarnContext(r.Context(), "invalid session cookie", slog.String("path", r.URL.Path))
				WriteErrorResponse(w, model.NewUnauthorizedError())
				return
			}

			// 2. セッションストアで有効性を確認
			session, err := sessions.FindByID(r.Context(), sessionID)
			if err != nil {
				// ストア障害はログアウト扱いにせず500として返す
				WriteError(w, r, fmt.Errorf("failed to find session: %w", err))
				return
			}
			if session == nil {
				WriteErrorResponse(w, model.NewUnauthorizedError())
				return
			}

			// 3. 認証済みユーザーをコンテキストに注入
			ctx := ContextWithSession(r.Context(), session.ID, session.UserID)
			annotateUserID(ctx, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// SessionIDFromContext はリクエストコンテキストからセッションIDを取得する。
func SessionIDFromContext(ctx context.Context) (string, error) {
	sessionID, ok := ctx.Value(sessionIDContextKey).(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("session ID not found in context")
	}
	return sessionID, nil
}

// ContextWithSession はコンテキストにセッションIDとユーザーIDを注入する。
func ContextWithSession(ctx context.Context, sessionID, userID string) context.Context {
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	return context.WithValue(ctx, userIDContextKey, userID)
}

// ContextWithUserID はコンテキストにユーザーIDのみを注入する。テスト用。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
