package repository

import (
	"errors"

	"github.com/lib/pq"
)

// IsInvalidInput はストアが入力値を拒否したエラーかどうかを判定する。
// データ例外（22xxx: 不正なUUID、日付範囲外など）と整合性制約違反（23xxx）が該当する。
// 接続断などそれ以外のエラーはfalseを返す。
func IsInvalidInput(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "22", "23":
		return true
	default:
		return false
	}
}

// IsUniqueViolation は一意制約違反（23505）かどうかを判定する。
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
