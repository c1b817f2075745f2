// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"net/http"
)

// APIError は統一エラーフォーマットを表す。
// Statusが設定されていればそのHTTPステータスで応答し、0の場合は500として扱う。
type APIError struct {
	Status   int    // HTTPステータスコード
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, system
	Action   string // クライアント向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// HTTPStatus は応答に使用するHTTPステータスコードを返す。
func (e *APIError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// 定義済みエラーコード
const (
	ErrCodeTaskNotFound     = "TASK_NOT_FOUND"
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeReminderNotFound = "REMINDER_NOT_FOUND"
	ErrCodeUserNotFound     = "USER_NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeMissingFields    = "MISSING_FIELDS"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// NewTaskNotFoundError はタスク未検出エラーを生成する。
func NewTaskNotFoundError() *APIError {
	return &APIError{
		Status:   http.StatusNotFound,
		Code:     ErrCodeTaskNotFound,
		Message:  "Task not found",
		Category: "resource",
		Action:   "Check the task ID.",
	}
}

// NewCategoryNotFoundError はカテゴリ未検出エラーを生成する。
func NewCategoryNotFoundError() *APIError {
	return &APIError{
		Status:   http.StatusNotFound,
		Code:     ErrCodeCategoryNotFound,
		Message:  "Category not found",
		Category: "resource",
		Action:   "Check the category ID.",
	}
}

// NewReminderNotFoundError はリマインダー未検出エラーを生成する。
// 他ユーザー所有のリマインダーへのアクセスもこのエラーになり、存在の有無は区別しない。
func NewReminderNotFoundError() *APIError {
	return &APIError{
		Status:   http.StatusNotFound,
		Code:     ErrCodeReminderNotFound,
		Message:  "Reminder not found",
		Category: "resource",
		Action:   "Check the reminder ID.",
	}
}

// NewUserNotFoundError はセッションに紐付くユーザーが存在しない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Status:   http.StatusUnauthorized,
		Code:     ErrCodeUserNotFound,
		Message:  "Not logged in",
		Category: "auth",
		Action:   "Log in again.",
	}
}

// NewValidationError は入力値の検証エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Status:   http.StatusBadRequest,
		Code:     ErrCodeValidation,
		Message:  message,
		Category: "validation",
		Action:   "Fix the request body and try again.",
	}
}

// NewMissingFieldsError は必須フィールドが欠けている場合のエラーを生成する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Status:   http.StatusBadRequest,
		Code:     ErrCodeMissingFields,
		Message:  "All fields are required",
		Category: "validation",
		Action:   "Provide taskId, reminderDate and note.",
	}
}

// NewInvalidRequestError はリクエストボディが解析できない場合のエラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Status:   http.StatusBadRequest,
		Code:     ErrCodeInvalidRequest,
		Message:  "Invalid request body",
		Category: "validation",
		Action:   "Send a valid JSON object.",
	}
}

// NewUnauthorizedError は未ログインエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Status:   http.StatusUnauthorized,
		Code:     ErrCodeUnauthorized,
		Message:  "Not logged in",
		Category: "auth",
		Action:   "Log in with Google at /auth/google.",
	}
}

// NewRateLimitedError はレート制限超過エラーを生成する。
func NewRateLimitedError() *APIError {
	return &APIError{
		Status:   http.StatusTooManyRequests,
		Code:     ErrCodeRateLimited,
		Message:  "Too many requests",
		Category: "system",
		Action:   "Wait and retry after the time given in Retry-After.",
	}
}

// NewInternalError は内部エラーを生成する。詳細はログのみに記録する。
func NewInternalError() *APIError {
	return &APIError{
		Status:   http.StatusInternalServerError,
		Code:     ErrCodeInternal,
		Message:  "Internal server error",
		Category: "system",
		Action:   "Try again later.",
	}
}
