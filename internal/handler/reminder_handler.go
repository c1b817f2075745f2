package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/reminder"
)

// ReminderServiceInterface はリマインダーハンドラーが必要とするサービスインターフェース。
type ReminderServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.ReminderWithTask, error)
	Get(ctx context.Context, id, userID string) (*model.Reminder, error)
	Create(ctx context.Context, userID string, in reminder.CreateInput) (*model.Reminder, error)
	Update(ctx context.Context, id, userID string, patch model.ReminderPatch) (*model.Reminder, error)
	Delete(ctx context.Context, id, userID string) error
}

// ReminderHandler はリマインダー管理のHTTPハンドラー。
// セッションミドルウェアの内側で使用し、常にログインユーザーのリマインダーだけを扱う。
type ReminderHandler struct {
	service ReminderServiceInterface
}

// NewReminderHandler はReminderHandlerを生成する。
func NewReminderHandler(service ReminderServiceInterface) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// sessionUser はガードが注入したユーザーIDを返す。取得できなければ401を書き込みfalseを返す。
func sessionUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteErrorResponse(w, model.NewUnauthorizedError())
		return "", false
	}
	return userID, true
}

// List はログインユーザーのリマインダーを対象タスクを展開した状態で返す。
// GET /api/reminders
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	reminders, err := h.service.List(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	resp := make([]reminderListResponse, 0, len(reminders))
	for _, rem := range reminders {
		resp = append(resp, toReminderListResponse(rem))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get はログインユーザーのリマインダーを1件返す。
// GET /api/reminders/{id}
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	rem, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReminderResponse(rem))
}

// Create はリマインダーを作成する。所有者はセッションのユーザーになる。
// POST /api/reminders
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req reminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	in, err := req.createInput()
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	rem, err := h.service.Create(r.Context(), userID, in)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReminderResponse(rem))
}

// Update はログインユーザーのリマインダーを部分更新する。所有者は変更できない。
// PUT /api/reminders/{id}
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	var req reminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	rem, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), userID, patch)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReminderResponse(rem))
}

// Delete はログインユーザーのリマインダーを削除する。
// DELETE /api/reminders/{id}
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := sessionUser(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		middleware.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Reminder deleted"})
}
