package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// writeJSON はステータスコードとJSONボディを書き込む。
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// messageResponse は削除やログアウトの確認メッセージ。
type messageResponse struct {
	Message string `json:"message"`
}

type categoryResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCategoryResponse(c *model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// categoryRef はタスク一覧で展開されるカテゴリ。
type categoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// taskResponse は作成・更新時のタスク。categoryはIDのまま返す。
type taskResponse struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Category    *string    `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Category:    t.CategoryID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// taskListResponse は一覧時のタスク。categoryを{_id, name}に展開し、参照先がなければnullにする。
type taskListResponse struct {
	taskResponse
	Category *categoryRef `json:"category"`
}

func toTaskListResponse(t *model.TaskWithCategory) taskListResponse {
	resp := taskListResponse{taskResponse: toTaskResponse(&t.Task)}
	if t.Category != nil {
		resp.Category = &categoryRef{ID: t.Category.ID, Name: t.Category.Name}
	}
	return resp
}

// reminderResponse は単体取得・作成・更新時のリマインダー。taskIdはIDのまま返す。
type reminderResponse struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	TaskID       string    `json:"taskId"`
	ReminderDate time.Time `json:"reminderDate"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toReminderResponse(r *model.Reminder) reminderResponse {
	return reminderResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		TaskID:       r.TaskID,
		ReminderDate: r.ReminderDate,
		Note:         r.Note,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// reminderListResponse は一覧時のリマインダー。taskIdを対象タスクに展開し、参照先がなければnullにする。
type reminderListResponse struct {
	reminderResponse
	TaskID *taskResponse `json:"taskId"`
}

func toReminderListResponse(r *model.ReminderWithTask) reminderListResponse {
	resp := reminderListResponse{reminderResponse: toReminderResponse(&r.Reminder)}
	if r.Task != nil {
		t := toTaskResponse(r.Task)
		resp.TaskID = &t
	}
	return resp
}

// profileResponse はログインユーザーのプロフィール。
type profileResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
