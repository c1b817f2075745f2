package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/reminder"
	"github.com/hitoshi/taskman/internal/task"
)

// maxBodyBytes はリクエストボディの上限サイズ。
const maxBodyBytes = 1 << 20

// dateLayouts は日付フィールドとして受け付ける書式。日付のみの場合はUTCの0時として扱う。
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// decodeJSON はリクエストボディをdstにデコードする。
// 未知のフィールドは無視する。空のボディは空オブジェクトとして扱う。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return model.NewInvalidRequestError()
	}
	return nil
}

// parseDate は日付文字列を解析する。解析できない場合はfieldを含む検証エラーを返す。
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, model.NewValidationError(field + " must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}

// nonEmpty は空文字を未指定として扱う。
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// categoryRequest はカテゴリ作成・更新リクエストのボディ。
type categoryRequest struct {
	Name *string `json:"name"`
}

func (req categoryRequest) patch() model.CategoryPatch {
	return model.CategoryPatch{Name: req.Name}
}

// taskRequest はタスク作成・更新リクエストのボディ。
// 作成時はtitleのみ必須で、更新時は指定されたフィールドだけをマージする。
type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Category    *string `json:"category"`
}

// createInput は作成用の入力値に変換する。列挙値の検証はサービス層で行う。
func (req taskRequest) createInput() (task.CreateInput, error) {
	in := task.CreateInput{CategoryID: nonEmpty(req.Category)}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Priority != nil {
		in.Priority = model.Priority(*req.Priority)
	}
	if req.Status != nil {
		in.Status = model.TaskStatus(*req.Status)
	}
	if due := nonEmpty(req.DueDate); due != nil {
		t, err := parseDate("dueDate", *due)
		if err != nil {
			return task.CreateInput{}, err
		}
		in.DueDate = &t
	}
	return in, nil
}

func (req taskRequest) patch() (model.TaskPatch, error) {
	p := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  nonEmpty(req.Category),
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		p.Priority = &priority
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		p.Status = &status
	}
	if due := nonEmpty(req.DueDate); due != nil {
		t, err := parseDate("dueDate", *due)
		if err != nil {
			return model.TaskPatch{}, err
		}
		p.DueDate = &t
	}
	return p, nil
}

// reminderRequest はリマインダー作成・更新リクエストのボディ。
type reminderRequest struct {
	TaskID       *string `json:"taskId"`
	ReminderDate *string `json:"reminderDate"`
	Note         *string `json:"note"`
}

// createInput は作成用の入力値に変換する。
// いずれかのフィールドが欠けていれば、日付の形式を見る前に400 "All fields are required"を返す。
func (req reminderRequest) createInput() (reminder.CreateInput, error) {
	if nonEmpty(req.TaskID) == nil || nonEmpty(req.ReminderDate) == nil || nonEmpty(req.Note) == nil {
		return reminder.CreateInput{}, model.NewMissingFieldsError()
	}
	date, err := parseDate("reminderDate", *req.ReminderDate)
	if err != nil {
		return reminder.CreateInput{}, err
	}
	return reminder.CreateInput{TaskID: *req.TaskID, ReminderDate: date, Note: *req.Note}, nil
}

func (req reminderRequest) patch() (model.ReminderPatch, error) {
	p := model.ReminderPatch{TaskID: req.TaskID, Note: req.Note}
	if req.ReminderDate != nil {
		date, err := parseDate("reminderDate", *req.ReminderDate)
		if err != nil {
			return model.ReminderPatch{}, err
		}
		p.ReminderDate = &date
	}
	return p, nil
}
