package model

import "time"

// Priority はタスクの優先度を表す。
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid は定義済みの優先度かどうかを返す。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// TaskStatus はタスクの進捗状態を表す。
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid は定義済みの状態かどうかを返す。
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// Category はタスクを分類するラベル。
// ユーザーとの所有関係は持たず、全ユーザーで共有される。
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryPatch はカテゴリの部分更新内容。nilのフィールドは変更しない。
type CategoryPatch struct {
	Name *string
}

// Task は作業項目を表す。
// CategoryIDは既存カテゴリとの整合性を検証しないため、削除済みカテゴリを指すことがある。
type Task struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Status      TaskStatus
	CategoryID  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskWithCategory はカテゴリを展開したタスク。
// CategoryIDが未設定、または参照先が存在しない場合、Categoryはnilになる。
type TaskWithCategory struct {
	Task
	Category *Category
}

// TaskPatch はタスクの部分更新内容。nilのフィールドは変更しない。
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority
	Status      *TaskStatus
	CategoryID  *string
}
