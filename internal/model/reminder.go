package model

import "time"

// Reminder はタスクに紐付く通知設定を表す。
// UserIDは作成時のセッションユーザーで固定され、以後変更されない。
type Reminder struct {
	ID           string
	UserID       string
	TaskID       string
	ReminderDate time.Time
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ReminderWithTask は対象タスクを展開したリマインダー。
// 参照先タスクが削除済みの場合、Taskはnilになる。
type ReminderWithTask struct {
	Reminder
	Task *Task
}

// ReminderPatch はリマインダーの部分更新内容。所有者は含まない。
type ReminderPatch struct {
	TaskID       *string
	ReminderDate *time.Time
	Note         *string
}
