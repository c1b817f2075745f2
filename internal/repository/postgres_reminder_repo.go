package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/taskman/internal/model"
)

const reminderColumns = `id, user_id, task_id, reminder_date, note, created_at, updated_at`

const listRemindersWithTaskQuery = `
SELECT
  r.id, r.user_id, r.task_id, r.reminder_date, r.note, r.created_at, r.updated_at,
  t.id AS task_ref_id,
  t.title AS task_title,
  t.description AS task_description,
  t.due_date AS task_due_date,
  t.priority AS task_priority,
  t.status AS task_status,
  t.category_id AS task_category_id,
  t.created_at AS task_created_at,
  t.updated_at AS task_updated_at
FROM reminders r
LEFT JOIN tasks t ON t.id = r.task_id
WHERE r.user_id = $1
ORDER BY r.created_at, r.id`

// PostgresReminderRepo はPostgreSQLを使用したリマインダーリポジトリ。
// 全てのクエリは所有者IDで絞り込む。
type PostgresReminderRepo struct {
	db *sqlx.DB
}

// NewPostgresReminderRepo はPostgresReminderRepoを生成する。
func NewPostgresReminderRepo(db *sqlx.DB) *PostgresReminderRepo {
	return &PostgresReminderRepo{db: db}
}

type reminderRow struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	TaskID       string    `db:"task_id"`
	ReminderDate time.Time `db:"reminder_date"`
	Note         string    `db:"note"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row reminderRow) toModel() *model.Reminder {
	return &model.Reminder{
		ID:           row.ID,
		UserID:       row.UserID,
		TaskID:       row.TaskID,
		ReminderDate: row.ReminderDate,
		Note:         row.Note,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// reminderWithTaskRow はLEFT JOIN tasksの結果行。タスクが存在しない場合task_*は全てNULL。
type reminderWithTaskRow struct {
	reminderRow

	TaskRefID       sql.NullString `db:"task_ref_id"`
	TaskTitle       sql.NullString `db:"task_title"`
	TaskDescription sql.NullString `db:"task_description"`
	TaskDueDate     sql.NullTime   `db:"task_due_date"`
	TaskPriority    sql.NullString `db:"task_priority"`
	TaskStatus      sql.NullString `db:"task_status"`
	TaskCategoryID  sql.NullString `db:"task_category_id"`
	TaskCreatedAt   sql.NullTime   `db:"task_created_at"`
	TaskUpdatedAt   sql.NullTime   `db:"task_updated_at"`
}

func (row reminderWithTaskRow) task() *model.Task {
	if !row.TaskRefID.Valid {
		return nil
	}
	t := taskRow{
		ID:          row.TaskRefID.String,
		Title:       row.TaskTitle.String,
		Description: row.TaskDescription.String,
		DueDate:     row.TaskDueDate,
		Priority:    row.TaskPriority.String,
		Status:      row.TaskStatus.String,
		CategoryID:  row.TaskCategoryID,
		CreatedAt:   row.TaskCreatedAt.Time,
		UpdatedAt:   row.TaskUpdatedAt.Time,
	}
	return t.toModel()
}

// ListByUserWithTask はユーザーのリマインダーを対象タスクを展開した状態で作成順に返す。
func (r *PostgresReminderRepo) ListByUserWithTask(ctx context.Context, userID string) ([]*model.ReminderWithTask, error) {
	var rows []reminderWithTaskRow
	if err := r.db.SelectContext(ctx, &rows, listRemindersWithTaskQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}

	reminders := make([]*model.ReminderWithTask, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, &model.ReminderWithTask{
			Reminder: *row.reminderRow.toModel(),
			Task:     row.task(),
		})
	}
	return reminders, nil
}

// FindByIDAndUser は{id, user_id}でリマインダーを取得する。見つからない場合はnilを返す。
func (r *PostgresReminderRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Reminder, error) {
	var row reminderRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}
	return row.toModel(), nil
}

// Create はリマインダーを作成する。task_idの存在は検証しない。
func (r *PostgresReminderRepo) Create(ctx context.Context, reminder *model.Reminder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (`+reminderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		reminder.ID, reminder.UserID, reminder.TaskID, reminder.ReminderDate,
		reminder.Note, reminder.CreatedAt, reminder.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// UpdateByIDAndUser は{id, user_id}に一致するリマインダーを部分更新する。
// user_idは更新対象に含めない。見つからない場合はnilを返す。
func (r *PostgresReminderRepo) UpdateByIDAndUser(ctx context.Context, id, userID string, patch model.ReminderPatch) (*model.Reminder, error) {
	var row reminderRow
	err := r.db.GetContext(ctx, &row,
		`UPDATE reminders SET
		     task_id = COALESCE($3::uuid, task_id),
		     reminder_date = COALESCE($4, reminder_date),
		     note = COALESCE($5, note),
		     updated_at = $6
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+reminderColumns,
		id, userID, patch.TaskID, patch.ReminderDate, patch.Note, time.Now().UTC(),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return row.toModel(), nil
}

// DeleteByIDAndUser は{id, user_id}に一致するリマインダーを削除する。
func (r *PostgresReminderRepo) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder: %w", err)
	}
	return affected(result)
}

// compile-time interface check
var _ ReminderRepository = (*PostgresReminderRepo)(nil)
