package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/taskman/internal/model"
)

const listTasksWithCategoryQuery = `
SELECT
  t.id, t.title, t.description, t.due_date, t.priority, t.status,
  t.category_id, t.created_at, t.updated_at,
  c.id AS category_ref_id,
  c.name AS category_name
FROM tasks t
LEFT JOIN categories c ON c.id = t.category_id
ORDER BY t.created_at, t.id`

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sqlx.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sqlx.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

type taskRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	DueDate     sql.NullTime   `db:"due_date"`
	Priority    string         `db:"priority"`
	Status      string         `db:"status"`
	CategoryID  sql.NullString `db:"category_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`

	// LEFT JOIN categories の結果。参照先がなければNULL。
	CategoryRefID sql.NullString `db:"category_ref_id"`
	CategoryName  sql.NullString `db:"category_name"`
}

func (row taskRow) toModel() *model.Task {
	task := &model.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    model.Priority(row.Priority),
		Status:      model.TaskStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.CategoryID.Valid {
		value := row.CategoryID.String
		task.CategoryID = &value
	}
	return task
}

// ListWithCategory は全タスクをカテゴリを展開した状態で作成順に返す。
func (r *PostgresTaskRepo) ListWithCategory(ctx context.Context) ([]*model.TaskWithCategory, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksWithCategoryQuery); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*model.TaskWithCategory, 0, len(rows))
	for _, row := range rows {
		item := &model.TaskWithCategory{Task: *row.toModel()}
		if row.CategoryRefID.Valid {
			item.Category = &model.Category{
				ID:   row.CategoryRefID.String,
				Name: row.CategoryName.String,
			}
		}
		tasks = append(tasks, item)
	}
	return tasks, nil
}

// Create はタスクを作成する。
// category_idは既存カテゴリとの整合性を検証しない。
func (r *PostgresTaskRepo) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, due_date, priority, status, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		task.ID, task.Title, task.Description, task.DueDate,
		string(task.Priority), string(task.Status), task.CategoryID,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Update はタスクを部分更新する。nilのフィールドは既存の値を維持する。
// 見つからない場合はnilを返す。
func (r *PostgresTaskRepo) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	var priority, status *string
	if patch.Priority != nil {
		v := string(*patch.Priority)
		priority = &v
	}
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}

	var row taskRow
	err := r.db.GetContext(ctx, &row,
		`UPDATE tasks SET
		     title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     due_date = COALESCE($4, due_date),
		     priority = COALESCE($5, priority),
		     status = COALESCE($6, status),
		     category_id = COALESCE($7::uuid, category_id),
		     updated_at = $8
		 WHERE id = $1
		 RETURNING id, title, description, due_date, priority, status, category_id, created_at, updated_at`,
		id, patch.Title, patch.Description, patch.DueDate, priority, status, patch.CategoryID, time.Now().UTC(),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return row.toModel(), nil
}

// Delete はタスクを削除する。削除対象が存在しなかった場合はfalseを返す。
func (r *PostgresTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return affected(result)
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
