package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresCategoryRepo はPostgreSQLを使用したカテゴリリポジトリ。
type PostgresCategoryRepo struct {
	db *sqlx.DB
}

// NewPostgresCategoryRepo はPostgresCategoryRepoを生成する。
func NewPostgresCategoryRepo(db *sqlx.DB) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{db: db}
}

type categoryRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (row categoryRow) toModel() *model.Category {
	return &model.Category{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// List は全カテゴリを作成順に返す。
func (r *PostgresCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, created_at, updated_at FROM categories ORDER BY created_at, id`,
	); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toModel())
	}
	return categories, nil
}

// Create はカテゴリを作成する。
func (r *PostgresCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update はカテゴリを部分更新する。見つからない場合はnilを返す。
func (r *PostgresCategoryRepo) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	var row categoryRow
	err := r.db.GetContext(ctx, &row,
		`UPDATE categories SET
		     name = COALESCE($2, name),
		     updated_at = $3
		 WHERE id = $1
		 RETURNING id, name, created_at, updated_at`,
		id, patch.Name, time.Now().UTC(),
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return row.toModel(), nil
}

// Delete はカテゴリを削除する。削除対象が存在しなかった場合はfalseを返す。
func (r *PostgresCategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return affected(result)
}

// affected はDELETE/UPDATEの影響行数が1以上かどうかを返す。
func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// compile-time interface check
var _ CategoryRepository = (*PostgresCategoryRepo)(nil)
