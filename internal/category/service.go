// Package category はカテゴリ管理のドメインロジックを提供する。
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// Service はカテゴリ管理のサービス層。
// カテゴリはユーザーに紐付かず、全ユーザーで共有される。
type Service struct {
	repo repository.CategoryRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.CategoryRepository) *Service {
	return &Service{repo: repo}
}

// List は全カテゴリを作成順に返す。
func (s *Service) List(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("カテゴリ一覧の取得に失敗しました: %w", err)
	}
	return categories, nil
}

// Create はカテゴリを作成する。nameは空白のみであってはならず、入力どおりに保存する。
func (s *Service) Create(ctx context.Context, name string) (*model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.NewValidationError("Category name is required")
	}

	now := time.Now().UTC()
	category := &model.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("カテゴリの作成に失敗しました: %w", err)
	}
	return category, nil
}

// Update はカテゴリを部分更新する。patch.Nameがnilの場合は名前を変更しない。
func (s *Service) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, model.NewValidationError("Category name must not be empty")
		}
	}

	category, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("カテゴリの更新に失敗しました: %w", err)
	}
	if category == nil {
		return nil, model.NewCategoryNotFoundError()
	}
	return category, nil
}

// Delete はカテゴリを削除する。このカテゴリを参照するタスクはそのまま残る。
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("カテゴリの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewCategoryNotFoundError()
	}
	return nil
}
