// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// CreateInput はタスク作成時の入力値。
// PriorityとStatusは空の場合に既定値（medium / pending）が適用される。
type CreateInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    model.Priority
	Status      model.TaskStatus
	CategoryID  *string
}

// Service はタスク管理のサービス層。
// タスクには所有者がなく、認証の有無にかかわらず誰でも参照・変更できる。
type Service struct {
	repo repository.TaskRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.TaskRepository) *Service {
	return &Service{repo: repo}
}

// List は全タスクをカテゴリを展開した状態で返す。
func (s *Service) List(ctx context.Context) ([]*model.TaskWithCategory, error) {
	tasks, err := s.repo.ListWithCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	return tasks, nil
}

// Create はタスクを作成する。
// ストアが入力値を拒否した場合（不正なカテゴリIDなど）は400の検証エラーとして返す。
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Task, error) {
	// 1. 必須チェック（テキストは入力どおりに保存する）
	if strings.TrimSpace(in.Title) == "" {
		return nil, model.NewValidationError("Title is required")
	}

	// 2. 列挙値の既定値適用と検証
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return nil, model.NewValidationError("Priority must be one of low, medium, high")
	}
	status := in.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	if !status.Valid() {
		return nil, model.NewValidationError("Status must be one of pending, completed")
	}

	// 3. 永続化
	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      status,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		if repository.IsInvalidInput(err) {
			return nil, model.NewValidationError("Task validation failed")
		}
		return nil, fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}

	return task, nil
}

// Update はタスクを部分更新し、マージ後のタスクを返す。
// patchでnilのフィールドは既存の値を維持する。
func (s *Service) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, model.NewValidationError("Title must not be empty")
		}
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, model.NewValidationError("Priority must be one of low, medium, high")
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, model.NewValidationError("Status must be one of pending, completed")
	}

	task, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError()
	}
	return task, nil
}

// Delete はタスクを削除する。タスクを参照するリマインダーは削除しない。
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewTaskNotFoundError()
	}
	return nil
}
