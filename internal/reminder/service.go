// Package reminder はリマインダー管理のドメインロジックを提供する。
//
// すべての操作はセッションユーザーのIDで絞り込まれる。他ユーザーのリマインダーは
// 存在しないものと同じ404として扱い、存在の有無を区別しない。
package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// CreateInput はリマインダー作成時の入力値。全フィールド必須。
type CreateInput struct {
	TaskID       string
	ReminderDate time.Time
	Note         string
}

// Service はリマインダー管理のサービス層。
type Service struct {
	repo repository.ReminderRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ReminderRepository) *Service {
	return &Service{repo: repo}
}

// List はユーザーのリマインダーを対象タスクを展開した状態で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.ReminderWithTask, error) {
	reminders, err := s.repo.ListByUserWithTask(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("リマインダー一覧の取得に失敗しました: %w", err)
	}
	return reminders, nil
}

// Get はユーザーが所有するリマインダーを1件返す。
func (s *Service) Get(ctx context.Context, id, userID string) (*model.Reminder, error) {
	reminder, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("リマインダーの取得に失敗しました: %w", err)
	}
	if reminder == nil {
		return nil, model.NewReminderNotFoundError()
	}
	return reminder, nil
}

// Create はリマインダーを作成する。所有者は常にuserIDになる。
// taskIdの参照先タスクが存在するかは検証しない。
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*model.Reminder, error) {
	if in.TaskID == "" || in.ReminderDate.IsZero() || strings.TrimSpace(in.Note) == "" {
		return nil, model.NewMissingFieldsError()
	}

	now := time.Now().UTC()
	reminder := &model.Reminder{
		ID:           uuid.New().String(),
		UserID:       userID,
		TaskID:       in.TaskID,
		ReminderDate: in.ReminderDate,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		if repository.IsInvalidInput(err) {
			return nil, model.NewValidationError("Reminder validation failed")
		}
		return nil, fmt.Errorf("リマインダーの作成に失敗しました: %w", err)
	}

	return reminder, nil
}

// Update はユーザーが所有するリマインダーを部分更新する。
func (s *Service) Update(ctx context.Context, id, userID string, patch model.ReminderPatch) (*model.Reminder, error) {
	if patch.Note != nil {
		if strings.TrimSpace(*patch.Note) == "" {
			return nil, model.NewValidationError("Note must not be empty")
		}
	}
	if patch.TaskID != nil && *patch.TaskID == "" {
		return nil, model.NewValidationError("taskId must not be empty")
	}

	reminder, err := s.repo.UpdateByIDAndUser(ctx, id, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("リマインダーの更新に失敗しました: %w", err)
	}
	if reminder == nil {
		return nil, model.NewReminderNotFoundError()
	}
	return reminder, nil
}

// Delete はユーザーが所有するリマインダーを削除する。
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	deleted, err := s.repo.DeleteByIDAndUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("リマインダーの削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.NewReminderNotFoundError()
	}
	return nil
}
