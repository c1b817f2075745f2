// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskman/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error

	// UpdateProfile はユーザーの表示名とメールアドレスを更新する。
	UpdateProfile(ctx context.Context, id, name, email string) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByProviderAndProviderUserID はproviderとprovider_user_idでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
// アクセスガードと認証フローの両方に注入される。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
}

// CategoryRepository はカテゴリデータの永続化インターフェース。
type CategoryRepository interface {
	// List は全カテゴリを作成順に返す。
	List(ctx context.Context) ([]*model.Category, error)

	// Create はカテゴリを作成する。
	Create(ctx context.Context, category *model.Category) error

	// Update はカテゴリを部分更新し、更新後のカテゴリを返す。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error)

	// Delete はカテゴリを削除する。削除対象が存在しなかった場合はfalseを返す。
	// カテゴリを参照するタスクは変更しない。
	Delete(ctx context.Context, id string) (bool, error)
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// ListWithCategory は全タスクをカテゴリを展開した状態で作成順に返す。
	ListWithCategory(ctx context.Context) ([]*model.TaskWithCategory, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// Update はタスクを部分更新し、更新後のタスクを返す。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)

	// Delete はタスクを削除する。削除対象が存在しなかった場合はfalseを返す。
	// タスクを参照するリマインダーは変更しない。
	Delete(ctx context.Context, id string) (bool, error)
}

// ReminderRepository はリマインダーデータの永続化インターフェース。
// すべての操作は所有者IDで絞り込まれ、他ユーザーのレコードは存在しないものとして扱われる。
type ReminderRepository interface {
	// ListByUserWithTask はユーザーのリマインダーを対象タスクを展開した状態で作成順に返す。
	ListByUserWithTask(ctx context.Context, userID string) ([]*model.ReminderWithTask, error)

	// FindByIDAndUser は{id, user_id}でリマインダーを取得する。見つからない場合はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Reminder, error)

	// Create はリマインダーを作成する。
	Create(ctx context.Context, reminder *model.Reminder) error

	// UpdateByIDAndUser は{id, user_id}に一致するリマインダーを部分更新する。
	// 見つからない場合はnilを返す。
	UpdateByIDAndUser(ctx context.Context, id, userID string, patch model.ReminderPatch) (*model.Reminder, error)

	// DeleteByIDAndUser は{id, user_id}に一致するリマインダーを削除する。
	// 削除対象が存在しなかった場合はfalseを返す。
	DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error)
}
