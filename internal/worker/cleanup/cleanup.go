// Package cleanup は期限切れセッションの削除と孤立参照の報告を行うワンショットジョブを提供する。
// タスクやリマインダーの孤立参照は報告のみ行い、削除はしない。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Store はジョブが使用するSQL操作を抽象化するインターフェース。
// *sqlx.DB を受け付けることができる。
type Store interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

const (
	deleteExpiredSessionsQuery = `DELETE FROM sessions WHERE expires_at <= now()`
	countExpiredSessionsQuery  = `SELECT count(*) FROM sessions WHERE expires_at <= now()`

	countOrphanRemindersQuery = `SELECT count(*) FROM reminders r
		 LEFT JOIN tasks t ON t.id = r.task_id
		 WHERE t.id IS NULL`

	countOrphanTasksQuery = `SELECT count(*) FROM tasks t
		 LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.category_id IS NOT NULL AND c.id IS NULL`
)

// Result はジョブ1回分の実行結果。
type Result struct {
	ExpiredSessions int64 // 削除した（DryRun時は削除対象の）セッション数
	OrphanReminders int64 // 存在しないタスクを参照するリマインダー数
	OrphanTasks     int64 // 存在しないカテゴリを参照するタスク数
}

// CleanupJob は期限切れセッションを削除するジョブ。
// 冪等であり、何度実行しても結果は変わらない。
type CleanupJob struct {
	db     Store
	logger *slog.Logger

	DryRun        bool // trueの場合は件数の集計のみ行い削除しない
	ReportOrphans bool // trueの場合は孤立参照の件数をログに出力する
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(db Store, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		db:     db,
		logger: logger,
	}
}

// Run はジョブを実行する。
func (j *CleanupJob) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{}

	// 1. 期限切れセッションを削除する（DryRun時は数えるだけ）
	expired, err := j.expireSessions(ctx)
	if err != nil {
		j.logger.Error("期限切れセッションの削除に失敗しました",
			slog.String("error", err.Error()),
			slog.Bool("dry_run", j.DryRun),
		)
		return nil, err
	}
	result.ExpiredSessions = expired

	// 2. 孤立参照を集計する
	if j.ReportOrphans {
		if err := j.countOrphans(ctx, result); err != nil {
			j.logger.Error("孤立参照の集計に失敗しました",
				slog.String("error", err.Error()),
			)
			return nil, err
		}
		j.logger.Info("孤立参照を検出しました",
			slog.Int64("orphan_reminders", result.OrphanReminders),
			slog.Int64("orphan_tasks", result.OrphanTasks),
		)
	}

	j.logger.Info("クリーンアップジョブが完了しました",
		slog.Int64("expired_sessions", result.ExpiredSessions),
		slog.Bool("dry_run", j.DryRun),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return result, nil
}

func (j *CleanupJob) expireSessions(ctx context.Context) (int64, error) {
	if j.DryRun {
		var count int64
		if err := j.db.GetContext(ctx, &count, countExpiredSessionsQuery); err != nil {
			return 0, fmt.Errorf("期限切れセッションの集計に失敗: %w", err)
		}
		return count, nil
	}

	res, err := j.db.ExecContext(ctx, deleteExpiredSessionsQuery)
	if err != nil {
		return 0, fmt.Errorf("期限切れセッションの削除に失敗: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}
	return deleted, nil
}

func (j *CleanupJob) countOrphans(ctx context.Context, result *Result) error {
	if err := j.db.GetContext(ctx, &result.OrphanReminders, countOrphanRemindersQuery); err != nil {
		return fmt.Errorf("孤立リマインダーの集計に失敗: %w", err)
	}
	if err := j.db.GetContext(ctx, &result.OrphanTasks, countOrphanTasksQuery); err != nil {
		return fmt.Errorf("孤立タスクの集計に失敗: %w", err)
	}
	return nil
}
