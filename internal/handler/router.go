package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hitoshi/taskman/internal/metrics"
	"github.com/hitoshi/taskman/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	SessionFinder     middleware.SessionFinder
	CookieVerifier    middleware.CookieVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	TrustProxy        bool // trueの場合はX-Forwarded-For等からクライアントIPを取得する

	// 運用エンドポイント
	HealthChecker  HealthChecker
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
	Docs           *DocsHandler

	// 認証
	AuthService  AuthServiceInterface
	CookieSigner CookieSigner
	AuthConfig   AuthHandlerConfig

	// リソース
	CategoryService CategoryServiceInterface
	TaskService     TaskServiceInterface
	ReminderService ReminderServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics → RateLimit(General)
//
// セッションガードはリマインダーと/auth/profile、/auth/logoutにだけ適用する。
// タスクとカテゴリは認証なしで操作できる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if deps.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: "Method not allowed"})
	})

	// --- 運用エンドポイント（レート制限の対象外） ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	r.Handle("/metrics", deps.MetricsHandler)

	guard := middleware.NewSessionMiddleware(deps.CookieVerifier, deps.SessionFinder)

	categoryHandler := NewCategoryHandler(deps.CategoryService)
	taskHandler := NewTaskHandler(deps.TaskService)
	reminderHandler := NewReminderHandler(deps.ReminderService)
	authHandler := NewAuthHandler(deps.AuthService, deps.CookieSigner, deps.Metrics, deps.AuthConfig)

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api-docs", deps.Docs.JSON)
		r.Get("/api-docs/openapi.yaml", deps.Docs.YAML)

		// 認証ルート（OAuthフロー）
		r.Route("/auth", func(r chi.Router) {
			r.With(deps.RateLimiter.LoginMiddleware()).Get("/google", authHandler.Login)
			r.With(deps.RateLimiter.LoginMiddleware()).Get("/google/callback", authHandler.Callback)

			r.With(guard).Get("/profile", authHandler.Profile)
			r.With(guard).Get("/logout", authHandler.Logout)
		})

		// カテゴリ管理
		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Post("/", categoryHandler.Create)
			r.Put("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})

		// タスク管理
		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		// リマインダー管理（ログイン必須）
		r.Route("/api/reminders", func(r chi.Router) {
			r.Use(guard)

			r.Get("/", reminderHandler.List)
			r.Post("/", reminderHandler.Create)
			r.Get("/{id}", reminderHandler.Get)
			r.Put("/{id}", reminderHandler.Update)
			r.Delete("/{id}", reminderHandler.Delete)
		})
	})

	return r
}
