package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hyeonsulee/cleanbot-server/internal/api/handlers"
	"github.com/hyeonsulee/cleanbot-server/internal/api/middleware"
	"github.com/hyeonsulee/cleanbot-server/internal/audit"
	"github.com/hyeonsulee/cleanbot-server/internal/auth"
	"github.com/hyeonsulee/cleanbot-server/internal/config"
	"github.com/hyeonsulee/cleanbot-server/internal/embedding"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation/anthropic"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation/gemini"
	"github.com/hyeonsulee/cleanbot-server/internal/moderation/openai"
	"github.com/hyeonsulee/cleanbot-server/internal/queue"
	"github.com/hyeonsulee/cleanbot-server/internal/report"
	"github.com/hyeonsulee/cleanbot-server/internal/vectorstore"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret, cfg.Auth.AdminRole),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(10, 30)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Moderation pipeline wiring
	blacklist := loadBlacklist(rt.cfg.Moderation)
	classifier := newClassifier(rt.cfg.Classifier)
	pipeline := moderation.NewPipeline(
		blacklist,
		classifier,
		signalPolicy(rt.cfg.Moderation),
		moderation.FallbackPolicy{BlockUncheckedImages: rt.cfg.Moderation.BlockUncheckedImages},
		rt.cfg.Classifier.Timeout,
	)

	var auditSvc *audit.Service
	var reportSvc *report.Service
	var embedder *embedding.Service
	var flaggedStore vectorstore.Store
	if rt.db != nil {
		auditSvc = audit.NewService(rt.db)
		reportSvc = report.NewService(rt.db)
		if rt.cfg.Classifier.OpenAIKey != "" {
			embedder = embedding.NewService(rt.cfg.Classifier.OpenAIKey, "")
			flaggedStore = vectorstore.NewPgVectorStore(rt.db)
		}
	}
	queueClient := queue.NewClient(rt.cfg.Redis)

	moderationH := handlers.NewModerationHandler(pipeline, classifier.Name(), auditSvc, queueClient)
	reportH := handlers.NewReportHandler(reportSvc, queueClient)
	adminH := handlers.NewAdminHandler(auditSvc, blacklist)
	flaggedH := handlers.NewFlaggedHandler(embedder, flaggedStore)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		r.Post("/moderations", moderationH.Moderate)
		r.Post("/reports", reportH.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.jwt.RequireAdmin)
			r.Get("/verdicts", adminH.Verdicts)
			r.Get("/stats", adminH.Stats)
			r.Get("/blacklist", adminH.Blacklist)
			r.Get("/reports", reportH.List)
			r.Post("/flagged/similar", flaggedH.Similar)
		})
	})

	return r
}

func loadBlacklist(cfg config.ModerationConfig) *moderation.Blacklist {
	if cfg.BlacklistPath == "" {
		return moderation.DefaultBlacklist()
	}
	b, err := moderation.LoadBlacklist(cfg.BlacklistPath)
	if err != nil {
		slog.Warn("failed to load blacklist file, using builtin set", "path", cfg.BlacklistPath, "error", err)
		return moderation.DefaultBlacklist()
	}
	slog.Info("loaded blacklist", "version", b.Version, "terms", b.Len())
	return b
}

func newClassifier(cfg config.ClassifierConfig) moderation.Classifier {
	switch cfg.Provider {
	case "openai":
		return openai.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	case "anthropic":
		return anthropic.NewClient(cfg.AnthropicKey, cfg.AnthropicModel)
	default:
		return gemini.NewClient(cfg.GeminiKey, cfg.GeminiModel)
	}
}

func signalPolicy(cfg config.ModerationConfig) moderation.SignalPolicy {
	return moderation.SignalPolicy{
		moderation.CategorySexuallyExplicit: moderation.Probability(cfg.SexualThreshold),
		moderation.CategoryDangerousContent: moderation.Probability(cfg.DangerousThreshold),
	}
}
