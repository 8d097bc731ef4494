package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/boardkit/member-system/internal/api/handler"
	"github.com/boardkit/member-system/internal/api/middleware"
	"github.com/boardkit/member-system/internal/api/session"
	"github.com/boardkit/member-system/internal/core/domain"
	"github.com/boardkit/member-system/internal/core/ports"
	"github.com/boardkit/member-system/internal/core/service"
	mongodb "github.com/boardkit/member-system/internal/infrastructure/db/mongo"
	redisdb "github.com/boardkit/member-system/internal/infrastructure/db/redis"
	"github.com/boardkit/member-system/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered. audit is
// the sink auth and migration outcomes are reported to; pass nil to
// disable audit recording.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("member_system"))

	// --- Stores ---
	memberRepo := mongodb.NewMemberRepository(db)
	legacyRepo := mongodb.NewLegacyMemberRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Auth services: the selector fixes the mode for the process ---
	standard := service.NewStandardAuthService(memberRepo, audit, log)
	dual := service.NewDualAuthService(memberRepo, legacyRepo, audit, log)
	selector := service.NewSelector(cfg.DualAuthEnabled, standard, dual)

	migrations := service.NewMigrationCoordinator(selector.Select(), memberRepo, legacyRepo, audit, log)

	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, cfg.RememberTTL, redisdb.NewTokenDenylist(rdb))
	authRequired := middleware.Auth(sessions)
	adminOnly := middleware.RequireLevel(domain.LevelAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(selector, sessions)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.GET("/auth/mode", authHandler.Mode)

	// --- Admin routes ---
	migrationHandler := handler.NewMigrationHandler(migrations)
	memberHandler := handler.NewMemberHandler(memberRepo)
	auditHandler := handler.NewAuditHandler(auditRepo)

	admin := e.Group("/admin", authRequired, adminOnly)
	admin.POST("/migrations", migrationHandler.Migrate)
	admin.POST("/migrations/batch", migrationHandler.MigrateBatch)
	admin.GET("/migrations/pending", migrationHandler.Migratable)
	admin.GET("/members", memberHandler.List)
	admin.DELETE("/members/:username", memberHandler.Delete)
	admin.POST("/members/:username/restore", memberHandler.Restore)
	admin.GET("/audit", auditHandler.List)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
