package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/boardkit/member-system/internal/api"
	"github.com/boardkit/member-system/internal/core/service"
	mongodb "github.com/boardkit/member-system/internal/infrastructure/db/mongo"
	redisdb "github.com/boardkit/member-system/internal/infrastructure/db/redis"
	"github.com/boardkit/member-system/internal/infrastructure/queue"
	"github.com/boardkit/member-system/internal/pkg/config"
	"github.com/boardkit/member-system/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	// Unique indexes on username/email are the storage-layer guard against
	// concurrent double migration; refuse to start without them.
	if err := mongodb.NewMemberRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("member index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// Audit pipeline: auth and migration outcomes flow through the sharded
	// dispatcher to Mongo, off the request path.
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	mode := "standard"
	if cfg.DualAuthEnabled {
		mode = "dual"
	}
	log.Info().Str("port", cfg.Port).Str("auth_mode", mode).Msg("starting member system")

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
