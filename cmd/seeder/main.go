package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"homenest/internal/adapters/fixture"
	"homenest/internal/adapters/observability"
	redisad "homenest/internal/adapters/redis"
	"homenest/internal/app"
	"homenest/internal/domain"
	"homenest/internal/shared"
	mongorepo "homenest/internal/storage/mongo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	file := flag.String("file", cfg.SeedFile, "path or http(s) URL of a JSON array of properties")
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise); every
	// line of one run carries the same run_id
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel).
		With().Str("run_id", uuid.NewString()).Logger()

	var items []domain.Property
	var err error
	if fixture.IsRemote(*file) {
		items, err = fixture.New(cfg.SeedToken, 5).FetchProperties(ctx, *file)
	} else {
		items, err = app.LoadSeedFile(*file)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load seed file failed")
	}
	log.Info().
		Str("file", *file).
		Int("items", len(items)).
		Int("workers", cfg.SeedWorkers).
		Float64("rps", cfg.SeedRPS).
		Msg("seeder starting")

	client, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	log.Info().Msg("db ping ok")

	// seeded rows change the dashboard; drop its cache if one is configured
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	repo := mongorepo.New(client.Database(cfg.MongoDB))
	seeder := app.NewSeeder(app.NewPropertyService(repo, cache, nil), cfg.SeedWorkers, cfg.SeedRPS)

	start := time.Now()
	rep, err := seeder.Run(ctx, items)
	ev := log.Info()
	if err != nil || rep.Failed > 0 {
		ev = log.Warn().Err(err)
	}
	ev.Int64("inserted", rep.Inserted).
		Int64("failed", rep.Failed).
		Dur("took", time.Since(start)).
		Msg("seeding completed")
}
