package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/yashsinghal2004/plinko-rgs"
	"github.com/yashsinghal2004/plinko-rgs/cache"
	"github.com/yashsinghal2004/plinko-rgs/config"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger"
	"github.com/yashsinghal2004/plinko-rgs/lib/logger/sl"
	"github.com/yashsinghal2004/plinko-rgs/round"
	"github.com/yashsinghal2004/plinko-rgs/server"
)

func main() {
	// Load .env so DATABASE_URL and REDIS_URL are set: cwd .env, or project root .env/.env.local
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../.env.local")
	cfg := config.Load()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", sl.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var opts []server.Option

	var repo round.Repository
	db, err := rgs.GetDB()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		pg := round.NewPGStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		repo = pg
		opts = append(opts, server.WithHealthCheck("db", db.PingContext))
		log.Info("using postgres round store")
	} else {
		repo = round.NewStore(cfg.DataDir)
		log.Info("using file round store", slog.String("data_dir", cfg.DataDir))
	}

	var outcomes cache.Outcomes
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.OutcomeCacheTTL,
		}, log)
		if err != nil {
			return err
		}
		defer rc.Close()
		outcomes = rc
		opts = append(opts, server.WithHealthCheck("redis", rc.Ping))
		log.Info("using redis outcome cache")
	} else {
		outcomes = cache.NewMemory(cfg.OutcomeCacheTTL)
	}

	hub := server.NewHub(log)
	svc := round.NewService(repo, log,
		round.WithOutcomeCache(outcomes),
		round.WithNotifier(hub),
	)
	return server.New(cfg, log, svc, outcomes, hub, opts...).Run(ctx)
}
