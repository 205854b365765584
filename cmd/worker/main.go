package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/contratos/internal/app"
	"github.com/MrJamesThe3rd/contratos/internal/config"
	"github.com/MrJamesThe3rd/contratos/internal/schedule"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	scheduler, err := schedule.New(schedule.NewRedisLocker(rdb), cfg.Sweep.LockTTL, schedule.SweepJobs(a.Notifications, schedule.Specs{
		Expiring: cfg.Sweep.ExpiringSpec,
		Expired:  cfg.Sweep.ExpiredSpec,
		Archive:  cfg.Sweep.ArchiveSpec,
	})...)
	if err != nil {
		slog.Error("failed to schedule sweeps", "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	slog.Info("worker started")

	<-ctx.Done()

	<-scheduler.Stop().Done()
	slog.Info("worker stopped")
}
