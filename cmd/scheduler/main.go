package main

import (
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/scheduler"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	cfg.DBMigrate = false

	pool := config.InitPgx(cfg)
	defer pool.Close()

	s3Client := config.NewS3Client(cfg)

	srv := scheduler.New(cfg, pool, s3Client)

	srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down scheduler...")
	srv.Stop()
}
