package main

import (
	"CoinVestAPI/internal/adapter"
	"CoinVestAPI/internal/bootstrap"
	"CoinVestAPI/internal/config"
	"fmt"
	"log/slog"
	"net/http"
	"os"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	pool := config.InitPgx(cfg)
	defer pool.Close()

	redisAdapter, err := adapter.NewRedisAdapter(cfg)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisAdapter.Client().Close(); err != nil {
			slog.Error("Error closing redis connection", "error", err)
		}
	}()

	s3Client := config.NewS3Client(cfg)
	validate := config.NewValidator()

	chiMux := bootstrap.Init(cfg, pool, redisAdapter, validate, s3Client)

	addr := fmt.Sprintf(":%s", cfg.AppPort)
	slog.Info("Starting CoinVestAPI", "port", cfg.AppPort)

	if err := http.ListenAndServe(addr, chiMux); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
