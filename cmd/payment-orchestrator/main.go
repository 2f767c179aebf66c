// Package main Payment Orchestrator API
//
// @title           Payment Orchestrator API
// @version         1.0
// @description     API для оркестрации разовых платежей и подписок

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:4242
// @BasePath  /api/v1
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	paymentorchestrator "github.com/magabrotheeeer/payment-orchestrator/internal/app/payment-orchestrator"
	"github.com/magabrotheeeer/payment-orchestrator/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting payment-orchestrator", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := paymentorchestrator.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("payment-orchestrator stopped gracefully")
}
