package paymentorchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/payment-orchestrator/internal/config"
	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/money"
	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
	chargeservice "github.com/magabrotheeeer/payment-orchestrator/internal/services/charge"
	customerservice "github.com/magabrotheeeer/payment-orchestrator/internal/services/customer"
	subservice "github.com/magabrotheeeer/payment-orchestrator/internal/services/subscription"
	"github.com/magabrotheeeer/payment-orchestrator/internal/storage/leadcsv"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	recorder *leadcsv.Recorder
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	recorder, err := leadcsv.New(cfg.LeadsFile)
	if err != nil {
		return nil, err
	}

	providerClient := paymentprovider.NewClient(cfg.SecretKey, cfg.Processor.Timeout)
	moneyOpts := money.Options{DefaultCurrency: cfg.DefaultCurrency}

	chargeService := chargeservice.New(providerClient, moneyOpts, !cfg.AllowEmaillessCharge, logger)
	customerResolver := customerservice.New(providerClient, logger)
	subscriptionService := subservice.New(providerClient, customerResolver, moneyOpts, cfg.SubscriptionConfirmMode, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, chargeService, subscriptionService, recorder, cfg.SecretKey != "")

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		recorder: recorder,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.recorder.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	}
}
