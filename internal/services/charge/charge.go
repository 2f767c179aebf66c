// Package charge реализует оркестрацию разового платежа: проверку
// параметров и создание платёжного намерения у провайдера.
package charge

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/money"
	"github.com/magabrotheeeer/payment-orchestrator/internal/metrics"
	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
)

// ProviderClient определяет вызовы провайдера для разового платежа.
type ProviderClient interface {
	CreatePaymentIntent(ctx context.Context, params paymentprovider.CreatePaymentIntentParams) (*paymentprovider.PaymentIntent, error)
}

// Service реализует оркестрацию разового платежа.
type Service struct {
	provider     ProviderClient
	opts         money.Options
	requireEmail bool
	log          *slog.Logger
}

// New создает новый Service. Параметры валидации и требование email
// приходят из конфига развертывания.
func New(provider ProviderClient, opts money.Options, requireEmail bool, log *slog.Logger) *Service {
	return &Service{
		provider:     provider,
		opts:         opts,
		requireEmail: requireEmail,
		log:          log,
	}
}

// CreatePaymentIntent проверяет запрос и создает ровно одно платёжное
// намерение. Валидация выполняется до обращения к провайдеру: при
// некорректном входе внешних вызовов нет. Валюта в ответе приводится к
// верхнему регистру.
func (s *Service) CreatePaymentIntent(ctx context.Context, req models.CreatePaymentIntentRequest) (*models.PaymentIntentResult, error) {
	normalized, err := money.NormalizeCharge(req.Amount, req.Currency, s.opts)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || s.requireEmail {
		if err := money.CheckEmail(req.Email); err != nil {
			return nil, err
		}
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, paymentprovider.CreatePaymentIntentParams{
		Amount:       normalized.Amount,
		Currency:     normalized.Currency,
		ReceiptEmail: req.Email,
		Reference:    req.Reference,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("created payment intent",
		slog.String("payment_intent_id", intent.ID),
		slog.Int64("amount", normalized.Amount),
		slog.String("currency", normalized.Currency))
	metrics.PaymentIntentsCreated.WithLabelValues(normalized.Currency).Inc()

	return &models.PaymentIntentResult{
		ClientSecret: intent.ClientSecret,
		Currency:     strings.ToUpper(normalized.Currency),
		Reference:    req.Reference,
		Status:       intent.Status,
	}, nil
}
