// Package subscription реализует оркестрацию регулярного платежа:
// выбор формы цены, разрешение плательщика, создание подписки в режиме
// незавершенной оплаты и, опционально, серверное подтверждение.
package subscription

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/money"
	"github.com/magabrotheeeer/payment-orchestrator/internal/metrics"
	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
)

// Режимы подтверждения подписки.
const (
	ConfirmModeClient = "client"
	ConfirmModeServer = "server"
)

const defaultInterval = "month"

// ProviderClient определяет вызовы провайдера для регулярного платежа.
type ProviderClient interface {
	CreatePrice(ctx context.Context, params paymentprovider.CreatePriceParams) (*paymentprovider.Price, error)
	CreateSubscription(ctx context.Context, params paymentprovider.CreateSubscriptionParams) (*paymentprovider.Subscription, error)
	AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error
	SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*paymentprovider.PaymentIntent, error)
}

// CustomerResolver описывает разрешение плательщика по email.
type CustomerResolver interface {
	Resolve(ctx context.Context, email string) (*paymentprovider.Customer, error)
}

// Service реализует оркестрацию подписок.
type Service struct {
	provider    ProviderClient
	customers   CustomerResolver
	opts        money.Options
	confirmMode string
	log         *slog.Logger
}

// New создает новый Service. confirmMode задается конфигом развертывания:
// ConfirmModeClient или ConfirmModeServer.
func New(provider ProviderClient, customers CustomerResolver, opts money.Options, confirmMode string, log *slog.Logger) *Service {
	return &Service{
		provider:    provider,
		customers:   customers,
		opts:        opts,
		confirmMode: confirmMode,
		log:         log,
	}
}

// Create создает подписку. Поддерживаются две формы запроса: со ссылкой на
// существующий тариф (price_id) и с динамической ценой (currency,
// unit_amount, interval, product_name). Порядок вызовов провайдера:
// разрешение плательщика, затем (для динамической цены) создание тарифа,
// затем создание подписки. Частично созданные объекты провайдера при
// отказе не откатываются.
func (s *Service) Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.SubscriptionResult, error) {
	serverConfirm := req.PaymentMethodID != ""
	if serverConfirm && s.confirmMode != ConfirmModeServer {
		return nil, models.NewValidationError(models.ReasonInvalidPayment,
			"payment_method_id is not accepted in client confirmation mode")
	}
	if serverConfirm && req.Email == "" {
		return nil, models.NewValidationError(models.ReasonInvalidEmail,
			"email is required when a payment method is supplied")
	}
	if req.Email != "" {
		if err := money.CheckEmail(req.Email); err != nil {
			return nil, err
		}
	}

	dynamic := req.PriceID == ""
	var priceParams paymentprovider.CreatePriceParams
	if dynamic {
		if req.UnitAmount == 0 && req.ProductName == "" && req.Currency == "" {
			return nil, models.NewValidationError(models.ReasonMissingField,
				"either price_id or dynamic price fields are required")
		}
		if req.ProductName == "" {
			return nil, models.NewValidationError(models.ReasonMissingField,
				"product_name is required for a dynamic price")
		}
		normalized, err := money.NormalizeCharge(req.UnitAmount, req.Currency, s.opts)
		if err != nil {
			return nil, err
		}
		interval := req.Interval
		if interval == "" {
			interval = defaultInterval
		}
		priceParams = paymentprovider.CreatePriceParams{
			Currency:    normalized.Currency,
			UnitAmount:  normalized.Amount,
			Interval:    interval,
			ProductName: req.ProductName,
		}
	}

	cust, err := s.customers.Resolve(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	priceID := req.PriceID
	if dynamic {
		price, err := s.provider.CreatePrice(ctx, priceParams)
		if err != nil {
			return nil, err
		}
		priceID = price.ID
	}

	sub, err := s.provider.CreateSubscription(ctx, paymentprovider.CreateSubscriptionParams{
		CustomerID: cust.ID,
		PriceID:    priceID,
		Reference:  req.Reference,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created subscription",
		slog.String("subscription_id", sub.ID),
		slog.String("customer_id", cust.ID),
		slog.String("status", sub.Status))

	pricing := "reference"
	if dynamic {
		pricing = "dynamic"
	}
	metrics.SubscriptionsCreated.WithLabelValues(pricing, s.confirmMode).Inc()

	result := &models.SubscriptionResult{
		SubscriptionID: sub.ID,
		Status:         sub.Status,
		Reference:      req.Reference,
	}

	if serverConfirm {
		confirmed, err := s.confirm(ctx, cust.ID, req.PaymentMethodID, sub)
		if err != nil {
			return nil, err
		}
		result.Status = confirmed.Status
		return result, nil
	}

	if sub.PaymentIntent != nil {
		result.ClientSecret = sub.PaymentIntent.ClientSecret
	}
	return result, nil
}

// confirm выполняет серверное подтверждение: привязывает способ оплаты,
// назначает его способом по умолчанию и подтверждает платёж первого счета.
func (s *Service) confirm(ctx context.Context, customerID, paymentMethodID string, sub *paymentprovider.Subscription) (*paymentprovider.PaymentIntent, error) {
	if sub.PaymentIntent == nil {
		return nil, &models.UpstreamError{Message: "subscription has no payment intent to confirm"}
	}
	if err := s.provider.AttachPaymentMethod(ctx, paymentMethodID, customerID); err != nil {
		return nil, err
	}
	if err := s.provider.SetDefaultPaymentMethod(ctx, customerID, paymentMethodID); err != nil {
		return nil, err
	}
	confirmed, err := s.provider.ConfirmPaymentIntent(ctx, sub.PaymentIntent.ID, paymentMethodID)
	if err != nil {
		return nil, err
	}
	s.log.Info("confirmed subscription payment",
		slog.String("payment_intent_id", confirmed.ID),
		slog.String("status", confirmed.Status))
	return confirmed, nil
}
