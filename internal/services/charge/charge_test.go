package charge_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/money"
	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
	"github.com/magabrotheeeer/payment-orchestrator/internal/services/charge"
)

// MockProvider реализует интерфейс charge.ProviderClient
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreatePaymentIntent(ctx context.Context, params paymentprovider.CreatePaymentIntentParams) (*paymentprovider.PaymentIntent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.PaymentIntent), args.Error(1)
}

func newService(provider *MockProvider, requireEmail bool) *charge.Service {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return charge.New(provider, money.Options{DefaultCurrency: "usd"}, requireEmail, logger)
}

func TestCreatePaymentIntent_ValidationRejectsBeforeProviderCall(t *testing.T) {
	tests := []struct {
		name           string
		req            models.CreatePaymentIntentRequest
		expectedReason string
	}{
		{
			name:           "нулевая сумма",
			req:            models.CreatePaymentIntentRequest{Amount: 0, Currency: "usd", Email: "a@b.com"},
			expectedReason: models.ReasonInvalidAmount,
		},
		{
			name:           "отрицательная сумма",
			req:            models.CreatePaymentIntentRequest{Amount: -500, Currency: "usd", Email: "a@b.com"},
			expectedReason: models.ReasonInvalidAmount,
		},
		{
			name:           "валюта вне списка допустимых",
			req:            models.CreatePaymentIntentRequest{Amount: 1000, Currency: "jpy", Email: "a@b.com"},
			expectedReason: models.ReasonInvalidCurrency,
		},
		{
			name:           "некорректный email",
			req:            models.CreatePaymentIntentRequest{Amount: 1000, Currency: "usd", Email: "not-an-email"},
			expectedReason: models.ReasonInvalidEmail,
		},
		{
			name:           "отсутствующий email при обязательном",
			req:            models.CreatePaymentIntentRequest{Amount: 1000, Currency: "usd"},
			expectedReason: models.ReasonInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(MockProvider)
			service := newService(provider, true)

			result, err := service.CreatePaymentIntent(context.Background(), tt.req)

			require.Error(t, err)
			assert.Nil(t, result)
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.expectedReason, vErr.Reason)
			// при ошибке валидации обращений к провайдеру нет
			provider.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
		})
	}
}

func TestCreatePaymentIntent_Success(t *testing.T) {
	provider := new(MockProvider)
	provider.On("CreatePaymentIntent", mock.Anything, paymentprovider.CreatePaymentIntentParams{
		Amount:       1000,
		Currency:     "usd",
		ReceiptEmail: "a@b.com",
		Reference:    "ref-42",
	}).Return(&paymentprovider.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret_abc",
		Status:       "requires_payment_method",
	}, nil)

	service := newService(provider, true)
	result, err := service.CreatePaymentIntent(context.Background(), models.CreatePaymentIntentRequest{
		Amount:    1000,
		Currency:  "usd",
		Email:     "a@b.com",
		Reference: "ref-42",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.ClientSecret)
	assert.Equal(t, "USD", result.Currency)
	assert.Equal(t, "ref-42", result.Reference)
	assert.Equal(t, "requires_payment_method", result.Status)
	// ровно один вызов создания платежа
	provider.AssertNumberOfCalls(t, "CreatePaymentIntent", 1)
}

func TestCreatePaymentIntent_DefaultCurrencyApplied(t *testing.T) {
	provider := new(MockProvider)
	provider.On("CreatePaymentIntent", mock.Anything,
		mock.MatchedBy(func(p paymentprovider.CreatePaymentIntentParams) bool {
			return p.Currency == "usd"
		})).Return(&paymentprovider.PaymentIntent{ClientSecret: "secret"}, nil)

	service := newService(provider, false)
	result, err := service.CreatePaymentIntent(context.Background(), models.CreatePaymentIntentRequest{
		Amount: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, "USD", result.Currency)
}

func TestCreatePaymentIntent_UpstreamErrorPassedThrough(t *testing.T) {
	provider := new(MockProvider)
	provider.On("CreatePaymentIntent", mock.Anything, mock.Anything).
		Return(nil, &models.UpstreamError{Message: "Your card was declined."})

	service := newService(provider, true)
	result, err := service.CreatePaymentIntent(context.Background(), models.CreatePaymentIntentRequest{
		Amount:   1000,
		Currency: "usd",
		Email:    "a@b.com",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var upErr *models.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "Your card was declined.", upErr.Message)
	// повторных попыток нет
	provider.AssertNumberOfCalls(t, "CreatePaymentIntent", 1)
}
