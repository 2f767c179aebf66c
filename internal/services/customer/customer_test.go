package customer_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
	"github.com/magabrotheeeer/payment-orchestrator/internal/services/customer"
)

// MockProvider реализует интерфейс customer.ProviderClient
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) FindCustomerByEmail(ctx context.Context, email string) (*paymentprovider.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Customer), args.Error(1)
}

func (m *MockProvider) CreateCustomer(ctx context.Context, email string) (*paymentprovider.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Customer), args.Error(1)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestResolve_ExistingCustomerReused(t *testing.T) {
	provider := new(MockProvider)
	provider.On("FindCustomerByEmail", mock.Anything, "a@b.com").
		Return(&paymentprovider.Customer{ID: "cus_1", Email: "a@b.com"}, nil)

	resolver := customer.New(provider, newLogger())
	got, err := resolver.Resolve(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, "cus_1", got.ID)
	// при попадании создание пропускается
	provider.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestResolve_MissCreatesCustomer(t *testing.T) {
	provider := new(MockProvider)
	provider.On("FindCustomerByEmail", mock.Anything, "new@b.com").Return(nil, nil)
	provider.On("CreateCustomer", mock.Anything, "new@b.com").
		Return(&paymentprovider.Customer{ID: "cus_2", Email: "new@b.com"}, nil)

	resolver := customer.New(provider, newLogger())
	got, err := resolver.Resolve(context.Background(), "new@b.com")

	require.NoError(t, err)
	assert.Equal(t, "cus_2", got.ID)
	provider.AssertNumberOfCalls(t, "FindCustomerByEmail", 1)
	provider.AssertNumberOfCalls(t, "CreateCustomer", 1)
}

func TestResolve_EmptyEmailCreatesAnonymous(t *testing.T) {
	provider := new(MockProvider)
	provider.On("CreateCustomer", mock.Anything, "").
		Return(&paymentprovider.Customer{ID: "cus_anon"}, nil)

	resolver := customer.New(provider, newLogger())
	got, err := resolver.Resolve(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "cus_anon", got.ID)
	// поиск по пустому email не выполняется
	provider.AssertNotCalled(t, "FindCustomerByEmail", mock.Anything, mock.Anything)
}

func TestResolve_UpstreamFailureAborts(t *testing.T) {
	provider := new(MockProvider)
	provider.On("FindCustomerByEmail", mock.Anything, "a@b.com").
		Return(nil, &models.UpstreamError{Message: "api down"})

	resolver := customer.New(provider, newLogger())
	got, err := resolver.Resolve(context.Background(), "a@b.com")

	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "api down")
	provider.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}
