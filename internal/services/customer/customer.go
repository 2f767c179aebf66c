// Package customer реализует разрешение плательщика у провайдера по схеме
// "найти по email, иначе создать".
package customer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/payment-orchestrator/internal/paymentprovider"
)

// ProviderClient определяет вызовы провайдера, которые нужны резолверу.
type ProviderClient interface {
	// FindCustomerByEmail возвращает (nil, nil), если плательщик не найден.
	FindCustomerByEmail(ctx context.Context, email string) (*paymentprovider.Customer, error)
	CreateCustomer(ctx context.Context, email string) (*paymentprovider.Customer, error)
}

// Resolver находит или создает плательщика. Поиск и создание не защищены
// блокировкой: два конкурентных запроса с одним новым email могут создать
// дубликаты у провайдера. Это принятое ограничение, провайдер остается
// единственным источником истины.
type Resolver struct {
	provider ProviderClient
	log      *slog.Logger
}

// New создает новый Resolver.
func New(provider ProviderClient, log *slog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		log:      log,
	}
}

// Resolve возвращает плательщика для email. При пустом email всегда
// создается анонимная учетная запись. При отказе провайдера запрос
// прерывается без частичного состояния на нашей стороне.
func (r *Resolver) Resolve(ctx context.Context, email string) (*paymentprovider.Customer, error) {
	if email == "" {
		cust, err := r.provider.CreateCustomer(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("create anonymous customer: %w", err)
		}
		r.log.Info("created anonymous customer", slog.String("customer_id", cust.ID))
		return cust, nil
	}

	found, err := r.provider.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if found != nil {
		r.log.Info("reusing existing customer", slog.String("customer_id", found.ID))
		return found, nil
	}

	created, err := r.provider.CreateCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	r.log.Info("created new customer", slog.String("customer_id", created.ID))
	return created, nil
}
