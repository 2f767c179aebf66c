// Package paymentprovider содержит клиент платёжного провайдера Stripe.
// Клиент переводит доменные параметры в вызовы SDK и возвращает узкие
// структуры пакета, чтобы вызывающий код не зависел от типов SDK.
package paymentprovider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
)

// Client — клиент Stripe. Все вызовы однократные, без повторных попыток:
// политика ретраев не входит в обязанности оркестратора.
type Client struct {
	api *client.API
}

// NewClient создает клиент Stripe с ограниченным таймаутом исходящих
// запросов.
func NewClient(secretKey string, timeout time.Duration) *Client {
	backendConfig := &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	}
	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	})
	return &Client{api: api}
}

// FindCustomerByEmail ищет существующего плательщика с точным совпадением
// email. Возвращает (nil, nil), если плательщик не найден.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerListParams{
		ListParams: stripe.ListParams{Context: ctx, Limit: stripe.Int64(1)},
		Email:      stripe.String(email),
	}
	iter := c.api.Customers.List(params)
	if iter.Next() {
		cust := iter.Customer()
		return &Customer{ID: cust.ID, Email: cust.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, upstreamErr(err)
	}
	return nil, nil
}

// CreateCustomer создает нового плательщика. Пустой email допустим —
// создается анонимная учетная запись.
func (c *Client) CreateCustomer(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx, IdempotencyKey: stripe.String(uuid.NewString())},
	}
	if email != "" {
		params.Email = stripe.String(email)
	}
	cust, err := c.api.Customers.New(params)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return &Customer{ID: cust.ID, Email: cust.Email}, nil
}

// CreatePaymentIntent создает платёжное намерение с автоматическим
// согласованием способов оплаты. Reference уходит в metadata без
// интерпретации содержимого.
func (c *Client) CreatePaymentIntent(ctx context.Context, reqParams CreatePaymentIntentParams) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx, IdempotencyKey: stripe.String(uuid.NewString())},
		Amount:   stripe.Int64(reqParams.Amount),
		Currency: stripe.String(reqParams.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if reqParams.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(reqParams.ReceiptEmail)
	}
	if reqParams.CustomerID != "" {
		params.Customer = stripe.String(reqParams.CustomerID)
	}
	if reqParams.Reference != "" {
		params.AddMetadata("reference", reqParams.Reference)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// CreatePrice создает тариф на лету для одной подписки: товар задается
// только именем, без предварительной регистрации у провайдера.
func (c *Client) CreatePrice(ctx context.Context, reqParams CreatePriceParams) (*Price, error) {
	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx, IdempotencyKey: stripe.String(uuid.NewString())},
		Currency:   stripe.String(reqParams.Currency),
		UnitAmount: stripe.Int64(reqParams.UnitAmount),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(reqParams.Interval),
		},
		ProductData: &stripe.PriceProductDataParams{
			Name: stripe.String(reqParams.ProductName),
		},
	}
	price, err := c.api.Prices.New(params)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return &Price{ID: price.ID}, nil
}

// CreateSubscription создает подписку в режиме незавершенной оплаты:
// запись подписки существует до подтверждения платежа по первому счету.
// Платёжное намерение первого счета раскрывается в ответе.
func (c *Client) CreateSubscription(ctx context.Context, reqParams CreateSubscriptionParams) (*Subscription, error) {
	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx, IdempotencyKey: stripe.String(uuid.NewString())},
		Customer: stripe.String(reqParams.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(reqParams.PriceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
		PaymentSettings: &stripe.SubscriptionPaymentSettingsParams{
			SaveDefaultPaymentMethod: stripe.String("on_subscription"),
		},
	}
	params.AddExpand("latest_invoice.payment_intent")
	if reqParams.Reference != "" {
		params.AddMetadata("reference", reqParams.Reference)
	}

	sub, err := c.api.Subscriptions.New(params)
	if err != nil {
		return nil, upstreamErr(err)
	}

	result := &Subscription{ID: sub.ID, Status: string(sub.Status)}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		pi := sub.LatestInvoice.PaymentIntent
		result.PaymentIntent = &PaymentIntent{
			ID:           pi.ID,
			ClientSecret: pi.ClientSecret,
			Status:       string(pi.Status),
		}
	}
	return result, nil
}

// AttachPaymentMethod привязывает способ оплаты к плательщику.
func (c *Client) AttachPaymentMethod(ctx context.Context, paymentMethodID, customerID string) error {
	params := &stripe.PaymentMethodAttachParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
	}
	if _, err := c.api.PaymentMethods.Attach(paymentMethodID, params); err != nil {
		return upstreamErr(err)
	}
	return nil
}

// SetDefaultPaymentMethod назначает способ оплаты способом по умолчанию
// для счетов плательщика.
func (c *Client) SetDefaultPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		InvoiceSettings: &stripe.CustomerInvoiceSettingsParams{
			DefaultPaymentMethod: stripe.String(paymentMethodID),
		},
	}
	if _, err := c.api.Customers.Update(customerID, params); err != nil {
		return upstreamErr(err)
	}
	return nil
}

// ConfirmPaymentIntent подтверждает платёжное намерение указанным способом
// оплаты (серверное подтверждение).
func (c *Client) ConfirmPaymentIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(paymentMethodID),
	}
	pi, err := c.api.PaymentIntents.Confirm(paymentIntentID, params)
	if err != nil {
		return nil, upstreamErr(err)
	}
	return &PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

// upstreamErr оборачивает ошибку SDK в UpstreamError, сохраняя сообщение
// провайдера без изменений.
func upstreamErr(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		return &models.UpstreamError{Message: sErr.Msg, Err: err}
	}
	return &models.UpstreamError{Message: err.Error(), Err: err}
}
