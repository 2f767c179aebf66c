package models

// CreateSubscriptionRequest представляет запрос на регулярный платеж.
// Допустимы две формы: либо PriceID ссылается на существующий тариф
// провайдера, либо заполняются поля динамической цены
// (Currency, UnitAmount, Interval, ProductName).
type CreateSubscriptionRequest struct {
	Email           string `json:"email"`
	PriceID         string `json:"price_id"`
	Currency        string `json:"currency"`
	UnitAmount      int64  `json:"unit_amount"`
	Interval        string `json:"interval"`
	ProductName     string `json:"product_name"`
	PaymentMethodID string `json:"payment_method_id"`
	Reference       string `json:"reference"`
}

// SubscriptionResult содержит результат создания подписки.
// При клиентском подтверждении ClientSecret передается клиенту для
// завершения оплаты первого счета; при серверном подтверждении
// Status является терминальным.
type SubscriptionResult struct {
	SubscriptionID string `json:"subscription_id"`
	ClientSecret   string `json:"client_secret,omitempty"`
	Status         string `json:"status"`
	Reference      string `json:"reference,omitempty"`
}
