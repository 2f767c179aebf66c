package paymentprovider

// Customer — учетная запись плательщика на стороне провайдера.
// Сервис не хранит её локально, провайдер является единственным
// источником истины.
type Customer struct {
	ID    string
	Email string
}

// PaymentIntent — платёжное намерение провайдера (разовый перевод средств).
// ClientSecret — токен подтверждения для завершения аутентификации
// на стороне клиента.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Price — тариф провайдера, по которому выставляются счета подписки.
type Price struct {
	ID string
}

// Subscription — подписка провайдера. PaymentIntent относится к первому
// счету и присутствует, когда подписка создана в режиме незавершенной
// оплаты.
type Subscription struct {
	ID            string
	Status        string
	PaymentIntent *PaymentIntent
}

// CreatePaymentIntentParams — параметры создания разового платежа.
type CreatePaymentIntentParams struct {
	Amount       int64  // минорные единицы
	Currency     string // канонический код в нижнем регистре
	ReceiptEmail string // опционально
	CustomerID   string // опционально
	Reference    string // непрозрачная метка для сверки, уходит в metadata
}

// CreatePriceParams — параметры тарифа, создаваемого на лету
// для одной подписки.
type CreatePriceParams struct {
	Currency    string
	UnitAmount  int64
	Interval    string // day | week | month | year
	ProductName string
}

// CreateSubscriptionParams — параметры создания подписки в режиме
// незавершенной оплаты.
type CreateSubscriptionParams struct {
	CustomerID string
	PriceID    string
	Reference  string
}
