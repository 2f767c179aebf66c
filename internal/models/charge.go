// Package models содержит структуры запросов и ответов API,
// запись лида и типы доменных ошибок сервиса.
package models

// CreatePaymentIntentRequest представляет запрос на разовый платеж.
// Amount задается в минорных единицах валюты (центы, пенсы).
type CreatePaymentIntentRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Email     string `json:"email"`
	Reference string `json:"reference"`
}

// PaymentIntentResult содержит результат создания платежного намерения.
// ClientSecret — непрозрачный токен подтверждения, клиент завершает
// аутентификацию напрямую с провайдером.
type PaymentIntentResult struct {
	ClientSecret string `json:"client_secret"`
	Currency     string `json:"currency"`
	Reference    string `json:"reference,omitempty"`
	Status       string `json:"status,omitempty"`
}
