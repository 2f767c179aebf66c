// Package money выполняет нормализацию и проверку денежных параметров
// до любого обращения к платёжному провайдеру. Все функции чистые,
// без побочных эффектов.
package money

import (
	"strings"

	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
)

// allowedCurrencies — фиксированный список валют, которые сервис принимает.
var allowedCurrencies = map[string]struct{}{
	"usd": {},
	"gbp": {},
	"eur": {},
}

// Options задает режим нормализации для конкретного развертывания.
type Options struct {
	// DefaultCurrency подставляется, когда валюта не указана.
	DefaultCurrency string
	// RequireCurrency запрещает подстановку валюты по умолчанию.
	RequireCurrency bool
}

// NormalizedCharge — проверенные параметры платежа. Currency всегда
// в нижнем регистре канонического кода.
type NormalizedCharge struct {
	Amount   int64
	Currency string
}

// NormalizeCharge проверяет сумму и валюту.
// Сумма трактуется как минорные единицы и должна быть строго положительной.
// Валюта приводится к нижнему регистру и сверяется со списком допустимых;
// отсутствующая валюта заменяется на DefaultCurrency, если это разрешено.
// Валюта вне списка не принимается никогда.
func NormalizeCharge(amount int64, currency string, opts Options) (NormalizedCharge, error) {
	if amount <= 0 {
		return NormalizedCharge{}, models.NewValidationError(
			models.ReasonInvalidAmount, "amount must be a positive integer in minor units")
	}

	cur := strings.ToLower(strings.TrimSpace(currency))
	if cur == "" {
		if opts.RequireCurrency || opts.DefaultCurrency == "" {
			return NormalizedCharge{}, models.NewValidationError(
				models.ReasonInvalidCurrency, "currency is required")
		}
		cur = strings.ToLower(opts.DefaultCurrency)
	}
	if _, ok := allowedCurrencies[cur]; !ok {
		return NormalizedCharge{}, models.NewValidationError(
			models.ReasonInvalidCurrency, "currency %q is not supported", cur)
	}

	return NormalizedCharge{Amount: amount, Currency: cur}, nil
}

// CheckEmail проверяет, что адрес непустой и содержит символ @.
// Глубокая проверка адреса не выполняется, окончательную валидацию
// делает провайдер.
func CheckEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") {
		return models.NewValidationError(models.ReasonInvalidEmail, "invalid email address")
	}
	return nil
}

// IsAllowedCurrency сообщает, входит ли код валюты в список допустимых.
func IsAllowedCurrency(currency string) bool {
	_, ok := allowedCurrencies[strings.ToLower(currency)]
	return ok
}
