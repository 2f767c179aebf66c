package models

import "fmt"

// Машиночитаемые причины ошибок, возвращаемые в поле reason ответа.
const (
	ReasonInvalidAmount   = "invalid_amount"
	ReasonInvalidCurrency = "invalid_currency"
	ReasonInvalidEmail    = "invalid_email"
	ReasonMissingField    = "missing_required_field"
	ReasonInvalidPayment  = "invalid_payment_method"
	ReasonUpstream        = "upstream_error"
	ReasonIO              = "io_error"
)

// ValidationError описывает ошибку валидации входных данных.
// Возникает до любого обращения к платёжному провайдеру.
type ValidationError struct {
	Reason  string // машиночитаемая причина (см. константы Reason*)
	Message string // человекочитаемое описание
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError создает ValidationError с причиной и сообщением.
func NewValidationError(reason, format string, args ...any) *ValidationError {
	return &ValidationError{
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

// UpstreamError описывает отказ платёжного провайдера. Сообщение провайдера
// передается вызывающей стороне без изменений, повторные попытки не выполняются.
type UpstreamError struct {
	Message string // сообщение провайдера
	Err     error  // исходная ошибка
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
