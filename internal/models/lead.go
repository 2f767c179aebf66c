package models

import "time"

// RecordLeadRequest представляет отчет вызывающей стороны о терминальном
// исходе платежа (успех, отказ, уход клиента). Email и Status обязательны,
// остальные поля опциональны.
type RecordLeadRequest struct {
	Email          string `json:"email" validate:"required"`
	Status         string `json:"status" validate:"required"`
	Amount         int64  `json:"amount"`
	ConfirmationID string `json:"confirmation_id"`
	FailureReason  string `json:"failure_reason"`
	Reference      string `json:"reference"`
}

// LeadRecord — одна строка журнала лидов. Журнал только дописывается:
// записи никогда не изменяются и не удаляются, порядок равен порядку
// добавления, уникальность не гарантируется.
type LeadRecord struct {
	Timestamp      time.Time
	Email          string
	Status         string
	Amount         int64 // минорные единицы; 0 означает отсутствие значения
	ConfirmationID string
	FailureReason  string
	Reference      string
}
