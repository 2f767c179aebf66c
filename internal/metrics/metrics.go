// Package metrics регистрирует счетчики Prometheus для платёжных операций.
// Сами метрики отдаются через /metrics (promhttp).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentIntentsCreated — созданные платёжные намерения по валютам.
	PaymentIntentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_created_total",
		Help: "Number of payment intents created with the processor.",
	}, []string{"currency"})

	// SubscriptionsCreated — созданные подписки по способу задания цены
	// и режиму подтверждения.
	SubscriptionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "subscriptions_created_total",
		Help: "Number of subscriptions created with the processor.",
	}, []string{"pricing", "confirm_mode"})

	// LeadsRecorded — записанные лиды по статусу исхода.
	LeadsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leads_recorded_total",
		Help: "Number of lead records appended to the log.",
	}, []string{"status"})
)
