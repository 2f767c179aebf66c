// Package health реализует диагностический обработчик. Сообщает, настроены
// ли учетные данные провайдера, не раскрывая сам ключ.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-orchestrator/internal/http/response"
)

type Handler struct {
	log                 *slog.Logger
	processorConfigured bool
}

func New(log *slog.Logger, processorConfigured bool) *Handler {
	return &Handler{
		log:                 log,
		processorConfigured: processorConfigured,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"processor_configured": h.processorConfigured,
	}))
}
