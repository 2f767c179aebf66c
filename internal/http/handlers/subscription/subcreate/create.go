// Package subcreate реализует HTTP-обработчик создания подписки.
//
// Handler принимает JSON-запрос в одной из двух форм (ссылка на тариф или
// динамическая цена), передает его в оркестратор подписок и возвращает
// идентификатор подписки со статусом и токеном подтверждения.
package subcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/payment-orchestrator/internal/http/response"
	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/sl"
	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
)

// Handler управляет HTTP-запросами на создание подписок.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис оркестрации подписок
}

// Service описывает интерфейс оркестрации подписки.
type Service interface {
	Create(ctx context.Context, req models.CreateSubscriptionRequest) (*models.SubscriptionResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать подписку
// @Description Создает подписку у провайдера: по существующему тарифу или с динамической ценой. Возвращает ID подписки, статус и токен подтверждения.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param request body models.CreateSubscriptionRequest true "Параметры подписки"
// @Success 200 {object} response.OKResponse "Созданная подписка"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Отказ провайдера"
// @Router /subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ErrorWithReason(vErr.Reason, vErr.Message))
			return
		}
		var upErr *models.UpstreamError
		if errors.As(err, &upErr) {
			log.Error("processor rejected subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithReason(models.ReasonUpstream, upErr.Message))
			return
		}
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("success to create subscription",
		slog.String("subscription_id", result.SubscriptionID),
		slog.String("status", result.Status))
	render.JSON(w, r, response.OKWithData(result))
}
