// Package intentcreate реализует HTTP-обработчик создания разового платежа.
//
// Handler принимает JSON-запрос с суммой, валютой и email, передает его в
// оркестратор платежа и возвращает токен подтверждения для завершения
// оплаты на стороне клиента. Ошибки валидации возвращаются до обращения
// к провайдеру, ошибки провайдера передаются без изменений.
package intentcreate

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

// Handler управляет HTTP-запросами на создание разового платежа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис оркестрации разового платежа
}

// Service описывает интерфейс оркестрации разового платежа.
type Service interface {
	CreatePaymentIntent(ctx context.Context, req models.CreatePaymentIntentRequest) (*models.PaymentIntentResult, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Создать разовый платеж
// @Description Создает платёжное намерение у провайдера и возвращает токен подтверждения.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.CreatePaymentIntentRequest true "Параметры платежа"
// @Success 200 {object} response.OKResponse "Токен подтверждения"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Отказ провайдера"
// @Router /payment-intents [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.intentcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CreatePaymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	result, err := h.service.CreatePaymentIntent(r.Context(), req)
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
			log.Error("processor rejected payment intent", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.ErrorWithReason(models.ReasonUpstream, upErr.Message))
			return
		}
		log.Error("failed to create payment intent", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create payment intent"))
		return
	}

	log.Info("success to create payment intent", slog.String("currency", result.Currency))
	render.JSON(w, r, response.OKWithData(result))
}
