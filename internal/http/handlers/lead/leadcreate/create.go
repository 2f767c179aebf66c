// Package leadcreate реализует HTTP-обработчик записи лида — отчета
// вызывающей стороны о терминальном исходе платежа.
//
// Запись никак не связана транзакционно с платёжными вызовами: момент
// отчета определяет клиент, в том числе для отказов, которые сервис сам
// не наблюдает.
package leadcreate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/payment-orchestrator/internal/http/response"
	"github.com/magabrotheeeer/payment-orchestrator/internal/lib/sl"
	"github.com/magabrotheeeer/payment-orchestrator/internal/metrics"
	"github.com/magabrotheeeer/payment-orchestrator/internal/models"
)

// Handler управляет HTTP-запросами на запись лидов.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	recorder Recorder            // Журнал лидов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Recorder описывает интерфейс журнала лидов.
type Recorder interface {
	Append(rec models.LeadRecord) error
}

// New создает новый Handler с переданными логгером и журналом.
func New(log *slog.Logger, recorder Recorder) *Handler {
	return &Handler{
		log:      log,
		recorder: recorder,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать лид
// @Description Дописывает отчет об исходе платежа в журнал лидов. Email и status обязательны.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param request body models.RecordLeadRequest true "Отчет об исходе"
// @Success 200 {object} response.OKResponse "Запись добавлена"
// @Failure 400 {object} response.ErrorResponse "Отсутствуют обязательные поля"
// @Failure 500 {object} response.ErrorResponse "Ошибка записи журнала"
// @Router /leads [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lead.leadcreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RecordLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationErrorWithReason(
			models.ReasonMissingField, err.(validator.ValidationErrors)))
		return
	}

	err := h.recorder.Append(models.LeadRecord{
		Email:          req.Email,
		Status:         req.Status,
		Amount:         req.Amount,
		ConfirmationID: req.ConfirmationID,
		FailureReason:  req.FailureReason,
		Reference:      req.Reference,
	})
	if err != nil {
		log.Error("failed to append lead record", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.ErrorWithReason(models.ReasonIO, "could not save lead"))
		return
	}

	log.Info("success to append lead record", slog.String("status", req.Status))
	metrics.LeadsRecorded.WithLabelValues(req.Status).Inc()
	render.JSON(w, r, response.OKWithData(map[string]any{
		"ok": true,
	}))
}
