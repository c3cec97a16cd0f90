package match_providers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	matching "github.com/m04kA/SMC-SchedulingService/internal/usecase/match_providers"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeSlot  = "некорректный временной слот"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase MatchProvidersUseCase
	logger  Logger
}

func NewHandler(useCase MatchProvidersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/providers?date=2025-11-12&timeSlot=14:00-16:00
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/providers - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	req := &matching.Request{ServiceID: serviceID}

	// Дата и слот опциональны: без них доступность не оценивается
	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /services/{id}/providers - Invalid date: service_id=%d, date=%s", serviceID, rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = date
	}

	if rawSlot := r.URL.Query().Get("timeSlot"); rawSlot != "" {
		slot, err := domain.ParseTimeSlot(rawSlot)
		if err != nil {
			h.logger.Warn("GET /services/{id}/providers - Invalid time slot: service_id=%d, slot=%s", serviceID, rawSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
			return
		}
		req.TimeSlot = slot
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/providers - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, matching.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/providers - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /services/{id}/providers - Failed to match providers: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/providers - Matched %d providers: service_id=%d",
		len(result.Providers), serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
