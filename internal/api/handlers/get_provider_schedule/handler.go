package get_provider_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	schedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_provider_schedule"
)

const (
	msgInvalidProviderID = "некорректный ID исполнителя"
	msgMissingDate       = "параметр date обязателен"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgProviderNotFound  = "исполнитель не найден"
)

type Handler struct {
	useCase GetProviderScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetProviderScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/schedule?date=2025-11-12
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/schedule - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /providers/{id}/schedule - Missing date: provider_id=%d", providerID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/schedule - Invalid date: provider_id=%d, date=%s", providerID, rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &schedule.Request{
		ProviderID: providerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/schedule - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/schedule - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /providers/{id}/schedule - Failed to get schedule: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/schedule - Schedule retrieved: provider_id=%d, date=%s", providerID, rawDate)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
