package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Слот опционален, но если указан - только из фиксированного набора
	if !req.TimeSlot.IsZero() {
		if err := req.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}

	if len(req.ProviderIDs) == 0 {
		return fmt.Errorf("%w: at least one provider is required", ErrInvalidInput)
	}
	if len(req.ProviderIDs) > domain.MaxProvidersPerBooking {
		return fmt.Errorf("%w: too many providers, max %d", ErrInvalidInput, domain.MaxProvidersPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.ProviderIDs))
	for _, id := range req.ProviderIDs {
		if id <= 0 {
			return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate providerID %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount must be non-negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long, max %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}
