package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrProviderUnavailable возвращается, когда исполнитель недоступен в новое время
	ErrProviderUnavailable = errors.New("reschedule_booking: provider is unavailable at the new time")

	// ErrSlotTaken возвращается, когда новый слот занят другим бронированием
	ErrSlotTaken = errors.New("reschedule_booking: new slot is already taken")

	// ErrSlotConflict возвращается, когда конкурентный запрос успел занять новый слот первым
	ErrSlotConflict = errors.New("reschedule_booking: slot was taken by a concurrent request")

	// ErrInvalidDate возвращается при новой дате в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid new date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)

// PolicyViolationError возвращается, когда политика запретила перенос
type PolicyViolationError struct {
	Decision policy.RescheduleDecision
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("reschedule_booking: reschedule not allowed: %s", e.Decision.Reason)
}
