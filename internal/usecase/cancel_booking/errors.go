package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому клиенту
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

// PolicyViolationError возвращается, когда политика запретила отмену
// Несет полное решение политики: обработчик отдает клиенту
// категорию и причину, а не только факт отказа
type PolicyViolationError struct {
	Decision policy.CancellationDecision
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("cancel_booking: cancellation not allowed (%s): %s", e.Decision.Tier, e.Decision.Reason)
}
