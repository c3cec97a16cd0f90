// Package statemachine машина состояний бронирования
// Единственная точка, где решается, какие переходы статусов допустимы
package statemachine

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// transitions таблица допустимых переходов: статус -> его преемники
//
// Основная цепочка: pending -> confirmed -> en_route -> in_progress -> completed
// cancelled достижим только из pending и confirmed
// delayed достижим из confirmed, en_route и in_progress
//
// У delayed преемников нет: продуктом не определен путь возврата задержанной
// работы в основную цепочку, сегодня такие заказы разбираются вручную.
// Добавление перехода отсюда - продуктовое решение, не техническое.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:    {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed:  {domain.StatusEnRoute, domain.StatusDelayed, domain.StatusCancelled},
	domain.StatusEnRoute:    {domain.StatusInProgress, domain.StatusDelayed},
	domain.StatusInProgress: {domain.StatusCompleted, domain.StatusDelayed},
	domain.StatusDelayed:    {},
	domain.StatusCompleted:  {},
	domain.StatusCancelled:  {},
}

// CanAdvance проверяет, допустим ли переход from -> to
func CanAdvance(from, to domain.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Successors возвращает допустимые преемники статуса
func Successors(from domain.BookingStatus) []domain.BookingStatus {
	next := transitions[from]
	out := make([]domain.BookingStatus, len(next))
	copy(out, next)
	return out
}

// Advance валидирует переход и возвращает копию бронирования в целевом статусе
// Исходное бронирование не мутируется - изменения применяет вызывающая сторона
//
// Побочные эффекты перехода:
//   - in_progress: проставляется StartedAt
//   - completed:   проставляется CompletedAt
//   - delayed:     требуется непустая причина, проставляется DelayReason
//   - cancelled:   проставляется CancelledAt и CancellationReason (если передана)
func Advance(booking *domain.Booking, target domain.BookingStatus, reason *string, now time.Time) (*domain.Booking, error) {
	if !domain.IsValidStatus(target) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}

	if !CanAdvance(booking.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
	}

	updated := *booking
	updated.Status = target

	switch target {
	case domain.StatusInProgress:
		startedAt := now
		updated.StartedAt = &startedAt

	case domain.StatusCompleted:
		completedAt := now
		updated.CompletedAt = &completedAt

	case domain.StatusDelayed:
		if reason == nil || strings.TrimSpace(*reason) == "" {
			return nil, ErrDelayReasonRequired
		}
		updated.DelayReason = reason

	case domain.StatusCancelled:
		cancelledAt := now
		updated.CancelledAt = &cancelledAt
		if reason != nil {
			updated.CancellationReason = reason
		}
	}

	return &updated, nil
}
