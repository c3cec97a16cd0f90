// Package availability резолвер доступности исполнителя
// Чистая функция над переданными данными: без I/O, без мутаций,
// одинаковые входы всегда дают одинаковый результат
package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Status итоговый статус доступности исполнителя
type Status string

const (
	StatusUnknown     Status = "unknown"     // дата не указана
	StatusUnavailable Status = "unavailable" // исполнитель деактивирован
	StatusBlocked     Status = "blocked"     // попадает в блокировку (отгул, отпуск)
	StatusBusy        Status = "busy"        // есть конфликтующие бронирования
	StatusAvailable   Status = "available"
)

// Result результат резолва доступности
type Result struct {
	Status Status

	// Reason человекочитаемое пояснение (причина блокировки, число конфликтов)
	Reason string

	// ConflictCount число конфликтующих бронирований при StatusBusy
	ConflictCount int
}

// Resolve вычисляет доступность исполнителя на дату и слот
// slot может быть пустым - тогда запрос означает "любой слот этого дня"
//
// Порядок проверок фиксирован:
//  1. пустая дата -> unknown; неактивный исполнитель -> unavailable
//  2. блокировки (разовые по дате, еженедельные по дню недели) -> blocked
//  3. конфликтующие бронирования -> busy
//  4. иначе -> available
func Resolve(
	provider *domain.Provider,
	date time.Time,
	slot domain.TimeSlot,
	blockouts []*domain.Blockout,
	bookings []*domain.Booking,
) Result {
	if date.IsZero() {
		return Result{Status: StatusUnknown, Reason: "дата не указана"}
	}

	if !provider.IsActive {
		return Result{Status: StatusUnavailable, Reason: "исполнитель не принимает заказы"}
	}

	// Проверка блокировок: первая подходящая дает причину
	for _, blockout := range blockouts {
		if blockout.ProviderID != provider.ID {
			continue
		}
		if blockout.AppliesTo(date) && blockout.Covers(slot) {
			reason := blockout.Reason
			if reason == "" {
				reason = "время заблокировано исполнителем"
			}
			return Result{Status: StatusBlocked, Reason: reason}
		}
	}

	// Проверка занятости существующими бронированиями
	conflicts := 0
	for _, booking := range bookings {
		if conflictsWith(booking, provider.ID, date, slot) {
			conflicts++
		}
	}

	if conflicts > 0 {
		return Result{
			Status:        StatusBusy,
			Reason:        fmt.Sprintf("занят: %d бронирований на это время", conflicts),
			ConflictCount: conflicts,
		}
	}

	return Result{Status: StatusAvailable}
}

// conflictsWith проверяет, конфликтует ли бронирование с запросом
// Бронирование без слота занимает весь день; запрос без слота
// конфликтует с любым бронированием этого дня
func conflictsWith(booking *domain.Booking, providerID int64, date time.Time, slot domain.TimeSlot) bool {
	if !booking.HasProvider(providerID) {
		return false
	}
	if !booking.IsActive() {
		return false
	}
	if !sameDate(booking.ScheduledDate, date) {
		return false
	}

	// Обе стороны без конкретного слота - конфликт по всему дню
	if slot.IsZero() || booking.ScheduledTime.IsZero() {
		return true
	}

	return booking.ScheduledTime == slot
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
