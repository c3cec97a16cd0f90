package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

var testDate = time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC) // понедельник

func activeProvider() *domain.Provider {
	return &domain.Provider{ID: 1, Name: "Иванов", IsActive: true}
}

func TestResolve_EmptyDate(t *testing.T) {
	result := Resolve(activeProvider(), time.Time{}, domain.Slot0800, nil, nil)
	assert.Equal(t, StatusUnknown, result.Status)
}

func TestResolve_InactiveProvider(t *testing.T) {
	provider := activeProvider()
	provider.IsActive = false

	result := Resolve(provider, testDate, domain.Slot0800, nil, nil)
	assert.Equal(t, StatusUnavailable, result.Status)
}

func TestResolve_OneOffBlockout(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ID:         10,
		ProviderID: 1,
		Date:       ptr.Ptr(testDate),
		TimeSlot:   domain.Slot0800,
		Reason:     "врач",
	}}

	// Совпадающий слот - заблокирован, с причиной из блокировки
	result := Resolve(activeProvider(), testDate, domain.Slot0800, blockouts, nil)
	assert.Equal(t, StatusBlocked, result.Status)
	assert.Equal(t, "врач", result.Reason)

	// Другой слот того же дня - свободен
	result = Resolve(activeProvider(), testDate, domain.Slot1400, blockouts, nil)
	assert.Equal(t, StatusAvailable, result.Status)

	// Другая дата - свободен
	result = Resolve(activeProvider(), testDate.AddDate(0, 0, 1), domain.Slot0800, blockouts, nil)
	assert.Equal(t, StatusAvailable, result.Status)

	// Запрос без слота накрывается любой блокировкой этого дня
	result = Resolve(activeProvider(), testDate, "", blockouts, nil)
	assert.Equal(t, StatusBlocked, result.Status)
}

func TestResolve_AllDayBlockoutCoversEverySlot(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ProviderID: 1,
		Date:       ptr.Ptr(testDate),
		TimeSlot:   domain.SlotAllDay,
		Reason:     "отпуск",
	}}

	for _, slot := range domain.BookableSlots {
		result := Resolve(activeProvider(), testDate, slot, blockouts, nil)
		assert.Equal(t, StatusBlocked, result.Status, "slot %s", slot)
	}

	result := Resolve(activeProvider(), testDate, "", blockouts, nil)
	assert.Equal(t, StatusBlocked, result.Status)
}

func TestResolve_RecurringBlockout(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ProviderID:   1,
		IsRecurring:  true,
		RecurringDay: ptr.Ptr(time.Monday),
		TimeSlot:     domain.SlotAllDay,
		Reason:       "выходной",
	}}

	// testDate - понедельник
	result := Resolve(activeProvider(), testDate, domain.Slot1000, blockouts, nil)
	assert.Equal(t, StatusBlocked, result.Status)

	// Вторник - блокировка не действует
	result = Resolve(activeProvider(), testDate.AddDate(0, 0, 1), domain.Slot1000, blockouts, nil)
	assert.Equal(t, StatusAvailable, result.Status)
}

func TestResolve_ForeignBlockoutIgnored(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ProviderID: 99,
		Date:       ptr.Ptr(testDate),
		TimeSlot:   domain.SlotAllDay,
	}}

	result := Resolve(activeProvider(), testDate, domain.Slot0800, blockouts, nil)
	assert.Equal(t, StatusAvailable, result.Status)
}

func TestResolve_BusyOnSlotMatch(t *testing.T) {
	bookings := []*domain.Booking{{
		ID:            100,
		ProviderIDs:   []int64{1},
		Status:        domain.StatusConfirmed,
		ScheduledDate: testDate,
		ScheduledTime: domain.Slot1000,
	}}

	result := Resolve(activeProvider(), testDate, domain.Slot1000, nil, bookings)
	assert.Equal(t, StatusBusy, result.Status)
	assert.Equal(t, 1, result.ConflictCount)

	// Другой слот свободен
	result = Resolve(activeProvider(), testDate, domain.Slot1200, nil, bookings)
	assert.Equal(t, StatusAvailable, result.Status)
}

func TestResolve_BookingWithoutSlotConflictsWithAnySlot(t *testing.T) {
	// Бронирование без слота занимает весь день
	bookings := []*domain.Booking{{
		ProviderIDs:   []int64{1},
		Status:        domain.StatusPending,
		ScheduledDate: testDate,
		ScheduledTime: "",
	}}

	for _, slot := range domain.BookableSlots {
		result := Resolve(activeProvider(), testDate, slot, nil, bookings)
		assert.Equal(t, StatusBusy, result.Status, "slot %s", slot)
	}

	result := Resolve(activeProvider(), testDate, "", nil, bookings)
	assert.Equal(t, StatusBusy, result.Status)
}

func TestResolve_CancelledBookingReleasesSlot(t *testing.T) {
	bookings := []*domain.Booking{{
		ProviderIDs:   []int64{1},
		Status:        domain.StatusCancelled,
		ScheduledDate: testDate,
		ScheduledTime: domain.Slot1000,
	}}

	result := Resolve(activeProvider(), testDate, domain.Slot1000, nil, bookings)
	assert.Equal(t, StatusAvailable, result.Status)
}

func TestResolve_MultiProviderBookingCountsForMember(t *testing.T) {
	// Исполнитель занят и когда он не первый в списке
	bookings := []*domain.Booking{{
		ProviderIDs:   []int64{7, 1, 3},
		Status:        domain.StatusConfirmed,
		ScheduledDate: testDate,
		ScheduledTime: domain.Slot1600,
	}}

	result := Resolve(activeProvider(), testDate, domain.Slot1600, nil, bookings)
	assert.Equal(t, StatusBusy, result.Status)
}

func TestResolve_BlockedTakesPrecedenceOverBusy(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ProviderID: 1,
		Date:       ptr.Ptr(testDate),
		TimeSlot:   domain.SlotAllDay,
		Reason:     "отпуск",
	}}
	bookings := []*domain.Booking{{
		ProviderIDs:   []int64{1},
		Status:        domain.StatusConfirmed,
		ScheduledDate: testDate,
		ScheduledTime: domain.Slot1000,
	}}

	result := Resolve(activeProvider(), testDate, domain.Slot1000, blockouts, bookings)
	assert.Equal(t, StatusBlocked, result.Status)
}

func TestResolve_Idempotent(t *testing.T) {
	blockouts := []*domain.Blockout{{
		ProviderID:   1,
		IsRecurring:  true,
		RecurringDay: ptr.Ptr(time.Monday),
		TimeSlot:     domain.Slot0800,
	}}
	bookings := []*domain.Booking{{
		ProviderIDs:   []int64{1},
		Status:        domain.StatusConfirmed,
		ScheduledDate: testDate,
		ScheduledTime: domain.Slot1000,
	}}

	first := Resolve(activeProvider(), testDate, domain.Slot1000, blockouts, bookings)
	second := Resolve(activeProvider(), testDate, domain.Slot1000, blockouts, bookings)
	assert.Equal(t, first, second)
}
