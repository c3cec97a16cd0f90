package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

func TestTimeSlot_Validate(t *testing.T) {
	for _, slot := range BookableSlots {
		assert.NoError(t, slot.Validate(), "slot %s", slot)
	}

	assert.Error(t, TimeSlot("20:00-22:00").Validate())
	assert.Error(t, TimeSlot("8:00-10:00").Validate())
	assert.Error(t, SlotAllDay.Validate()) // all_day не бронируется
	assert.Error(t, TimeSlot("").Validate())
}

func TestTimeSlot_Start(t *testing.T) {
	start, err := Slot1400.Start()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), start)

	_, err = TimeSlot("").Start()
	assert.Error(t, err)
}

func TestTimeSlot_StartOrDefault(t *testing.T) {
	assert.Equal(t, types.TimeString("08:00"), Slot0800.StartOrDefault())
	assert.Equal(t, types.TimeString("09:00"), TimeSlot("").StartOrDefault())
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("10:00-12:00")
	require.NoError(t, err)
	assert.Equal(t, Slot1000, slot)

	// Пустая строка - "слот не указан", это не ошибка
	slot, err = ParseTimeSlot("")
	require.NoError(t, err)
	assert.True(t, slot.IsZero())

	_, err = ParseTimeSlot("09:00-11:00")
	assert.ErrorIs(t, err, ErrUnknownTimeSlot)
}

func TestBooking_ScheduledStart(t *testing.T) {
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	booking := &Booking{ScheduledDate: date, ScheduledTime: Slot1600}
	assert.Equal(t, time.Date(2025, 11, 12, 16, 0, 0, 0, time.UTC), booking.ScheduledStart())

	// Без слота - дефолтные 09:00
	booking = &Booking{ScheduledDate: date}
	assert.Equal(t, time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC), booking.ScheduledStart())
}

func TestBooking_HasProvider(t *testing.T) {
	booking := &Booking{ProviderIDs: []int64{3, 7}}

	assert.True(t, booking.HasProvider(3))
	assert.True(t, booking.HasProvider(7))
	assert.False(t, booking.HasProvider(5))
}

func TestBooking_PrimaryProviderID(t *testing.T) {
	booking := &Booking{ProviderIDs: []int64{3, 7}}
	require.NotNil(t, booking.PrimaryProviderID())
	assert.Equal(t, int64(3), *booking.PrimaryProviderID())

	assert.Nil(t, (&Booking{}).PrimaryProviderID())
}
