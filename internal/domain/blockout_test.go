package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func TestBlockout_AppliesTo(t *testing.T) {
	monday := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	oneOff := &Blockout{Date: ptr.Ptr(monday), TimeSlot: SlotAllDay}
	assert.True(t, oneOff.AppliesTo(monday))
	// Совпадение по календарной дате, время суток не важно
	assert.True(t, oneOff.AppliesTo(monday.Add(15*time.Hour)))
	assert.False(t, oneOff.AppliesTo(monday.AddDate(0, 0, 1)))

	recurring := &Blockout{IsRecurring: true, RecurringDay: ptr.Ptr(time.Monday), TimeSlot: SlotAllDay}
	assert.True(t, recurring.AppliesTo(monday))
	assert.True(t, recurring.AppliesTo(monday.AddDate(0, 0, 7)))
	assert.False(t, recurring.AppliesTo(monday.AddDate(0, 0, 3)))

	// Некорректная recurring-запись без дня недели никогда не действует
	broken := &Blockout{IsRecurring: true}
	assert.False(t, broken.AppliesTo(monday))
}

func TestBlockout_Covers(t *testing.T) {
	allDay := &Blockout{TimeSlot: SlotAllDay}
	assert.True(t, allDay.Covers(Slot0800))
	assert.True(t, allDay.Covers(""))

	slotted := &Blockout{TimeSlot: Slot1000}
	assert.True(t, slotted.Covers(Slot1000))
	assert.False(t, slotted.Covers(Slot1200))
	// Запрос без слота накрывается любой действующей блокировкой
	assert.True(t, slotted.Covers(""))
}
