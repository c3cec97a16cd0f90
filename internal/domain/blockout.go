package domain

import "time"

// Blockout represents a provider's declared unavailability window,
// either one-off (concrete date) or weekly-recurring (day of week)
// Invariant: a recurring blockout has no concrete date and vice versa
type Blockout struct {
	ID         int64
	ProviderID int64

	Date         *time.Time // one-off: the blocked date
	IsRecurring  bool
	RecurringDay *time.Weekday // recurring: day of week (Sunday = 0)

	// One of the fixed slots, or SlotAllDay for the whole day
	TimeSlot TimeSlot
	Reason   string

	CreatedAt time.Time
}

// AppliesTo returns true if the blockout is in effect on the given date
func (b *Blockout) AppliesTo(date time.Time) bool {
	if b.IsRecurring {
		return b.RecurringDay != nil && *b.RecurringDay == date.Weekday()
	}
	return b.Date != nil && sameDate(*b.Date, date)
}

// Covers returns true if the blockout covers the requested slot
// An all_day blockout covers everything; an unspecified request slot is
// covered by any blockout that applies to the date
func (b *Blockout) Covers(slot TimeSlot) bool {
	if b.TimeSlot.IsAllDay() {
		return true
	}
	if slot.IsZero() {
		return true
	}
	return b.TimeSlot == slot
}

// sameDate compares two timestamps by calendar date only
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
