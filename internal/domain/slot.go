package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeSlot is one of the fixed set of 2-hour scheduling windows
// Adding a new slot format is a breaking change for every consumer
type TimeSlot string

const (
	Slot0800 TimeSlot = "08:00-10:00"
	Slot1000 TimeSlot = "10:00-12:00"
	Slot1200 TimeSlot = "12:00-14:00"
	Slot1400 TimeSlot = "14:00-16:00"
	Slot1600 TimeSlot = "16:00-18:00"
	Slot1800 TimeSlot = "18:00-20:00"

	// SlotAllDay is a sentinel used by blockouts to cover the whole day;
	// it is not a bookable slot
	SlotAllDay TimeSlot = "all_day"
)

// BookableSlots перечень бронируемых слотов в хронологическом порядке
var BookableSlots = []TimeSlot{
	Slot0800,
	Slot1000,
	Slot1200,
	Slot1400,
	Slot1600,
	Slot1800,
}

var (
	// ErrUnknownTimeSlot возвращается для слота вне закрытого набора
	ErrUnknownTimeSlot = errors.New("domain: unknown time slot")
)

// IsZero returns true when no slot is set
func (s TimeSlot) IsZero() bool {
	return s == ""
}

// IsAllDay returns true for the all_day blockout sentinel
func (s TimeSlot) IsAllDay() bool {
	return s == SlotAllDay
}

// Validate checks that the slot belongs to the fixed bookable set
func (s TimeSlot) Validate() error {
	for _, slot := range BookableSlots {
		if s == slot {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTimeSlot, string(s))
}

// Start returns the first endpoint of the slot window ("08:00-10:00" -> "08:00")
func (s TimeSlot) Start() (types.TimeString, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	start, _, _ := strings.Cut(string(s), "-")
	return types.TimeString(start), nil
}

// StartOrDefault returns the slot start, or 09:00 when no slot is set
// This is the time-of-day the policy engine anchors deadline math to
func (s TimeSlot) StartOrDefault() types.TimeString {
	start, err := s.Start()
	if err != nil {
		return types.TimeString(DefaultServiceStartTime)
	}
	return start
}

// String returns the slot label
func (s TimeSlot) String() string {
	return string(s)
}

// ParseTimeSlot validates and converts a raw slot label
// An empty string is allowed and means "slot not specified"
func ParseTimeSlot(raw string) (TimeSlot, error) {
	if raw == "" {
		return "", nil
	}
	slot := TimeSlot(raw)
	if err := slot.Validate(); err != nil {
		return "", err
	}
	return slot, nil
}
