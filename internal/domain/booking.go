package domain

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusEnRoute    BookingStatus = "en_route"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusDelayed    BookingStatus = "delayed"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid            PaymentStatus = "unpaid"
	PaymentPaid              PaymentStatus = "paid"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentRefunded          PaymentStatus = "refunded"
)

// Booking represents a service booking in the system
type Booking struct {
	ID         int64
	CustomerID int64
	ServiceID  int64

	ScheduledDate time.Time
	ScheduledTime TimeSlot // empty means "no slot picked yet"

	// Ordered set of assigned providers; the first one is the "primary"
	// provider for display purposes only
	ProviderIDs []int64

	Status        BookingStatus
	TotalAmount   float64
	PaymentStatus PaymentStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CancellationFee    *float64
	CancellationReason *string
	CancelledAt        *time.Time

	RescheduleCount     int
	RescheduledFromDate *time.Time
	RescheduledFromTime *TimeSlot

	DelayReason *string
	StartedAt   *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
// Cancelled bookings are the only ones that release the slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if the booking reached a terminal state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// HasProvider returns true if the provider is assigned to this booking,
// as primary or as a member of the multi-provider set
func (b *Booking) HasProvider(providerID int64) bool {
	for _, id := range b.ProviderIDs {
		if id == providerID {
			return true
		}
	}
	return false
}

// PrimaryProviderID returns the first assigned provider, nil when unassigned
func (b *Booking) PrimaryProviderID() *int64 {
	if len(b.ProviderIDs) == 0 {
		return nil
	}
	id := b.ProviderIDs[0]
	return &id
}

// ScheduledStart returns the concrete point in time the service starts:
// the first endpoint of the scheduled slot, or 09:00 when no slot is set
func (b *Booking) ScheduledStart() time.Time {
	start := b.ScheduledTime.StartOrDefault()

	at, err := start.At(b.ScheduledDate)
	if err != nil {
		// Недостижимо для слотов из закрытого набора, но на всякий случай
		// падаем на дефолтное время начала
		at, _ = types.TimeString(DefaultServiceStartTime).At(b.ScheduledDate)
	}
	return at
}

// IsValidStatus reports whether s is one of the known booking statuses
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusEnRoute, StatusInProgress,
		StatusCompleted, StatusDelayed, StatusCancelled:
		return true
	}
	return false
}
