package domain

// PolicyConfig is the immutable cancellation/reschedule policy
// It is supplied from configuration at startup and passed by value into
// every policy evaluation - never a package-level singleton
type PolicyConfig struct {
	FreeCancellationHours float64 // >= this many hours before service: no fee
	LateFeePercent        int64   // fee for late cancellation
	SameDayFeePercent     int64   // fee for same-day cancellation
	SameDayThresholdHours float64 // < this many hours: same-day tier

	MaxReschedules      int
	MinRescheduleHours  float64
	CancellableStatuses []BookingStatus
	ReschedulableStatus []BookingStatus
}

// DefaultPolicyConfig returns the policy used when configuration omits the section
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		FreeCancellationHours: 24,
		LateFeePercent:        25,
		SameDayFeePercent:     50,
		SameDayThresholdHours: 4,
		MaxReschedules:        2,
		MinRescheduleHours:    4,
		CancellableStatuses:   []BookingStatus{StatusPending, StatusConfirmed},
		ReschedulableStatus:   []BookingStatus{StatusPending, StatusConfirmed},
	}
}

// IsCancellable returns true if the status allows cancellation under this policy
func (c PolicyConfig) IsCancellable(status BookingStatus) bool {
	return containsStatus(c.CancellableStatuses, status)
}

// IsReschedulable returns true if the status allows rescheduling under this policy
func (c PolicyConfig) IsReschedulable(status BookingStatus) bool {
	return containsStatus(c.ReschedulableStatus, status)
}

func containsStatus(statuses []BookingStatus, status BookingStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
