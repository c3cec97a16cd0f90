package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Фиксированное бронирование: 12 ноября 2025, слот 08:00-10:00
// Начало услуги - 12 ноября 08:00 UTC
var serviceStart = time.Date(2025, 11, 12, 8, 0, 0, 0, time.UTC)

func testBooking(amount float64) *domain.Booking {
	return &domain.Booking{
		Status:        domain.StatusConfirmed,
		TotalAmount:   amount,
		ScheduledDate: time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
		ScheduledTime: domain.Slot0800,
	}
}

// nowHoursBefore момент времени за hours часов до начала услуги
func nowHoursBefore(hours float64) time.Time {
	return serviceStart.Add(-time.Duration(hours * float64(time.Hour)))
}

func TestEvaluateCancellation_FreeTier(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(30))

	require.True(t, decision.Allowed)
	assert.Equal(t, TierFree, decision.Tier)
	assert.Equal(t, float64(0), decision.FeeAmount)
	assert.Equal(t, float64(400), decision.RefundAmount)
}

func TestEvaluateCancellation_ExactlyAtFreeBoundary(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	// Ровно 24 часа - еще бесплатно (граница включается)
	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(24))
	require.True(t, decision.Allowed)
	assert.Equal(t, TierFree, decision.Tier)
}

func TestEvaluateCancellation_LateTier(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(10))

	require.True(t, decision.Allowed)
	assert.Equal(t, TierLate, decision.Tier)
	assert.Equal(t, int64(25), decision.FeePercent)
	assert.Equal(t, float64(100), decision.FeeAmount)
	assert.Equal(t, float64(300), decision.RefundAmount)
}

func TestEvaluateCancellation_SameDayTier(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(2))

	require.True(t, decision.Allowed)
	assert.Equal(t, TierSameDay, decision.Tier)
	assert.Equal(t, int64(50), decision.FeePercent)
	assert.Equal(t, float64(200), decision.FeeAmount)
	assert.Equal(t, float64(200), decision.RefundAmount)
}

func TestEvaluateCancellation_PastServiceBlocked(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(100000)

	// Услуга началась 5 часов назад - отмена заблокирована независимо от суммы
	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(-5))

	require.False(t, decision.Allowed)
	assert.Equal(t, TierBlocked, decision.Tier)
	assert.NotEmpty(t, decision.Reason)
}

func TestEvaluateCancellation_StatusOutsidePolicy(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()

	for _, status := range []domain.BookingStatus{
		domain.StatusEnRoute,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusDelayed,
		domain.StatusCancelled,
	} {
		booking := testBooking(400)
		booking.Status = status

		decision := EvaluateCancellation(booking, cfg, nowHoursBefore(48))
		assert.False(t, decision.Allowed, "status %s", status)
		assert.Equal(t, TierBlocked, decision.Tier, "status %s", status)
	}
}

func TestEvaluateCancellation_DefaultStartTimeWhenSlotEmpty(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()

	// Слот не выбран: началом считается 09:00
	booking := testBooking(400)
	booking.ScheduledTime = ""

	// 11 ноября 12:00 -> до 12 ноября 09:00 остается 21 час: поздняя отмена
	now := time.Date(2025, 11, 11, 12, 0, 0, 0, time.UTC)
	decision := EvaluateCancellation(booking, cfg, now)

	require.True(t, decision.Allowed)
	assert.Equal(t, TierLate, decision.Tier)

	// А за 33 часа (10 ноября 00:00) - еще бесплатно
	now = time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	decision = EvaluateCancellation(booking, cfg, now)
	require.True(t, decision.Allowed)
	assert.Equal(t, TierFree, decision.Tier)
}

func TestEvaluateCancellation_FeeRefundReconstructTotal(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()

	// Сумма, на которой float-арифметика обычно теряет копейки
	booking := testBooking(333.33)
	decision := EvaluateCancellation(booking, cfg, nowHoursBefore(10))

	require.True(t, decision.Allowed)
	assert.InDelta(t, 83.33, decision.FeeAmount, 0.001)
	assert.InDelta(t, 250.00, decision.RefundAmount, 0.001)
	assert.InDelta(t, booking.TotalAmount, decision.FeeAmount+decision.RefundAmount, 1e-9)
}

func TestEvaluateCancellation_Idempotent(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)
	now := nowHoursBefore(10)

	first := EvaluateCancellation(booking, cfg, now)
	second := EvaluateCancellation(booking, cfg, now)

	assert.Equal(t, first, second)
	// Решение не мутирует бронирование
	assert.Nil(t, booking.CancellationFee)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
}

func TestEvaluateReschedule_Allowed(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	decision := EvaluateReschedule(booking, cfg, nowHoursBefore(48))

	require.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.Remaining)
}

func TestEvaluateReschedule_CountsDownRemaining(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)
	booking.RescheduleCount = 1

	decision := EvaluateReschedule(booking, cfg, nowHoursBefore(48))

	require.True(t, decision.Allowed)
	assert.Equal(t, 1, decision.Remaining)
}

func TestEvaluateReschedule_LimitExhausted(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)
	booking.RescheduleCount = 2

	// Лимит исчерпан даже за 48 часов до услуги
	decision := EvaluateReschedule(booking, cfg, nowHoursBefore(48))

	require.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Reason)
}

func TestEvaluateReschedule_TooCloseToService(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)

	decision := EvaluateReschedule(booking, cfg, nowHoursBefore(2))
	require.False(t, decision.Allowed)
}

func TestEvaluateReschedule_StatusOutsidePolicy(t *testing.T) {
	cfg := domain.DefaultPolicyConfig()
	booking := testBooking(400)
	booking.Status = domain.StatusInProgress

	decision := EvaluateReschedule(booking, cfg, nowHoursBefore(48))
	require.False(t, decision.Allowed)
}

func TestHoursUntilService(t *testing.T) {
	booking := &domain.Booking{
		ScheduledDate: time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC),
		ScheduledTime: domain.Slot1400,
	}

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	// Начало - 11 ноября 14:00
	assert.InDelta(t, 26, HoursUntilService(booking, now), 1e-9)
}
