package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelledID     int64
	cancelledFee    float64
	cancelledReason string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, fee float64, reason string) error {
	f.cancelledID = id
	f.cancelledFee = fee
	f.cancelledReason = reason
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// Бронирование на 12 ноября 2025, слот 14:00-16:00, стоимость 400
func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            10,
		CustomerID:    100,
		Status:        domain.StatusConfirmed,
		TotalAmount:   400,
		ScheduledDate: time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
		ScheduledTime: domain.Slot1400,
	}
}

func newTestUseCase(repo *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, domain.DefaultPolicyConfig(), fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_FreeCancellation(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	// За двое суток до услуги
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, string(policy.TierFree), resp.Tier)
	assert.Equal(t, float64(0), resp.FeeAmount)
	assert.Equal(t, float64(400), resp.RefundAmount)
	assert.Equal(t, int64(10), repo.cancelledID)
	assert.Equal(t, float64(0), repo.cancelledFee)
}

func TestExecute_LateCancellationFee(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	// За 10 часов до услуги - удерживается 25%
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 4, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})

	require.NoError(t, err)
	assert.Equal(t, string(policy.TierLate), resp.Tier)
	assert.Equal(t, float64(100), resp.FeeAmount)
	assert.Equal(t, float64(300), resp.RefundAmount)
	assert.Equal(t, float64(100), repo.cancelledFee)
}

func TestExecute_CustomReasonStored(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC))

	reason := "изменились планы"
	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100, Reason: &reason})

	require.NoError(t, err)
	assert.Equal(t, reason, repo.cancelledReason)
}

func TestExecute_PolicyViolationCarriesDecision(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusInProgress
	repo := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})

	var policyErr *PolicyViolationError
	require.ErrorAs(t, err, &policyErr)
	assert.False(t, policyErr.Decision.Allowed)
	assert.Equal(t, policy.TierBlocked, policyErr.Decision.Tier)
	assert.NotEmpty(t, policyErr.Decision.Reason)
	// Запись не тронута
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_ServiceAlreadyStarted(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	// Через час после начала услуги
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 15, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})

	var policyErr *PolicyViolationError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, policy.TierBlocked, policyErr.Decision.Tier)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking()}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 999})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, UserID: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 10, UserID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
