package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	booking *domain.Booking

	applied *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) ApplyStatus(_ context.Context, booking *domain.Booking) error {
	f.applied = booking
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

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          10,
		CustomerID:  100,
		Status:      status,
		ProviderIDs: []int64{7},
	}
}

func newTestUseCase(repo *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_ProviderStartsWork(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusEnRoute)}
	now := time.Date(2025, 11, 12, 14, 5, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "in_progress"})

	require.NoError(t, err)
	assert.Equal(t, "in_progress", resp.Status)
	require.NotNil(t, resp.StartedAt)
	assert.Equal(t, now, *resp.StartedAt)
	require.NotNil(t, repo.applied)
	assert.Equal(t, domain.StatusInProgress, repo.applied.Status)
}

func TestExecute_CustomerConfirmsBooking(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_CompletedSetsCompletedAt(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusInProgress)}
	now := time.Date(2025, 11, 12, 16, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "completed"})

	require.NoError(t, err)
	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, now, *resp.CompletedAt)
}

func TestExecute_DelayedRequiresReason(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusEnRoute)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 13, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "delayed"})
	assert.ErrorIs(t, err, ErrDelayReasonRequired)

	reason := "застрял в пробке"
	resp, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "delayed", Reason: &reason})
	require.NoError(t, err)
	require.NotNil(t, resp.DelayReason)
	assert.Equal(t, reason, *resp.DelayReason)
}

func TestExecute_InvalidTransition(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC))

	// pending -> completed минуя основную цепочку
	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.applied)
}

func TestExecute_DelayedIsDeadEnd(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusDelayed)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 13, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "in_progress"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_CancellationRejected(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC))

	// Отмена только через отдельную операцию с политикой
	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "cancelled"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OwnerLimitedToConfirmation(t *testing.T) {
	for _, target := range []string{"en_route", "in_progress", "completed"} {
		repo := &fakeBookingRepo{booking: testBooking(domain.StatusEnRoute)}
		uc := newTestUseCase(repo, time.Date(2025, 11, 12, 13, 0, 0, 0, time.UTC))

		// Владелец пытается вести рабочую цепочку за исполнителя
		_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 100, Status: target})

		assert.ErrorIs(t, err, ErrAccessDenied, "target %s", target)
		assert.Nil(t, repo.applied)
	}
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusEnRoute)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 13, 0, 0, 0, time.UTC))

	// Пользователь не назначен и не владелец
	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 999, Status: "in_progress"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, time.Date(2025, 11, 12, 13, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_UnknownStatus(t *testing.T) {
	repo := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(repo, time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10, UserID: 7, Status: "paused"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
