package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = 42
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByProviderAndDate(_ context.Context, providerID int64, _ time.Time) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.existing {
		if b.HasProvider(providerID) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	providers map[int64]*domain.Provider
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	p, ok := f.providers[id]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type fakeBlockoutRepo struct {
	blockouts []*domain.Blockout
}

func (f *fakeBlockoutRepo) ListByProviderID(_ context.Context, providerID int64) ([]*domain.Blockout, error) {
	out := make([]*domain.Blockout, 0)
	for _, b := range f.blockouts {
		if b.ProviderID == providerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalog) GetServiceWithGracefulDegradation(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return f.service, f.err
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func plumbingService() *catalogservice.Service {
	return &catalogservice.Service{ID: 7, Name: "Прочистка труб", Category: "сантехника", Active: true}
}

func plumber(id int64) *domain.Provider {
	return &domain.Provider{
		ID:             id,
		Name:           "Иван",
		IsActive:       true,
		Specialization: []string{"сантехника"},
		AverageRating:  4.8,
	}
}

func futureDate() time.Time {
	return time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
}

func validRequest() *Request {
	return &Request{
		CustomerID:  100,
		ServiceID:   7,
		Date:        futureDate(),
		TimeSlot:    domain.Slot1000,
		ProviderIDs: []int64{1},
		TotalAmount: 500,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, providers *fakeProviderRepo, tx *fakeTxManager) *UseCase {
	return NewUseCase(
		bookings,
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{service: plumbingService()},
		tx,
		nopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(bookings, providers, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, "Прочистка труб", resp.ServiceName)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	require.NotNil(t, bookings.created)
	assert.Equal(t, []int64{1}, bookings.created.ProviderIDs)
}

func TestExecute_SlotTaken(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{{
			ID:            5,
			ProviderIDs:   []int64{1},
			ScheduledDate: futureDate(),
			ScheduledTime: domain.Slot1000,
			Status:        domain.StatusConfirmed,
		}},
	}
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(bookings, providers, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, bookings.created)
}

func TestExecute_CancelledBookingReleasesSlot(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{{
			ID:            5,
			ProviderIDs:   []int64{1},
			ScheduledDate: futureDate(),
			ScheduledTime: domain.Slot1000,
			Status:        domain.StatusCancelled,
		}},
	}
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(bookings, providers, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecute_ProviderNotQualified(t *testing.T) {
	electrician := plumber(1)
	electrician.Specialization = []string{"электрика"}

	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: electrician}}
	uc := newTestUseCase(&fakeBookingRepo{}, providers, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrProviderNotQualified)
}

func TestExecute_ProviderBlocked(t *testing.T) {
	bookings := &fakeBookingRepo{}
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	date := futureDate()

	uc := NewUseCase(
		bookings,
		providers,
		&fakeBlockoutRepo{blockouts: []*domain.Blockout{{
			ProviderID: 1,
			Date:       &date,
			TimeSlot:   domain.SlotAllDay,
			Reason:     "отпуск",
		}}},
		&fakeCatalog{service: plumbingService()},
		&fakeTxManager{},
		nopLogger{},
	)

	req := validRequest()
	req.Date = date
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestExecute_SerializationConflict(t *testing.T) {
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(&fakeBookingRepo{}, providers, &fakeTxManager{err: txmanager.ErrSerializationConflict})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_DateInPast(t *testing.T) {
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(&fakeBookingRepo{}, providers, &fakeTxManager{})

	req := validRequest()
	req.Date = time.Now().AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationErrors(t *testing.T) {
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}
	uc := newTestUseCase(&fakeBookingRepo{}, providers, &fakeTxManager{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no customer", func(r *Request) { r.CustomerID = 0 }},
		{"no providers", func(r *Request) { r.ProviderIDs = nil }},
		{"duplicate providers", func(r *Request) { r.ProviderIDs = []int64{1, 1} }},
		{"bad slot", func(r *Request) { r.TimeSlot = domain.TimeSlot("07:00-09:00") }},
		{"all_day slot", func(r *Request) { r.TimeSlot = domain.SlotAllDay }},
		{"negative amount", func(r *Request) { r.TotalAmount = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_CatalogDegradedStillCreates(t *testing.T) {
	bookings := &fakeBookingRepo{}
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}

	uc := NewUseCase(
		bookings,
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{err: catalogservice.ErrServiceDegraded},
		&fakeTxManager{},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	// Без каталога нет денормализации, но бронирование создается
	assert.Empty(t, resp.ServiceName)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	providers := &fakeProviderRepo{providers: map[int64]*domain.Provider{1: plumber(1)}}

	uc := NewUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{err: catalogservice.ErrServiceNotFound},
		&fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
