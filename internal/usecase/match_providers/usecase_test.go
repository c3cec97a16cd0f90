package match_providers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

type fakeBookingRepo struct {
	byProvider map[int64][]*domain.Booking
}

func (f *fakeBookingRepo) GetByProviderAndDate(_ context.Context, providerID int64, _ time.Time) ([]*domain.Booking, error) {
	return f.byProvider[providerID], nil
}

type fakeProviderRepo struct {
	providers []*domain.Provider
}

func (f *fakeProviderRepo) ListActive(_ context.Context) ([]*domain.Provider, error) {
	return f.providers, nil
}

type fakeBlockoutRepo struct {
	byProvider map[int64][]*domain.Blockout
}

func (f *fakeBlockoutRepo) ListByProviderID(_ context.Context, providerID int64) ([]*domain.Blockout, error) {
	return f.byProvider[providerID], nil
}

type fakeCatalog struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalog) GetServiceWithGracefulDegradation(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return f.service, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func plumbingService() *catalogservice.Service {
	return &catalogservice.Service{ID: 5, Name: "Прочистка труб", Category: "сантехника", Active: true}
}

func provider(id int64, rating float64, tags ...string) *domain.Provider {
	return &domain.Provider{
		ID:             id,
		Name:           "Исполнитель",
		IsActive:       true,
		Specialization: tags,
		AverageRating:  rating,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, providers *fakeProviderRepo, blockouts *fakeBlockoutRepo, catalog *fakeCatalog) *UseCase {
	return NewUseCase(bookings, providers, blockouts, catalog, nopLogger{})
}

func TestExecute_QualifiedRankedAboveUnqualified(t *testing.T) {
	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 5.0, "электрика"),
		provider(2, 3.0, "сантехника"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{service: plumbingService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 2)
	// Квалифицированный сантехник выше электрика с лучшим рейтингом
	assert.Equal(t, int64(2), resp.Providers[0].ID)
	assert.True(t, resp.Providers[0].Qualified)
	assert.Equal(t, int64(1), resp.Providers[1].ID)
	assert.False(t, resp.Providers[1].Qualified)
}

func TestExecute_AvailabilityBreaksTies(t *testing.T) {
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	busyBooking := &domain.Booking{
		ID:            77,
		Status:        domain.StatusConfirmed,
		ScheduledDate: date,
		ScheduledTime: domain.Slot1400,
		ProviderIDs:   []int64{1},
	}

	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 5.0, "сантехника"),
		provider(2, 4.0, "сантехника"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{byProvider: map[int64][]*domain.Booking{1: {busyBooking}}},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{service: plumbingService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5, Date: date, TimeSlot: domain.Slot1400})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 2)
	// Свободный исполнитель выше занятого, несмотря на рейтинг
	assert.Equal(t, int64(2), resp.Providers[0].ID)
	assert.Equal(t, string(availability.StatusAvailable), resp.Providers[0].AvailabilityStatus)
	assert.Equal(t, int64(1), resp.Providers[1].ID)
	assert.Equal(t, string(availability.StatusBusy), resp.Providers[1].AvailabilityStatus)
	assert.Equal(t, 1, resp.Providers[1].ConflictCount)
}

func TestExecute_RatingBreaksFinalTies(t *testing.T) {
	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 3.5, "сантехника"),
		provider(2, 4.8, "сантехника"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{service: plumbingService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 2)
	assert.Equal(t, int64(2), resp.Providers[0].ID)
	assert.Equal(t, int64(1), resp.Providers[1].ID)
}

func TestExecute_NoDateMeansUnknownAvailability(t *testing.T) {
	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 4.0, "сантехника"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{service: plumbingService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 1)
	assert.Equal(t, string(availability.StatusUnknown), resp.Providers[0].AvailabilityStatus)
}

func TestExecute_BlockedProviderGoesDown(t *testing.T) {
	date := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	blocked := date
	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 5.0, "сантехника"),
		provider(2, 3.0, "сантехника"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{byProvider: map[int64][]*domain.Blockout{
			1: {{ProviderID: 1, Date: &blocked, TimeSlot: domain.SlotAllDay, Reason: "отпуск"}},
		}},
		&fakeCatalog{service: plumbingService()},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5, Date: date, TimeSlot: domain.Slot1400})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 2)
	assert.Equal(t, int64(2), resp.Providers[0].ID)
	assert.Equal(t, string(availability.StatusBlocked), resp.Providers[1].AvailabilityStatus)
	assert.Equal(t, "отпуск", resp.Providers[1].AvailabilityReason)
}

func TestExecute_CatalogDegradedTreatsAllQualified(t *testing.T) {
	providers := &fakeProviderRepo{providers: []*domain.Provider{
		provider(1, 4.0, "электрика"),
	}}
	uc := newTestUseCase(
		&fakeBookingRepo{},
		providers,
		&fakeBlockoutRepo{},
		&fakeCatalog{err: catalogservice.ErrServiceDegraded},
	)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 5})

	require.NoError(t, err)
	require.Len(t, resp.Providers, 1)
	assert.True(t, resp.Providers[0].Qualified)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeProviderRepo{},
		&fakeBlockoutRepo{},
		&fakeCatalog{err: catalogservice.ErrServiceNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 5})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeProviderRepo{}, &fakeBlockoutRepo{}, &fakeCatalog{})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 5, TimeSlot: domain.TimeSlot("13:00-15:00")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
