package get_provider_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
)

// UseCase use case расписания исполнителя: статус каждого слота на дату
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	blockoutRepo BlockoutRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	blockoutRepo BlockoutRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		blockoutRepo: blockoutRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания
// Один набор блокировок и бронирований резолвится для всех шести слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetProviderSchedule: provider=%d, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetProviderSchedule: validation failed: %v", err)
		return nil, err
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetProviderSchedule: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetProviderSchedule: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	blockouts, err := uc.blockoutRepo.ListByProviderID(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetProviderSchedule: failed to list blockouts for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to list blockouts: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetProviderSchedule: failed to get bookings for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots := make([]SlotStatus, 0, len(domain.BookableSlots))
	for _, slot := range domain.BookableSlots {
		resolution := availability.Resolve(provider, req.Date, slot, blockouts, bookings)
		slots = append(slots, SlotStatus{
			TimeSlot:      string(slot),
			Status:        string(resolution.Status),
			Reason:        resolution.Reason,
			ConflictCount: resolution.ConflictCount,
		})
	}

	return &Response{
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		Date:         req.Date,
		Slots:        slots,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
