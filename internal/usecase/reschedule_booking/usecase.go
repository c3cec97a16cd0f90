package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для переноса бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	blockoutRepo BlockoutRepository
	policyConfig domain.PolicyConfig
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	blockoutRepo BlockoutRepository,
	policyConfig domain.PolicyConfig,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		blockoutRepo: blockoutRepo,
		policyConfig: policyConfig,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
//
// Решение политики, проверка занятости нового слота и запись идут в одной
// сериализуемой транзакции - перенос не может обогнать конкурирующее
// бронирование на тот же слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, new_date=%s, new_slot=%s",
		req.BookingID, req.UserID, req.NewDate.Format(domain.DateFormat), req.NewSlot)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.NewDate, now); err != nil {
		uc.logger.Warn("RescheduleBooking: new date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, err
	}

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Переносить может только владелец бронирования
		if booking.CustomerID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user id=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Решение политики переноса
		decision := policy.EvaluateReschedule(booking, uc.policyConfig, now)
		if !decision.Allowed {
			uc.logger.Warn("RescheduleBooking: policy denied reschedule of booking id=%d: %s", req.BookingID, decision.Reason)
			return &PolicyViolationError{Decision: decision}
		}

		// 4. Доступность каждого назначенного исполнителя в новое время
		// Собственные записи бронирования не считаются конфликтом
		for _, providerID := range booking.ProviderIDs {
			provider, err := uc.providerRepo.GetByID(txCtx, providerID)
			if err != nil {
				if errors.Is(err, providerRepo.ErrProviderNotFound) {
					uc.logger.Warn("RescheduleBooking: provider id=%d not found", providerID)
					return fmt.Errorf("%w: provider id=%d", ErrProviderUnavailable, providerID)
				}
				uc.logger.Error("RescheduleBooking: failed to get provider id=%d: %v", providerID, err)
				return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
			}

			blockouts, err := uc.blockoutRepo.ListByProviderID(txCtx, providerID)
			if err != nil {
				uc.logger.Error("RescheduleBooking: failed to list blockouts for provider id=%d: %v", providerID, err)
				return fmt.Errorf("%w: failed to list blockouts: %v", ErrInternal, err)
			}

			bookings, err := uc.bookingRepo.GetByProviderAndDate(txCtx, providerID, req.NewDate)
			if err != nil {
				uc.logger.Error("RescheduleBooking: failed to get bookings for provider id=%d: %v", providerID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			others := excludeBooking(bookings, booking.ID)

			resolution := availability.Resolve(provider, req.NewDate, req.NewSlot, blockouts, others)
			switch resolution.Status {
			case availability.StatusAvailable:
				// Продолжаем
			case availability.StatusBusy:
				uc.logger.Warn("RescheduleBooking: provider id=%d busy at new time: %s", providerID, resolution.Reason)
				return fmt.Errorf("%w: provider id=%d: %s", ErrSlotTaken, providerID, resolution.Reason)
			default:
				uc.logger.Warn("RescheduleBooking: provider id=%d %s at new time: %s", providerID, resolution.Status, resolution.Reason)
				return fmt.Errorf("%w: provider id=%d: %s", ErrProviderUnavailable, providerID, resolution.Reason)
			}
		}

		// 5. Фиксируем перенос с аудитом прежних даты и слота
		err = uc.bookingRepo.Reschedule(txCtx, booking.ID, req.NewDate, req.NewSlot, booking.ScheduledDate, booking.ScheduledTime)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		response = &Response{
			ID:                   booking.ID,
			Status:               string(booking.Status),
			Date:                 req.NewDate,
			TimeSlot:             string(req.NewSlot),
			PreviousDate:         booking.ScheduledDate,
			PreviousTimeSlot:     string(booking.ScheduledTime),
			RescheduleCount:      booking.RescheduleCount + 1,
			RemainingReschedules: decision.Remaining - 1,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("RescheduleBooking: serialization conflict for booking=%d: %v", req.BookingID, err)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s, reschedules used %d",
		response.ID, response.Date.Format(domain.DateFormat), response.TimeSlot, response.RescheduleCount)

	return response, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if !req.NewSlot.IsZero() {
		if err := req.NewSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

// validateDate проверяет, что новая дата не в прошлом
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// excludeBooking убирает из списка само переносимое бронирование
func excludeBooking(bookings []*domain.Booking, id int64) []*domain.Booking {
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
