package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/statemachine"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// UseCase use case для смены статуса бронирования исполнителем
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса
//
// Переход валидируется статусной машиной от зафиксированного состояния:
// конкурентные смены статуса сериализуются, вторая идет от результата первой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, user=%d, target=%s", req.BookingID, req.UserID, req.Status)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	target := domain.BookingStatus(req.Status)

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Статус меняет назначенный исполнитель; владельцу доступно только
		// подтверждение (pending -> confirmed), рабочую цепочку ведет исполнитель
		isProvider := booking.HasProvider(req.UserID)
		if !isProvider && booking.CustomerID != req.UserID {
			uc.logger.Warn("UpdateBookingStatus: user id=%d has no access to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}
		if !isProvider && target != domain.StatusConfirmed {
			uc.logger.Warn("UpdateBookingStatus: owner id=%d may only confirm booking id=%d, requested %s",
				req.UserID, req.BookingID, target)
			return ErrAccessDenied
		}

		// 3. Переход статусной машины
		updated, err := statemachine.Advance(booking, target, req.Reason, now)
		if err != nil {
			switch {
			case errors.Is(err, statemachine.ErrDelayReasonRequired):
				uc.logger.Warn("UpdateBookingStatus: delay reason missing for booking id=%d", req.BookingID)
				return ErrDelayReasonRequired
			case errors.Is(err, statemachine.ErrInvalidTransition), errors.Is(err, statemachine.ErrUnknownStatus):
				uc.logger.Warn("UpdateBookingStatus: transition %s -> %s rejected for booking id=%d",
					booking.Status, target, req.BookingID)
				return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
			default:
				uc.logger.Error("UpdateBookingStatus: transition failed for booking id=%d: %v", req.BookingID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
		}

		// 4. Фиксируем новый статус и отметки времени перехода
		if err := uc.bookingRepo.ApplyStatus(txCtx, updated); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to apply status for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to apply status: %v", ErrInternal, err)
		}

		response = &Response{
			ID:          updated.ID,
			Status:      string(updated.Status),
			StartedAt:   updated.StartedAt,
			CompletedAt: updated.CompletedAt,
			DelayReason: updated.DelayReason,
			UpdatedAt:   now,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved to %s", response.ID, response.Status)

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
	if req.Status == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidInput)
	}
	if !domain.IsValidStatus(domain.BookingStatus(req.Status)) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	// Отмена идет через отдельный usecase с политикой и расчетом комиссии
	if domain.BookingStatus(req.Status) == domain.StatusCancelled {
		return fmt.Errorf("%w: cancellation must go through the cancel operation", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxDelayReasonLength {
		return fmt.Errorf("%w: reason too long, max %d characters", ErrInvalidInput, domain.MaxDelayReasonLength)
	}
	return nil
}
