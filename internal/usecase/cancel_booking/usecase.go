package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/statemachine"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования клиентом
type UseCase struct {
	bookingRepo  BookingRepository
	policyConfig domain.PolicyConfig
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policyConfig domain.PolicyConfig,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policyConfig: policyConfig,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
//
// Чтение, решение политики и запись идут в одной сериализуемой транзакции:
// решение всегда принимается от зафиксированного состояния бронирования,
// повторная отмена упрется в переход cancelled -> cancelled и вернет ошибку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var response *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменять может только владелец бронирования
		if booking.CustomerID != req.UserID {
			uc.logger.Warn("CancelBooking: user id=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Решение политики отмены
		decision := policy.EvaluateCancellation(booking, uc.policyConfig, now)
		if !decision.Allowed {
			uc.logger.Warn("CancelBooking: policy denied cancellation of booking id=%d: %s", req.BookingID, decision.Reason)
			return &PolicyViolationError{Decision: decision}
		}

		// 4. Переход статусной машины подтверждает допустимость отмены
		reason := decision.Reason
		if req.Reason != nil && *req.Reason != "" {
			reason = *req.Reason
		}
		if _, err := statemachine.Advance(booking, domain.StatusCancelled, &reason, now); err != nil {
			uc.logger.Warn("CancelBooking: transition rejected for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}

		// 5. Фиксируем отмену с комиссией
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, decision.FeeAmount, reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		response = &Response{
			ID:           booking.ID,
			Status:       string(domain.StatusCancelled),
			Tier:         string(decision.Tier),
			FeePercent:   decision.FeePercent,
			FeeAmount:    decision.FeeAmount,
			RefundAmount: decision.RefundAmount,
			CancelledAt:  now,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, tier=%s, fee=%.2f",
		response.ID, response.Tier, response.FeeAmount)

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
	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason too long, max %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return nil
}
