package get_cancellation_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/policy"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// UseCase use case котировки отмены и переноса
// Отвечает на "что будет, если отменить/перенести сейчас", ничего не меняя
type UseCase struct {
	bookingRepo  BookingRepository
	policyConfig domain.PolicyConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, policyConfig domain.PolicyConfig, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policyConfig: policyConfig,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения котировок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCancellationQuote: booking=%d, user=%d", req.BookingID, req.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCancellationQuote: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("GetCancellationQuote: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetCancellationQuote: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if booking.CustomerID != req.UserID {
		uc.logger.Warn("GetCancellationQuote: user id=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()

	cancellation := policy.EvaluateCancellation(booking, uc.policyConfig, now)
	reschedule := policy.EvaluateReschedule(booking, uc.policyConfig, now)

	return &Response{
		BookingID:  booking.ID,
		HoursUntil: policy.HoursUntilService(booking, now),
		Cancellation: CancellationQuote{
			Allowed:      cancellation.Allowed,
			Tier:         string(cancellation.Tier),
			FeePercent:   cancellation.FeePercent,
			FeeAmount:    cancellation.FeeAmount,
			RefundAmount: cancellation.RefundAmount,
			Reason:       cancellation.Reason,
		},
		Reschedule: RescheduleQuote{
			Allowed:   reschedule.Allowed,
			Remaining: reschedule.Remaining,
			Reason:    reschedule.Reason,
		},
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	return nil
}
