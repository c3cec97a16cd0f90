// Package policy политика отмены и переноса бронирований
// Чистые функции решения: бронирование не мутируется, PolicyConfig передается
// явно в каждый вызов, время берется из параметра now
package policy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// HoursUntilService возвращает число часов до начала услуги
// Временем начала считается первая граница слота (09:00, если слот не выбран)
func HoursUntilService(booking *domain.Booking, now time.Time) float64 {
	return booking.ScheduledStart().Sub(now).Hours()
}

// EvaluateCancellation вычисляет решение по отмене бронирования
// Проверки идут по порядку, первая сработавшая определяет результат:
//  1. статус вне cancellable -> blocked
//  2. услуга уже началась/прошла -> blocked
//  3. до услуги >= free_cancellation_hours -> free, без комиссии
//  4. до услуги >= same_day_threshold_hours -> late, комиссия late_fee_percent
//  5. иначе -> sameday, комиссия same_day_fee_percent
func EvaluateCancellation(booking *domain.Booking, cfg domain.PolicyConfig, now time.Time) CancellationDecision {
	if !cfg.IsCancellable(booking.Status) {
		return CancellationDecision{
			Allowed:      false,
			Tier:         TierBlocked,
			RefundAmount: 0,
			Reason:       fmt.Sprintf("бронирование в статусе %q нельзя отменить", booking.Status),
		}
	}

	hoursUntil := HoursUntilService(booking, now)
	if hoursUntil <= 0 {
		return CancellationDecision{
			Allowed: false,
			Tier:    TierBlocked,
			Reason:  "время услуги уже наступило, отмена недоступна",
		}
	}

	if hoursUntil >= cfg.FreeCancellationHours {
		return CancellationDecision{
			Allowed:      true,
			Tier:         TierFree,
			FeePercent:   0,
			FeeAmount:    0,
			RefundAmount: booking.TotalAmount,
			Reason:       "бесплатная отмена, полный возврат средств",
		}
	}

	if hoursUntil >= cfg.SameDayThresholdHours {
		fee, refund := splitFee(booking.TotalAmount, cfg.LateFeePercent)
		return CancellationDecision{
			Allowed:      true,
			Tier:         TierLate,
			FeePercent:   cfg.LateFeePercent,
			FeeAmount:    fee,
			RefundAmount: refund,
			Reason:       fmt.Sprintf("поздняя отмена, удерживается %d%% стоимости", cfg.LateFeePercent),
		}
	}

	fee, refund := splitFee(booking.TotalAmount, cfg.SameDayFeePercent)
	return CancellationDecision{
		Allowed:      true,
		Tier:         TierSameDay,
		FeePercent:   cfg.SameDayFeePercent,
		FeeAmount:    fee,
		RefundAmount: refund,
		Reason:       fmt.Sprintf("отмена день-в-день, удерживается %d%% стоимости", cfg.SameDayFeePercent),
	}
}

// EvaluateReschedule вычисляет решение по переносу бронирования
func EvaluateReschedule(booking *domain.Booking, cfg domain.PolicyConfig, now time.Time) RescheduleDecision {
	if !cfg.IsReschedulable(booking.Status) {
		return RescheduleDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("бронирование в статусе %q нельзя перенести", booking.Status),
		}
	}

	if booking.RescheduleCount >= cfg.MaxReschedules {
		return RescheduleDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("лимит переносов исчерпан (%d из %d)", booking.RescheduleCount, cfg.MaxReschedules),
		}
	}

	if HoursUntilService(booking, now) < cfg.MinRescheduleHours {
		return RescheduleDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("до услуги осталось меньше %.0f часов, перенос недоступен", cfg.MinRescheduleHours),
		}
	}

	return RescheduleDecision{
		Allowed:   true,
		Remaining: cfg.MaxReschedules - booking.RescheduleCount,
	}
}

// splitFee делит сумму на комиссию и возврат
// Считаем в decimal, чтобы комиссия + возврат всегда давали исходную сумму
// без накопления ошибок плавающей точки
func splitFee(amount float64, percent int64) (fee, refund float64) {
	total := decimal.NewFromFloat(amount)

	feeDec := total.
		Mul(decimal.NewFromInt(percent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	refundDec := total.Sub(feeDec)

	return feeDec.InexactFloat64(), refundDec.InexactFloat64()
}
