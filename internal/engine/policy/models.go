package policy

// CancellationTier ценовая категория отмены
type CancellationTier string

const (
	TierFree    CancellationTier = "free"    // бесплатная отмена
	TierLate    CancellationTier = "late"    // поздняя отмена, комиссия late_fee_percent
	TierSameDay CancellationTier = "sameday" // отмена день-в-день, комиссия same_day_fee_percent
	TierBlocked CancellationTier = "blocked" // отмена невозможна
)

// CancellationDecision решение политики по отмене бронирования
// "Не разрешено" - это полноценный результат, а не ошибка:
// вызывающая сторона сама решает, как его отобразить
type CancellationDecision struct {
	Allowed bool
	Tier    CancellationTier

	FeePercent   int64
	FeeAmount    float64
	RefundAmount float64

	// Reason человекочитаемое пояснение решения
	Reason string
}

// RescheduleDecision решение политики по переносу бронирования
type RescheduleDecision struct {
	Allowed bool

	// Remaining число оставшихся переносов (включая текущий, если Allowed)
	Remaining int

	Reason string
}
