package get_cancellation_quote

// Request модель запроса котировки отмены/переноса
type Request struct {
	BookingID int64
	UserID    int64 // ID клиента из заголовка аутентификации
}

// CancellationQuote что произойдет при отмене прямо сейчас
type CancellationQuote struct {
	Allowed      bool
	Tier         string
	FeePercent   int64
	FeeAmount    float64
	RefundAmount float64
	Reason       string
}

// RescheduleQuote что произойдет при переносе прямо сейчас
type RescheduleQuote struct {
	Allowed   bool
	Remaining int
	Reason    string
}

// Response модель ответа с котировками
// Только чтение: бронирование не меняется, решения не фиксируются
type Response struct {
	BookingID    int64
	HoursUntil   float64
	Cancellation CancellationQuote
	Reschedule   RescheduleQuote
}
