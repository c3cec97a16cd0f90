package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	UserID    int64   // ID клиента из заголовка аутентификации
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа с результатом отмены
type Response struct {
	ID     int64
	Status string

	// Финансовый итог отмены по тарифной категории политики
	Tier         string
	FeePercent   int64
	FeeAmount    float64
	RefundAmount float64

	CancelledAt time.Time
}
