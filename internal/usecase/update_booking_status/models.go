package update_booking_status

import "time"

// Request модель запроса на смену статуса бронирования
// Вызывается исполнителем по ходу выполнения работы
type Request struct {
	BookingID int64
	UserID    int64   // ID исполнителя из заголовка аутентификации
	Status    string  // Целевой статус
	Reason    *string // Причина (обязательна для delayed)
}

// Response модель ответа со сменой статуса
type Response struct {
	ID     int64
	Status string

	StartedAt   *time.Time
	CompletedAt *time.Time
	DelayReason *string

	UpdatedAt time.Time
}
