package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID int64
	UserID    int64           // ID клиента из заголовка аутентификации
	NewDate   time.Time       // Новая дата
	NewSlot   domain.TimeSlot // Новый слот, пустой - "слот не выбран"
}

// Response модель ответа с результатом переноса
type Response struct {
	ID     int64
	Status string

	Date     time.Time
	TimeSlot string

	// Аудит переноса
	PreviousDate     time.Time
	PreviousTimeSlot string
	RescheduleCount  int

	// RemainingReschedules переносов осталось после этого
	RemainingReschedules int
}
