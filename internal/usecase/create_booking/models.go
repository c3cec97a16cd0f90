package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID  int64           // ID клиента (из заголовка аутентификации)
	ServiceID   int64           // ID услуги из каталога
	Date        time.Time       // Дата бронирования (без времени)
	TimeSlot    domain.TimeSlot // Слот из фиксированного набора, пустой - "слот не выбран"
	ProviderIDs []int64         // Назначаемые исполнители, первый - основной
	TotalAmount float64         // Стоимость услуги
	Notes       *string         // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	Date        time.Time
	TimeSlot    string
	ProviderIDs []int64
	Status      string

	TotalAmount   float64
	PaymentStatus string

	// Денормализованные данные каталога
	ServiceName string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
