package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, newDate time.Time, newSlot domain.TimeSlot, fromDate time.Time, fromSlot domain.TimeSlot) error
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// BlockoutRepository интерфейс репозитория блокировок расписания
type BlockoutRepository interface {
	ListByProviderID(ctx context.Context, providerID int64) ([]*domain.Blockout, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
