package get_provider_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// BlockoutRepository интерфейс репозитория блокировок расписания
type BlockoutRepository interface {
	ListByProviderID(ctx context.Context, providerID int64) ([]*domain.Blockout, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
