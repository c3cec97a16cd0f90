package match_providers

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
}

// ProviderRepository интерфейс репозитория исполнителей
type ProviderRepository interface {
	ListActive(ctx context.Context) ([]*domain.Provider, error)
}

// BlockoutRepository интерфейс репозитория блокировок расписания
type BlockoutRepository interface {
	ListByProviderID(ctx context.Context, providerID int64) ([]*domain.Blockout, error)
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetServiceWithGracefulDegradation(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
