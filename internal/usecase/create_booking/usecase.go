package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/qualification"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	providerRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	providerRepo  ProviderRepository
	blockoutRepo  BlockoutRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	blockoutRepo BlockoutRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		providerRepo:  providerRepo,
		blockoutRepo:  blockoutRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции:
// два конкурентных запроса на один слот не могут пройти проверку одновременно,
// проигравший получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, slot=%s, providers=%v",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.TimeSlot, req.ProviderIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем услугу из каталога
	// При недоступности каталога бронирование создается без денормализации -
	// graceful degradation, но квалификацию в этом случае проверить нельзя,
	// поэтому полагаемся на явный выбор исполнителей клиентом
	var service *catalogClient.Service
	service, err := uc.catalogClient.GetServiceWithGracefulDegradation(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrServiceDegraded) {
			uc.logger.Warn("CreateBooking: catalog degraded, creating booking without enrichment: %v", err)
			service = nil
		} else {
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 4. Проверяем исполнителей: существование и квалификация
	providers := make([]*domain.Provider, 0, len(req.ProviderIDs))
	for _, providerID := range req.ProviderIDs {
		provider, err := uc.providerRepo.GetByID(ctx, providerID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%d not found", providerID)
				return nil, fmt.Errorf("%w: provider id=%d", ErrProviderNotFound, providerID)
			}
			uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", providerID, err)
			return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}

		if service != nil {
			svc := qualification.Service{ID: service.ID, Name: service.Name, Category: service.Category}
			if !qualification.IsQualified(svc, provider) {
				uc.logger.Warn("CreateBooking: provider id=%d is not qualified for service id=%d",
					providerID, req.ServiceID)
				return nil, fmt.Errorf("%w: provider id=%d", ErrProviderNotQualified, providerID)
			}
		}

		providers = append(providers, provider)
	}

	var result *domain.Booking

	// 5. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Доступность каждого исполнителя на дату и слот
		// Чтение с FOR UPDATE блокирует конкурирующие вставки на тот же день
		for _, provider := range providers {
			blockouts, err := uc.blockoutRepo.ListByProviderID(txCtx, provider.ID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to list blockouts for provider id=%d: %v", provider.ID, err)
				return fmt.Errorf("%w: failed to list blockouts: %v", ErrInternal, err)
			}

			bookings, err := uc.bookingRepo.GetByProviderAndDate(txCtx, provider.ID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings for provider id=%d: %v", provider.ID, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			resolution := availability.Resolve(provider, req.Date, req.TimeSlot, blockouts, bookings)
			switch resolution.Status {
			case availability.StatusAvailable:
				// Продолжаем
			case availability.StatusBusy:
				uc.logger.Warn("CreateBooking: provider id=%d busy: %s", provider.ID, resolution.Reason)
				return fmt.Errorf("%w: provider id=%d: %s", ErrSlotTaken, provider.ID, resolution.Reason)
			default:
				uc.logger.Warn("CreateBooking: provider id=%d %s: %s", provider.ID, resolution.Status, resolution.Reason)
				return fmt.Errorf("%w: provider id=%d: %s", ErrProviderUnavailable, provider.ID, resolution.Reason)
			}
		}

		// 5.2. Создаем бронирование с денормализацией данных каталога
		booking := &domain.Booking{
			CustomerID:    req.CustomerID,
			ServiceID:     req.ServiceID,
			ScheduledDate: req.Date,
			ScheduledTime: req.TimeSlot,
			ProviderIDs:   req.ProviderIDs,
			Status:        domain.StatusPending,
			TotalAmount:   req.TotalAmount,
			PaymentStatus: domain.PaymentUnpaid,
			Notes:         req.Notes,
		}
		if service != nil {
			booking.ServiceName = service.Name
			if req.TotalAmount == 0 && service.Price != nil {
				booking.TotalAmount = *service.Price
			}
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигрыш сериализации - конкурент успел занять слот первым
		if errors.Is(err, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("CreateBooking: serialization conflict for customer=%d: %v", req.CustomerID, err)
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		CustomerID:    result.CustomerID,
		ServiceID:     result.ServiceID,
		Date:          result.ScheduledDate,
		TimeSlot:      string(result.ScheduledTime),
		ProviderIDs:   result.ProviderIDs,
		Status:        string(result.Status),
		TotalAmount:   result.TotalAmount,
		PaymentStatus: string(result.PaymentStatus),
		ServiceName:   result.ServiceName,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
