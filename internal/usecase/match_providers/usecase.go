package match_providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/availability"
	"github.com/m04kA/SMC-SchedulingService/internal/engine/qualification"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// UseCase use case подбора исполнителей для услуги
// Только чтение: фильтрация по квалификации, резолв доступности, ранжирование
type UseCase struct {
	bookingRepo   BookingRepository
	providerRepo  ProviderRepository
	blockoutRepo  BlockoutRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	blockoutRepo BlockoutRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		providerRepo:  providerRepo,
		blockoutRepo:  blockoutRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case подбора исполнителей
//
// В выдачу попадают и неквалифицированные исполнители - они уходят в хвост
// при ранжировании, клиент видит полную картину и принимает решение сам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MatchProviders: service=%d, date=%s, slot=%s",
		req.ServiceID, formatDate(req), req.TimeSlot)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MatchProviders: validation failed: %v", err)
		return nil, err
	}

	// 1. Получаем услугу из каталога
	// При недоступности каталога квалификацию проверить нельзя - считаем всех
	// квалифицированными и полагаемся только на доступность
	var svc *qualification.Service
	service, err := uc.catalogClient.GetServiceWithGracefulDegradation(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("MatchProviders: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if !errors.Is(err, catalogClient.ErrServiceDegraded) {
			uc.logger.Error("MatchProviders: failed to get service id=%d: %v", req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		uc.logger.Warn("MatchProviders: catalog degraded, skipping qualification check: %v", err)
	} else {
		svc = &qualification.Service{ID: service.ID, Name: service.Name, Category: service.Category}
	}

	// 2. Активные исполнители - кандидаты подбора
	providers, err := uc.providerRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("MatchProviders: failed to list providers: %v", err)
		return nil, fmt.Errorf("%w: failed to list providers: %v", ErrInternal, err)
	}

	// 3. Квалификация и доступность каждого кандидата
	candidates := make([]qualification.Candidate, 0, len(providers))
	for _, provider := range providers {
		qualified := true
		if svc != nil {
			qualified = qualification.IsQualified(*svc, provider)
		}

		resolution := availability.Result{Status: availability.StatusUnknown, Reason: "дата не указана"}
		if !req.Date.IsZero() {
			blockouts, err := uc.blockoutRepo.ListByProviderID(ctx, provider.ID)
			if err != nil {
				uc.logger.Error("MatchProviders: failed to list blockouts for provider id=%d: %v", provider.ID, err)
				return nil, fmt.Errorf("%w: failed to list blockouts: %v", ErrInternal, err)
			}

			bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, provider.ID, req.Date)
			if err != nil {
				uc.logger.Error("MatchProviders: failed to get bookings for provider id=%d: %v", provider.ID, err)
				return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			resolution = availability.Resolve(provider, req.Date, req.TimeSlot, blockouts, bookings)
		}

		candidates = append(candidates, qualification.Candidate{
			Provider:     provider,
			Qualified:    qualified,
			Availability: resolution,
		})
	}

	// 4. Ранжирование
	ranked := qualification.Rank(candidates)

	result := make([]RankedProvider, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, RankedProvider{
			ID:                 c.Provider.ID,
			Name:               c.Provider.Name,
			Specialization:     c.Provider.Specialization,
			AverageRating:      c.Provider.AverageRating,
			TotalJobsCompleted: c.Provider.TotalJobsCompleted,
			Qualified:          c.Qualified,
			AvailabilityStatus: string(c.Availability.Status),
			AvailabilityReason: c.Availability.Reason,
			ConflictCount:      c.Availability.ConflictCount,
		})
	}

	uc.logger.Info("MatchProviders: service id=%d, %d candidates ranked", req.ServiceID, len(result))

	return &Response{
		ServiceID: req.ServiceID,
		Providers: result,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if !req.TimeSlot.IsZero() {
		if err := req.TimeSlot.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time slot: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func formatDate(req *Request) string {
	if req.Date.IsZero() {
		return "-"
	}
	return req.Date.Format(domain.DateFormat)
}
