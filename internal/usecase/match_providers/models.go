package match_providers

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на подбор исполнителей для услуги
type Request struct {
	ServiceID int64
	Date      time.Time       // Опциональная дата - без нее доступность unknown
	TimeSlot  domain.TimeSlot // Опциональный слот
}

// RankedProvider исполнитель в итоговой выдаче подбора
type RankedProvider struct {
	ID                 int64
	Name               string
	Specialization     []string
	AverageRating      float64
	TotalJobsCompleted int

	Qualified bool

	// Доступность на запрошенные дату и слот
	AvailabilityStatus string
	AvailabilityReason string
	ConflictCount      int
}

// Response модель ответа с ранжированным списком исполнителей
type Response struct {
	ServiceID int64
	Providers []RankedProvider
}
