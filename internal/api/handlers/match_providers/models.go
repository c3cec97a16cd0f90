package match_providers

import (
	matching "github.com/m04kA/SMC-SchedulingService/internal/usecase/match_providers"
)

// RankedProviderResponse исполнитель в выдаче подбора
type RankedProviderResponse struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Specialization     []string `json:"specialization"`
	AverageRating      float64  `json:"averageRating"`
	TotalJobsCompleted int      `json:"totalJobsCompleted"`
	Qualified          bool     `json:"qualified"`
	AvailabilityStatus string   `json:"availabilityStatus"`
	AvailabilityReason string   `json:"availabilityReason,omitempty"`
	ConflictCount      int      `json:"conflictCount,omitempty"`
}

// MatchProvidersResponse ответ с ранжированным списком исполнителей
type MatchProvidersResponse struct {
	ServiceID int64                    `json:"serviceId"`
	Providers []RankedProviderResponse `json:"providers"`
}

func FromUseCaseResponse(resp *matching.Response) *MatchProvidersResponse {
	providers := make([]RankedProviderResponse, 0, len(resp.Providers))
	for _, p := range resp.Providers {
		providers = append(providers, RankedProviderResponse{
			ID:                 p.ID,
			Name:               p.Name,
			Specialization:     p.Specialization,
			AverageRating:      p.AverageRating,
			TotalJobsCompleted: p.TotalJobsCompleted,
			Qualified:          p.Qualified,
			AvailabilityStatus: p.AvailabilityStatus,
			AvailabilityReason: p.AvailabilityReason,
			ConflictCount:      p.ConflictCount,
		})
	}

	return &MatchProvidersResponse{
		ServiceID: resp.ServiceID,
		Providers: providers,
	}
}
