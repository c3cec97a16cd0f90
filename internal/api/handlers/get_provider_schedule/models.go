package get_provider_schedule

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	schedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_provider_schedule"
)

// SlotStatusResponse статус одного слота в расписании дня
type SlotStatusResponse struct {
	TimeSlot      string `json:"timeSlot"`
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	ConflictCount int    `json:"conflictCount,omitempty"`
}

// ProviderScheduleResponse расписание исполнителя на день
type ProviderScheduleResponse struct {
	ProviderID   int64                `json:"providerId"`
	ProviderName string               `json:"providerName"`
	Date         string               `json:"date"`
	Slots        []SlotStatusResponse `json:"slots"`
}

func FromUseCaseResponse(resp *schedule.Response) *ProviderScheduleResponse {
	slots := make([]SlotStatusResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotStatusResponse{
			TimeSlot:      s.TimeSlot,
			Status:        s.Status,
			Reason:        s.Reason,
			ConflictCount: s.ConflictCount,
		})
	}

	return &ProviderScheduleResponse{
		ProviderID:   resp.ProviderID,
		ProviderName: resp.ProviderName,
		Date:         resp.Date.Format(domain.DateFormat),
		Slots:        slots,
	}
}
