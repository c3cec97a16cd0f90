package update_booking_status

import (
	"time"

	updateStatus "github.com/m04kA/SMC-SchedulingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"` // обязателен для delayed
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	StartedAt   *string `json:"startedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`
	DelayReason *string `json:"delayReason,omitempty"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	out := &UpdateStatusResponse{
		ID:          resp.ID,
		Status:      resp.Status,
		DelayReason: resp.DelayReason,
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.StartedAt != nil {
		s := resp.StartedAt.Format(time.RFC3339)
		out.StartedAt = &s
	}
	if resp.CompletedAt != nil {
		s := resp.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &s
	}
	return out
}
