package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID           int64   `json:"id"`
	Status       string  `json:"status"`
	Tier         string  `json:"tier"`
	FeePercent   int64   `json:"feePercent"`
	FeeAmount    float64 `json:"feeAmount"`
	RefundAmount float64 `json:"refundAmount"`
	CancelledAt  string  `json:"cancelledAt"`
}

// PolicyViolationResponse тело ответа при отказе политики
type PolicyViolationResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Tier    string `json:"tier"`
	Reason  string `json:"reason"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:           resp.ID,
		Status:       resp.Status,
		Tier:         resp.Tier,
		FeePercent:   resp.FeePercent,
		FeeAmount:    resp.FeeAmount,
		RefundAmount: resp.RefundAmount,
		CancelledAt:  resp.CancelledAt.Format(time.RFC3339),
	}
}
