package get_cancellation_quote

import (
	quote "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_cancellation_quote"
)

// CancellationQuoteResponse HTTP response model
type CancellationQuoteResponse struct {
	BookingID  int64   `json:"bookingId"`
	HoursUntil float64 `json:"hoursUntil"`

	Cancellation CancellationQuote `json:"cancellation"`
	Reschedule   RescheduleQuote   `json:"reschedule"`
}

// CancellationQuote что произойдет при отмене прямо сейчас
type CancellationQuote struct {
	Allowed      bool    `json:"allowed"`
	Tier         string  `json:"tier"`
	FeePercent   int64   `json:"feePercent"`
	FeeAmount    float64 `json:"feeAmount"`
	RefundAmount float64 `json:"refundAmount"`
	Reason       string  `json:"reason,omitempty"`
}

// RescheduleQuote что произойдет при переносе прямо сейчас
type RescheduleQuote struct {
	Allowed   bool   `json:"allowed"`
	Remaining int    `json:"remaining"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quote.Response) *CancellationQuoteResponse {
	return &CancellationQuoteResponse{
		BookingID:  resp.BookingID,
		HoursUntil: resp.HoursUntil,
		Cancellation: CancellationQuote{
			Allowed:      resp.Cancellation.Allowed,
			Tier:         resp.Cancellation.Tier,
			FeePercent:   resp.Cancellation.FeePercent,
			FeeAmount:    resp.Cancellation.FeeAmount,
			RefundAmount: resp.Cancellation.RefundAmount,
			Reason:       resp.Cancellation.Reason,
		},
		Reschedule: RescheduleQuote{
			Allowed:   resp.Reschedule.Allowed,
			Remaining: resp.Reschedule.Remaining,
			Reason:    resp.Reschedule.Reason,
		},
	}
}
