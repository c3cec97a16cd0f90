package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewDate     string `json:"newDate"`               // "2025-11-15"
	NewTimeSlot string `json:"newTimeSlot,omitempty"` // "10:00-12:00", пусто - слот не выбран
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID                   int64  `json:"id"`
	Status               string `json:"status"`
	Date                 string `json:"date"`
	TimeSlot             string `json:"timeSlot,omitempty"`
	PreviousDate         string `json:"previousDate"`
	PreviousTimeSlot     string `json:"previousTimeSlot,omitempty"`
	RescheduleCount      int    `json:"rescheduleCount"`
	RemainingReschedules int    `json:"remainingReschedules"`
}

// PolicyViolationResponse тело ответа при отказе политики
type PolicyViolationResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	slot, err := domain.ParseTimeSlot(r.NewTimeSlot)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		NewDate:   date,
		NewSlot:   slot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:                   resp.ID,
		Status:               resp.Status,
		Date:                 resp.Date.Format(domain.DateFormat),
		TimeSlot:             resp.TimeSlot,
		PreviousDate:         resp.PreviousDate.Format(domain.DateFormat),
		PreviousTimeSlot:     resp.PreviousTimeSlot,
		RescheduleCount:      resp.RescheduleCount,
		RemainingReschedules: resp.RemainingReschedules,
	}
}
