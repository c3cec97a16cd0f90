package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"`               // "2025-11-12"
	TimeSlot    string  `json:"timeSlot,omitempty"` // "10:00-12:00", пусто - слот не выбран
	ProviderIDs []int64 `json:"providerIds"`
	TotalAmount float64 `json:"totalAmount"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"timeSlot,omitempty"`
	ProviderIDs   []int64 `json:"providerIds"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentStatus string  `json:"paymentStatus"`
	ServiceName   string  `json:"serviceName,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	slot, err := domain.ParseTimeSlot(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:  customerID,
		ServiceID:   r.ServiceID,
		Date:        date,
		TimeSlot:    slot,
		ProviderIDs: r.ProviderIDs,
		TotalAmount: r.TotalAmount,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CustomerID:    resp.CustomerID,
		ServiceID:     resp.ServiceID,
		Date:          resp.Date.Format(domain.DateFormat),
		TimeSlot:      resp.TimeSlot,
		ProviderIDs:   resp.ProviderIDs,
		Status:        resp.Status,
		TotalAmount:   resp.TotalAmount,
		PaymentStatus: resp.PaymentStatus,
		ServiceName:   resp.ServiceName,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
