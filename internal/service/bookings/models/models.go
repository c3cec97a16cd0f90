package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// GetProviderBookingsRequest запрос на получение бронирований исполнителя
type GetProviderBookingsRequest struct {
	ProviderID int64   `json:"providerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	ServiceID     int64   `json:"serviceId"`
	ScheduledDate string  `json:"scheduledDate"`      // "2025-11-12"
	TimeSlot      string  `json:"timeSlot,omitempty"` // "10:00-12:00", пусто - слот не выбран
	ProviderIDs   []int64 `json:"providerIds"`
	Status        string  `json:"status"`

	TotalAmount   float64 `json:"totalAmount"`
	PaymentStatus string  `json:"paymentStatus"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationFee    *float64 `json:"cancellationFee,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"` // ISO 8601 format

	RescheduleCount     int     `json:"rescheduleCount"`
	RescheduledFromDate *string `json:"rescheduledFromDate,omitempty"`
	RescheduledFromTime *string `json:"rescheduledFromTime,omitempty"`

	DelayReason *string `json:"delayReason,omitempty"`
	StartedAt   *string `json:"startedAt,omitempty"`
	CompletedAt *string `json:"completedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		ServiceID:          b.ServiceID,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		TimeSlot:           string(b.ScheduledTime),
		ProviderIDs:        b.ProviderIDs,
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		Notes:              b.Notes,
		CancellationFee:    b.CancellationFee,
		CancellationReason: b.CancellationReason,
		RescheduleCount:    b.RescheduleCount,
		DelayReason:        b.DelayReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.CancelledAt = formatTimePtr(b.CancelledAt, time.RFC3339)
	resp.StartedAt = formatTimePtr(b.StartedAt, time.RFC3339)
	resp.CompletedAt = formatTimePtr(b.CompletedAt, time.RFC3339)
	resp.RescheduledFromDate = formatTimePtr(b.RescheduledFromDate, domain.DateFormat)

	if b.RescheduledFromTime != nil {
		slot := string(*b.RescheduledFromTime)
		resp.RescheduledFromTime = &slot
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.IsValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
