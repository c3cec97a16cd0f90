package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не назначен на бронирование
	ErrAccessDenied = errors.New("update_booking_status: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrDelayReasonRequired возвращается при переводе в delayed без причины
	ErrDelayReasonRequired = errors.New("update_booking_status: delay reason is required")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
