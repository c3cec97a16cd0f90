package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrProviderNotFound возвращается, когда запрошенный исполнитель не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrProviderNotQualified возвращается, когда исполнитель не квалифицирован для услуги
	ErrProviderNotQualified = errors.New("create_booking: provider is not qualified for this service")

	// ErrProviderUnavailable возвращается, когда исполнитель деактивирован или слот заблокирован
	ErrProviderUnavailable = errors.New("create_booking: provider is unavailable at this time")

	// ErrSlotTaken возвращается, когда слот исполнителя занят другим бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrSlotConflict возвращается, когда конкурентный запрос успел занять слот первым
	// Клиенту следует повторить запрос и увидеть актуальную занятость
	ErrSlotConflict = errors.New("create_booking: slot was taken by a concurrent request")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
