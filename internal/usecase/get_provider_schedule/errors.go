package get_provider_schedule

import "errors"

var (
	// ErrProviderNotFound возвращается, когда исполнитель не найден
	ErrProviderNotFound = errors.New("get_provider_schedule: provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_provider_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_provider_schedule: internal error")
)
