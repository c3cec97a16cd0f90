package statemachine

import "errors"

var (
	// ErrInvalidTransition возвращается, когда целевой статус недостижим из текущего
	ErrInvalidTransition = errors.New("statemachine: invalid status transition")

	// ErrUnknownStatus возвращается для статуса вне закрытого перечня
	ErrUnknownStatus = errors.New("statemachine: unknown booking status")

	// ErrDelayReasonRequired возвращается при переводе в delayed без причины
	ErrDelayReasonRequired = errors.New("statemachine: delay reason is required")
)
