package get_cancellation_quote

import (
	"context"

	quote "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_cancellation_quote"
)

type GetCancellationQuoteUseCase interface {
	Execute(ctx context.Context, req *quote.Request) (*quote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
