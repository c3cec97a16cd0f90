package match_providers

import (
	"context"

	matching "github.com/m04kA/SMC-SchedulingService/internal/usecase/match_providers"
)

type MatchProvidersUseCase interface {
	Execute(ctx context.Context, req *matching.Request) (*matching.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
