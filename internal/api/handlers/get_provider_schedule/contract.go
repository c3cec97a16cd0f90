package get_provider_schedule

import (
	"context"

	schedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_provider_schedule"
)

type GetProviderScheduleUseCase interface {
	Execute(ctx context.Context, req *schedule.Request) (*schedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
