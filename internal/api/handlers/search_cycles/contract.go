package search_cycles

import (
	"context"

	searchCycles "github.com/cycleaway/booking-service/internal/usecase/search_cycles"
)

type SearchCyclesUseCase interface {
	Execute(ctx context.Context, req *searchCycles.Request) (*searchCycles.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
