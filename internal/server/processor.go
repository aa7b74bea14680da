package server

import (
	"context"
	"time"

	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
	"github.com/msto63/ghll/pkg/core/cache"
	coregrpc "github.com/msto63/ghll/pkg/core/grpc"
	"github.com/msto63/ghll/pkg/core/logging"
)

// processor is shared by the gRPC service and the WebSocket handler.
// Parsing is a pure function of the line, so results are reused for
// repeated lines; every request is still journaled.
type processor struct {
	engine  *ghll.Engine
	results *cache.Cache[*ghll.Result]
	history *history.Store
	logger  *logging.Logger
}

func newProcessor(engine *ghll.Engine, results *cache.Cache[*ghll.Result], store *history.Store, logger *logging.Logger) *processor {
	return &processor{
		engine:  engine,
		results: results,
		history: store,
		logger:  logger,
	}
}

// process returns a result owned by this request. A reused result is
// copied and its Duration replaced by the time this request took, so
// duration_ms always describes the response it is sent with.
func (p *processor) process(ctx context.Context, line string) (*ghll.Result, error) {
	start := time.Now()
	requestID := coregrpc.GetRequestID(ctx)

	compute := func() (*ghll.Result, error) {
		return p.engine.Process(ctx, line)
	}

	var (
		cached *ghll.Result
		err    error
	)
	if p.results != nil {
		cached, err = p.results.GetOrSet(line, compute)
	} else {
		cached, err = compute()
	}
	if err != nil {
		p.logger.Debug("Line rejected", "request_id", requestID, "error", err)
		return nil, err
	}

	res := *cached
	res.Duration = time.Since(start)

	if p.history != nil {
		if _, err := p.history.Record(ctx, &res); err != nil {
			p.logger.Warn("Failed to record history entry", "request_id", requestID, "error", err)
		}
	}
	return &res, nil
}
