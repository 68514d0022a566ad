package engine

import (
	"context"

	"github.com/agrawald/kafka-connect-zeebe/internal/pipeline"
)

type Engine struct {
	runner *pipeline.Runner
}

// Run blocks until ctx is cancelled, then walks the stop sequence: the
// source task drains and tears down, then the sinks flush and close.
func (e *Engine) Run(ctx context.Context) error {
	<-ctx.Done()
	return e.runner.Close()
}
