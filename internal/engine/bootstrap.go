package engine

import (
	"context"
	"fmt"

	"github.com/agrawald/kafka-connect-zeebe/internal/pipeline"
	"github.com/agrawald/kafka-connect-zeebe/internal/telemetry"
)

type Config struct {
	ConnectorYml string
	MetricsPort  int // 0 disables the exposition endpoint
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. connector pipeline: source task + sinks
	runner, err := pipeline.Compile(cfg.ConnectorYml)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := runner.Start(ctx); err != nil {
		return nil, err
	}

	// 2. metrics
	if cfg.MetricsPort > 0 {
		telemetry.Expose(cfg.MetricsPort)
	}

	return &Engine{runner: runner}, nil
}
