// Package gateway wraps the Zeebe gateway client behind a narrow interface so
// the source task can be exercised without a broker.
package gateway

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Job is an activated job as delivered by a worker subscription.
type Job struct {
	Key     int64
	Type    string
	Retries int32

	// Headers are the job's custom headers, already decoded.
	Headers map[string]string

	// Raw is the full activated job serialized as JSON.
	Raw []byte
}

// WorkerConfig parameterizes one long-lived activation subscription.
type WorkerConfig struct {
	JobType        string
	Name           string
	MaxJobsActive  int
	JobTimeout     time.Duration
	RequestTimeout time.Duration
	PollInterval   time.Duration
	FetchVariables []string
}

// JobHandler receives each activated job on the worker's dispatch goroutine.
type JobHandler func(Job)

// Worker is one open activation subscription.
type Worker interface {
	Close()
}

// Client is the subset of the Zeebe client the connector needs.
type Client interface {
	OpenWorker(cfg WorkerConfig, handler JobHandler) (Worker, error)
	CompleteJob(ctx context.Context, key int64) error
	FailJob(ctx context.Context, key int64, retries int32, message string) error
	Close() error
}

// IsCanceled reports whether err is a cancellation-class failure: either the
// caller's context was cancelled or the gateway request was aborted, which
// happens routinely when shutdown races an in-flight command.
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return status.Code(err) == codes.Canceled
}
