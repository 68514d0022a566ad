// Package zeebe implements the source side of the connector: job workers
// activate jobs from a Zeebe gateway, the task exposes them through a
// poll/commit contract, and commits complete the originating jobs.
package zeebe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/agrawald/kafka-connect-zeebe/connect"
	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"
	"github.com/agrawald/kafka-connect-zeebe/internal/logging"
	"github.com/agrawald/kafka-connect-zeebe/internal/telemetry"
)

// Task lifecycle. Stop only requests the transition; the stopping→stopped
// step runs inside Poll so teardown never races an in-flight drain.
const (
	stateCreated int32 = iota
	stateRunning
	stateStopping
	stateStopped
)

// ErrNotRunning is returned by Poll before Start has completed.
var ErrNotRunning = errors.New("zeebe-source: task not started")

// Task bridges asynchronous job activation to a pull-style record stream.
// Many worker goroutines feed the queue; exactly one goroutine is expected
// to call Poll and Commit.
type Task struct {
	state     atomic.Int32
	queue     *JobQueue
	workers   *workerSet
	translate translator

	mu        sync.Mutex // guards client against commit/teardown races
	client    gateway.Client
	closeOnce sync.Once

	dial func(gateway.Config) (gateway.Client, error)
	log  *slog.Logger
}

func NewTask() *Task {
	return &Task{
		dial: gateway.Dial,
		log:  logging.L().With("component", "zeebe-source"),
	}
}

// Start connects to the gateway and opens one worker per job type. Workers
// are built last: they begin pulling jobs the moment they open, so every
// tunable must be derived before the first one exists.
func (t *Task) Start(cfg Config) error {
	if t.state.Load() != stateCreated {
		return errors.New("zeebe-source: task already started")
	}
	if len(cfg.JobTypes) == 0 {
		return errors.New("zeebe-source: no job types configured")
	}
	applyDefaults(&cfg)

	client, err := t.dial(gateway.Config{
		Address:      cfg.GatewayAddress,
		UsePlaintext: cfg.Plaintext,
		KeepAlive:    cfg.KeepAlive,
	})
	if err != nil {
		return err
	}

	t.queue = NewJobQueue(cfg.QueueCapacity)
	t.translate = translator{topicHeader: cfg.TopicHeader}
	t.client = client
	t.workers = newWorkerSet(client, t.queue, cfg, t.log)

	if err := t.workers.open(cfg.JobTypes); err != nil {
		_ = client.Close()
		return err
	}

	t.state.Store(stateRunning)
	t.log.Info("zeebe source started", "job_types", cfg.JobTypes, "gateway", cfg.GatewayAddress)
	return nil
}

// Poll drains everything currently queued and returns it as one batch. A nil
// batch means "no data available right now" and is distinct from an empty
// batch, which Poll never returns. Once a stop request has been observed on
// an empty queue, Poll tears the task down and returns nil forever after.
func (t *Task) Poll(ctx context.Context) ([]connect.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch t.state.Load() {
	case stateCreated:
		return nil, ErrNotRunning
	case stateStopped:
		return nil, nil
	}

	jobs := t.queue.Drain()
	telemetry.QueueDepth.Set(float64(t.queue.Len()))
	if len(jobs) > 0 {
		// A batch drained while stopping is still a valid batch; teardown
		// waits for the next call.
		records := make([]connect.Record, len(jobs))
		for i, job := range jobs {
			records[i] = t.translate.translate(job)
		}
		telemetry.RecordsPolled.Add(float64(len(records)))
		t.log.Debug("polled jobs", "count", len(records))
		return records, nil
	}

	if t.state.CompareAndSwap(stateStopping, stateStopped) {
		t.close()
	}
	return nil, nil
}

// Stop requests the transition out of running. It deliberately performs no
// teardown itself; the next Poll does that once the queue is empty.
func (t *Task) Stop() {
	t.state.CompareAndSwap(stateRunning, stateStopping)
}

// Stopped reports whether teardown has completed.
func (t *Task) Stopped() bool {
	return t.state.Load() == stateStopped
}

// Commit completes the originating job for each offset. A commit cancelled
// by a concurrent shutdown is a normal occurrence, not a defect: it is
// logged at debug level and swallowed. Every other failure propagates.
func (t *Task) Commit(ctx context.Context, offsets ...connect.SourceOffset) error {
	for _, off := range offsets {
		if err := t.completeJob(ctx, off.Key); err != nil {
			return err
		}
	}
	return nil
}

func (t *Task) completeJob(ctx context.Context, key int64) error {
	t.mu.Lock()
	client := t.client
	t.mu.Unlock()
	if client == nil {
		// Commit arrived after teardown; the broker redelivers the job once
		// its lock expires.
		telemetry.CommitsCancelled.Inc()
		t.log.Debug("commit after shutdown ignored", "key", key)
		return nil
	}

	err := client.CompleteJob(ctx, key)
	switch {
	case err == nil:
		telemetry.JobsCompleted.Inc()
		return nil
	case gateway.IsCanceled(err):
		telemetry.CommitsCancelled.Inc()
		t.log.Debug("complete command cancelled, task is probably stopping", "key", key)
		return nil
	default:
		return fmt.Errorf("zeebe-source: complete job %d: %w", key, err)
	}
}

// close runs exactly once: workers first, then the gateway connection.
func (t *Task) close() {
	t.closeOnce.Do(func() {
		t.workers.closeAll()

		t.mu.Lock()
		client := t.client
		t.client = nil
		t.mu.Unlock()

		if client != nil {
			if err := client.Close(); err != nil {
				t.log.Warn("closing gateway client", "error", err)
			}
		}
		t.log.Info("zeebe source stopped")
	})
}
