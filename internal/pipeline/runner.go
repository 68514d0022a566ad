package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/agrawald/kafka-connect-zeebe/connect"
	"github.com/agrawald/kafka-connect-zeebe/internal/logging"
	"github.com/agrawald/kafka-connect-zeebe/sink"
)

const defaultPollInterval = 500 * time.Millisecond

// Source is the poll/commit contract the runner drives. A nil batch means
// "no data right now"; the runner then waits one poll interval. After Stop,
// the source is polled until it reports Stopped so its deferred teardown
// gets a chance to run.
type Source interface {
	Poll(ctx context.Context) ([]connect.Record, error)
	Commit(ctx context.Context, offsets ...connect.SourceOffset) error
	Stop()
	Stopped() bool
}

// Runner owns the single consumer goroutine: it polls the source, routes
// records to every sink, and feeds sink acknowledgments back as commits.
type Runner struct {
	source       Source
	sinks        []sink.Adapter
	pollInterval time.Duration

	started   bool
	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func NewRunner() *Runner {
	return &Runner{
		pollInterval: defaultPollInterval,
		done:         make(chan struct{}),
		log:          logging.L().With("component", "runner"),
	}
}

func (r *Runner) SetSource(s Source)     { r.source = s }
func (r *Runner) AddSink(s sink.Adapter) { r.sinks = append(r.sinks, s) }

func (r *Runner) SetPollInterval(d time.Duration) {
	if d > 0 {
		r.pollInterval = d
	}
}

// Ack is handed to every ack-aware sink. It runs on the sink's goroutine,
// out-of-band with respect to polling.
func (r *Runner) Ack(off connect.SourceOffset) {
	if err := r.source.Commit(context.Background(), off); err != nil {
		r.log.Error("commit failed", "key", off.Key, "error", err)
	}
}

func (r *Runner) Start(ctx context.Context) error {
	if r.source == nil {
		return errors.New("runner: no source configured")
	}
	r.started = true
	go r.run(ctx)
	return nil
}

func (r *Runner) run(ctx context.Context) {
	defer close(r.done)

	stopRequested := false
	for {
		if !stopRequested && ctx.Err() != nil {
			r.source.Stop()
			stopRequested = true
		}
		pollCtx := ctx
		if stopRequested {
			// keep polling past cancellation so the source can drain and
			// tear itself down
			pollCtx = context.Background()
		}

		records, err := r.source.Poll(pollCtx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			r.log.Error("poll failed", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(r.pollInterval):
			}
			continue
		}

		for i := range records {
			r.push(&records[i])
		}
		if records != nil {
			continue
		}

		if r.source.Stopped() {
			// stop may also be requested directly on the source
			return
		}
		if stopRequested {
			continue
		}

		// "blocking" is emulated at the caller's cadence
		select {
		case <-ctx.Done():
		case <-time.After(r.pollInterval):
		}
	}
}

func (r *Runner) push(rec *connect.Record) {
	for _, s := range r.sinks {
		if err := s.Push(rec); err != nil {
			// no ack, no commit; the broker redelivers the job later
			r.log.Error("sink push failed", "topic", rec.Topic, "key", rec.Key, "error", err)
		}
	}
}

// Close waits for the poll loop to finish its stop sequence, then closes the
// sinks. Safe to call more than once.
func (r *Runner) Close() error {
	r.closeOnce.Do(func() {
		if r.started {
			r.source.Stop()
			<-r.done
		}
		for _, s := range r.sinks {
			if err := s.Close(); err != nil {
				r.log.Warn("closing sink", "error", err)
			}
		}
	})
	return nil
}
