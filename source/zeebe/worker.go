package zeebe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"
	"github.com/agrawald/kafka-connect-zeebe/internal/telemetry"
)

// invalidJobHandler is the single decision point for jobs that fail
// validation. The default fails the job back to the broker; alternative
// policies (ignore, raise) can be slotted in here later.
type invalidJobHandler func(job gateway.Job)

// workerSet owns one activation subscription per configured job type. Each
// subscription validates delivered jobs and deposits the good ones into the
// shared queue.
type workerSet struct {
	client      gateway.Client
	queue       *JobQueue
	topicHeader string
	template    gateway.WorkerConfig

	onInvalid invalidJobHandler
	workers   []gateway.Worker
	log       *slog.Logger
}

func newWorkerSet(client gateway.Client, queue *JobQueue, cfg Config, log *slog.Logger) *workerSet {
	s := &workerSet{
		client:      client,
		queue:       queue,
		topicHeader: cfg.TopicHeader,
		template: gateway.WorkerConfig{
			Name:           cfg.WorkerName,
			MaxJobsActive:  cfg.MaxJobsToActivate,
			JobTimeout:     cfg.JobTimeout,
			RequestTimeout: cfg.RequestTimeout,
			PollInterval:   cfg.PollInterval,
			FetchVariables: cfg.JobVariables,
		},
		log: log,
	}
	s.onInvalid = s.failInvalid
	return s
}

// open establishes one subscription per job type. Workers start pulling jobs
// immediately, so this must run only after all configuration is in place.
func (s *workerSet) open(jobTypes []string) error {
	for _, jobType := range jobTypes {
		cfg := s.template
		cfg.JobType = jobType
		w, err := s.client.OpenWorker(cfg, s.handle)
		if err != nil {
			s.closeAll()
			return fmt.Errorf("zeebe-source: open worker for %q: %w", jobType, err)
		}
		s.workers = append(s.workers, w)
	}
	return nil
}

// handle runs on a worker's dispatch goroutine, concurrently with the poll
// loop and with other workers.
func (s *workerSet) handle(job gateway.Job) {
	if topic := job.Headers[s.topicHeader]; topic == "" {
		s.log.Warn("no topic defined for job", "key", job.Key, "type", job.Type)
		telemetry.JobsInvalid.WithLabelValues(job.Type).Inc()
		s.onInvalid(job)
		return
	}

	if err := s.queue.Enqueue(job); err != nil {
		// Full queue: hand the job back without spending a retry so the
		// broker redelivers it once the lock expires.
		s.log.Warn("job queue full, failing job back", "key", job.Key, "type", job.Type)
		s.failJob(job, job.Retries, "connector job queue is full")
		return
	}
	telemetry.JobsActivated.WithLabelValues(job.Type).Inc()
	telemetry.QueueDepth.Set(float64(s.queue.Len()))
	s.log.Debug("activated job", "key", job.Key, "type", job.Type)
}

// failInvalid spends one retry and names the missing header, so the failure
// shows up verbatim in the broker's incident message.
func (s *workerSet) failInvalid(job gateway.Job) {
	msg := fmt.Sprintf(
		"Expected a kafka topic to be defined as a custom header with key '%s', but none found",
		s.topicHeader,
	)
	s.failJob(job, job.Retries-1, msg)
}

// failJob must never take down the activation loop: a dead loop silently
// stops producing jobs for its type, which is worse than a lost fail command.
func (s *workerSet) failJob(job gateway.Job, retries int32, msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.template.RequestTimeout)
	defer cancel()
	if err := s.client.FailJob(ctx, job.Key, retries, msg); err != nil {
		s.log.Warn("fail command rejected", "key", job.Key, "error", err)
	}
}

// closeAll closes every subscription exactly once and clears the set.
func (s *workerSet) closeAll() {
	for _, w := range s.workers {
		w.Close()
	}
	s.workers = nil
}
