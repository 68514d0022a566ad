package zeebe

import (
	"errors"

	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"
)

// ErrQueueFull signals that an enqueue would exceed the configured capacity.
// The caller decides what to do with the job; the queue never drops silently.
var ErrQueueFull = errors.New("zeebe-source: job queue full")

// JobQueue buffers activated jobs between the worker goroutines and the
// single poll loop. Many producers, exactly one drainer.
type JobQueue struct {
	ch chan gateway.Job
}

func NewJobQueue(capacity int) *JobQueue {
	return &JobQueue{ch: make(chan gateway.Job, capacity)}
}

// Enqueue never blocks; a full queue returns ErrQueueFull.
func (q *JobQueue) Enqueue(job gateway.Job) error {
	select {
	case q.ch <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain removes and returns every job available right now without blocking.
// An empty queue yields nil immediately.
func (q *JobQueue) Drain() []gateway.Job {
	var jobs []gateway.Job
	for {
		select {
		case job := <-q.ch:
			jobs = append(jobs, job)
		default:
			return jobs
		}
	}
}

func (q *JobQueue) Len() int {
	return len(q.ch)
}
