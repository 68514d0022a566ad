package zeebe

import (
	"sync"
	"testing"

	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"
)

func TestJobQueue_DrainEmptyYieldsNil(t *testing.T) {
	q := NewJobQueue(8)
	if jobs := q.Drain(); jobs != nil {
		t.Fatalf("expected nil from empty drain, got %v", jobs)
	}
}

func TestJobQueue_ConcurrentEnqueueDrainsAll(t *testing.T) {
	const producers = 8
	const perProducer = 250

	q := NewJobQueue(producers * perProducer)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				key := int64(p*perProducer + i)
				if err := q.Enqueue(gateway.Job{Key: key}); err != nil {
					t.Errorf("enqueue %d: %v", key, err)
				}
			}
		}(p)
	}
	wg.Wait()

	jobs := q.Drain()
	if len(jobs) != producers*perProducer {
		t.Fatalf("drained %d jobs, want %d", len(jobs), producers*perProducer)
	}
	seen := make(map[int64]bool, len(jobs))
	for _, j := range jobs {
		if seen[j.Key] {
			t.Fatalf("job %d delivered twice", j.Key)
		}
		seen[j.Key] = true
	}
}

func TestJobQueue_DrainWhileEnqueuing(t *testing.T) {
	const total = 2000
	q := NewJobQueue(64)

	go func() {
		for i := 0; i < total; i++ {
			for q.Enqueue(gateway.Job{Key: int64(i)}) != nil {
				// queue full, single drainer will catch up
			}
		}
	}()

	seen := make(map[int64]bool, total)
	for len(seen) < total {
		for _, j := range q.Drain() {
			if seen[j.Key] {
				t.Fatalf("job %d delivered twice", j.Key)
			}
			seen[j.Key] = true
		}
	}
}

func TestJobQueue_EnqueueSignalsOverflow(t *testing.T) {
	q := NewJobQueue(1)
	if err := q.Enqueue(gateway.Job{Key: 1}); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := q.Enqueue(gateway.Job{Key: 2}); err != ErrQueueFull {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	// nothing was dropped silently
	jobs := q.Drain()
	if len(jobs) != 1 || jobs[0].Key != 1 {
		t.Fatalf("unexpected drain after overflow: %v", jobs)
	}
}
