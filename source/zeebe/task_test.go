package zeebe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/agrawald/kafka-connect-zeebe/connect"
	"github.com/agrawald/kafka-connect-zeebe/internal/gateway"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newStartedTask(t *testing.T, fc *fakeClient, jobTypes ...string) *Task {
	t.Helper()
	task := NewTask()
	task.dial = func(gateway.Config) (gateway.Client, error) { return fc, nil }
	if len(jobTypes) == 0 {
		jobTypes = []string{"A"}
	}
	cfg := Config{
		JobTypes:      jobTypes,
		TopicHeader:   "kafkaTopic",
		QueueCapacity: 32,
	}
	if err := task.Start(cfg); err != nil {
		t.Fatalf("start: %v", err)
	}
	return task
}

func validJob(key int64) gateway.Job {
	return gateway.Job{
		Key:     key,
		Type:    "A",
		Retries: 3,
		Headers: map[string]string{"kafkaTopic": "orders"},
		Raw:     []byte(`{}`),
	}
}

func TestTask_StartRequiresJobTypes(t *testing.T) {
	task := NewTask()
	task.dial = func(gateway.Config) (gateway.Client, error) { return &fakeClient{}, nil }
	if err := task.Start(Config{}); err == nil {
		t.Fatal("expected error for empty job type list")
	}
}

func TestTask_PollBeforeStart(t *testing.T) {
	task := NewTask()
	if _, err := task.Poll(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}

func TestTask_PollReturnsActivatedJobs(t *testing.T) {
	fc := &fakeClient{}
	task := newStartedTask(t, fc)

	fc.deliver(t, "A", validJob(1042))

	records, err := task.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Topic != "orders" || rec.Key != 1042 || rec.Offset.Key != 1042 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	// the job was handed off; nothing left to poll
	records, err = task.Poll(context.Background())
	if err != nil || records != nil {
		t.Fatalf("expected no-data poll, got %v, %v", records, err)
	}
}

func TestTask_PollNoDataIsNotAnError(t *testing.T) {
	task := newStartedTask(t, &fakeClient{})
	records, err := task.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if records != nil {
		t.Fatalf("expected nil batch, got %v", records)
	}
	if task.Stopped() {
		t.Fatal("task must stay running after an empty poll")
	}
}

func TestTask_PollHonoursCancellation(t *testing.T) {
	task := newStartedTask(t, &fakeClient{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := task.Poll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTask_StopDefersTeardownToPoll(t *testing.T) {
	fc := &fakeClient{}
	task := newStartedTask(t, fc)

	fc.deliver(t, "A", validJob(1))
	fc.deliver(t, "A", validJob(2))

	task.Stop()
	if task.Stopped() {
		t.Fatal("stop must not tear down by itself")
	}
	if atomic.LoadInt32(&fc.closed) != 0 {
		t.Fatal("client closed before the poll loop observed the stop")
	}

	// jobs drained during the stop window are still a valid batch
	records, err := task.Poll(context.Background())
	if err != nil || len(records) != 2 {
		t.Fatalf("expected 2 records during stop window, got %v, %v", records, err)
	}

	// the empty drain that follows performs teardown
	if records, err := task.Poll(context.Background()); err != nil || records != nil {
		t.Fatalf("expected terminal no-data poll, got %v, %v", records, err)
	}
	if !task.Stopped() {
		t.Fatal("task not stopped after teardown poll")
	}
	if n := atomic.LoadInt32(&fc.closed); n != 1 {
		t.Fatalf("client closed %d times, want 1", n)
	}
	for i, w := range fc.workers {
		if n := atomic.LoadInt32(&w.closed); n != 1 {
			t.Errorf("worker %d closed %d times, want 1", i, n)
		}
	}

	// subsequent polls never re-open resources
	if records, err := task.Poll(context.Background()); err != nil || records != nil {
		t.Fatalf("expected permanent no-data, got %v, %v", records, err)
	}
	if n := atomic.LoadInt32(&fc.closed); n != 1 {
		t.Fatalf("client close count changed to %d", n)
	}
}

func TestTask_CommitCompletesJob(t *testing.T) {
	fc := &fakeClient{}
	task := newStartedTask(t, fc)

	if err := task.Commit(context.Background(), connect.SourceOffset{Key: 1042}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(fc.completed) != 1 || fc.completed[0] != 1042 {
		t.Fatalf("expected complete command for 1042, got %v", fc.completed)
	}
}

func TestTask_CommitToleratesCancellation(t *testing.T) {
	fc := &fakeClient{completeErr: status.Error(codes.Canceled, "shutting down")}
	task := newStartedTask(t, fc)

	if err := task.Commit(context.Background(), connect.SourceOffset{Key: 7}); err != nil {
		t.Fatalf("cancelled commit must not surface, got %v", err)
	}
}

func TestTask_CommitPropagatesOtherFailures(t *testing.T) {
	fc := &fakeClient{completeErr: status.Error(codes.Unavailable, "gateway gone")}
	task := newStartedTask(t, fc)

	if err := task.Commit(context.Background(), connect.SourceOffset{Key: 7}); err == nil {
		t.Fatal("expected transport failure to propagate")
	}
}

func TestTask_CommitAfterShutdownIsIgnored(t *testing.T) {
	fc := &fakeClient{}
	task := newStartedTask(t, fc)

	task.Stop()
	if _, err := task.Poll(context.Background()); err != nil {
		t.Fatalf("teardown poll: %v", err)
	}
	if !task.Stopped() {
		t.Fatal("task not stopped")
	}

	if err := task.Commit(context.Background(), connect.SourceOffset{Key: 9}); err != nil {
		t.Fatalf("commit after shutdown must be tolerated, got %v", err)
	}
	if len(fc.completed) != 0 {
		t.Fatalf("no complete command expected after shutdown, got %v", fc.completed)
	}
}
