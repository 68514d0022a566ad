package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"google.golang.org/protobuf/encoding/protojson"
)

// Config holds the gateway connection settings.
type Config struct {
	Address      string
	UsePlaintext bool
	KeepAlive    time.Duration
}

type zbcClient struct {
	client zbc.Client
}

// Dial connects to a Zeebe gateway using the official client.
func Dial(cfg Config) (Client, error) {
	c, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.Address,
		UsePlaintextConnection: cfg.UsePlaintext,
		KeepAlive:              cfg.KeepAlive,
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: dial %s: %w", cfg.Address, err)
	}
	return &zbcClient{client: c}, nil
}

func (z *zbcClient) OpenWorker(cfg WorkerConfig, handler JobHandler) (Worker, error) {
	w := z.client.NewJobWorker().
		JobType(cfg.JobType).
		Handler(func(_ worker.JobClient, job entities.Job) {
			handler(fromEntity(job))
		}).
		Name(cfg.Name).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(cfg.JobTimeout).
		RequestTimeout(cfg.RequestTimeout).
		PollInterval(cfg.PollInterval).
		FetchVariables(cfg.FetchVariables...).
		Open()
	return w, nil
}

func (z *zbcClient) CompleteJob(ctx context.Context, key int64) error {
	_, err := z.client.NewCompleteJobCommand().JobKey(key).Send(ctx)
	return err
}

func (z *zbcClient) FailJob(ctx context.Context, key int64, retries int32, message string) error {
	_, err := z.client.NewFailJobCommand().
		JobKey(key).
		Retries(retries).
		ErrorMessage(message).
		Send(ctx)
	return err
}

func (z *zbcClient) Close() error {
	return z.client.Close()
}

func fromEntity(job entities.Job) Job {
	// A header blob that fails to decode is treated as no headers at all;
	// the job then fails validation downstream and is failed back.
	headers, _ := job.GetCustomHeadersAsMap()
	raw, _ := protojson.Marshal(job.ActivatedJob)
	return Job{
		Key:     job.GetKey(),
		Type:    job.GetType(),
		Retries: job.GetRetries(),
		Headers: headers,
		Raw:     raw,
	}
}
