package telemetry

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	JobsActivated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeebe_connect_jobs_activated_total",
		Help: "Jobs activated and enqueued, by job type.",
	}, []string{"job_type"})

	JobsInvalid = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zeebe_connect_jobs_invalid_total",
		Help: "Jobs rejected for a missing or empty topic header, by job type.",
	}, []string{"job_type"})

	RecordsPolled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zeebe_connect_records_polled_total",
		Help: "Records returned to the poll loop.",
	})

	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zeebe_connect_jobs_completed_total",
		Help: "Complete-job commands acknowledged by the gateway.",
	})

	CommitsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zeebe_connect_commits_cancelled_total",
		Help: "Commits cancelled by a concurrent shutdown.",
	})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zeebe_connect_queue_depth",
		Help: "Jobs currently buffered between the workers and the poll loop.",
	})
)

func Expose(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		_ = http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}()
}
