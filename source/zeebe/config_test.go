package zeebe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GatewayAddress != "127.0.0.1:26500" {
		t.Errorf("gateway address = %q", cfg.GatewayAddress)
	}
	if cfg.WorkerName != "kafka-connect" {
		t.Errorf("worker name = %q", cfg.WorkerName)
	}
	if cfg.TopicHeader != "kafkaTopic" {
		t.Errorf("topic header = %q", cfg.TopicHeader)
	}
	if cfg.MaxJobsToActivate != 100 {
		t.Errorf("max jobs = %d", cfg.MaxJobsToActivate)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("poll interval = %v", cfg.PollInterval)
	}
	if cfg.QueueCapacity != 32_768 {
		t.Errorf("queue capacity = %d", cfg.QueueCapacity)
	}
}

func TestLoadConfig_ReadsYAML(t *testing.T) {
	dir := t.TempDir()
	raw := []byte(`schema_version: v1
gateway_address: zeebe:26500
plaintext: true
job_types: [payment, shipping]
job_header_topic: kafkaTopic
job_variables: [orderId, amount]
max_jobs_to_activate: 12
job_timeout: 2s
request_timeout: 3s
poll_interval: 250ms
queue_capacity: 128
`)
	path := filepath.Join(dir, "zeebe_source.yml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GatewayAddress != "zeebe:26500" {
		t.Errorf("gateway address = %q", cfg.GatewayAddress)
	}
	if !cfg.Plaintext {
		t.Error("plaintext not set")
	}
	if len(cfg.JobTypes) != 2 || cfg.JobTypes[0] != "payment" {
		t.Errorf("job types = %v", cfg.JobTypes)
	}
	if len(cfg.JobVariables) != 2 || cfg.JobVariables[1] != "amount" {
		t.Errorf("job variables = %v", cfg.JobVariables)
	}
	if cfg.MaxJobsToActivate != 12 {
		t.Errorf("max jobs = %d", cfg.MaxJobsToActivate)
	}
	if cfg.JobTimeout != 2*time.Second || cfg.RequestTimeout != 3*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.JobTimeout, cfg.RequestTimeout)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("poll interval = %v", cfg.PollInterval)
	}
	if cfg.QueueCapacity != 128 {
		t.Errorf("queue capacity = %d", cfg.QueueCapacity)
	}
}

func TestLoadConfig_RejectsUnknownSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zeebe_source.yml")
	if err := os.WriteFile(path, []byte("schema_version: v999\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unsupported schema_version")
	}
}
