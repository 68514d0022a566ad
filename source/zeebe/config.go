package zeebe

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	GatewayAddress string        `koanf:"gateway_address"`
	Plaintext      bool          `koanf:"plaintext"`
	KeepAlive      time.Duration `koanf:"keep_alive"`

	JobTypes     []string `koanf:"job_types"`
	WorkerName   string   `koanf:"worker_name"`
	TopicHeader  string   `koanf:"job_header_topic"`
	JobVariables []string `koanf:"job_variables"`

	MaxJobsToActivate int           `koanf:"max_jobs_to_activate"`
	JobTimeout        time.Duration `koanf:"job_timeout"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	PollInterval      time.Duration `koanf:"poll_interval"`

	QueueCapacity int `koanf:"queue_capacity"`
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadConfig merges YAML (if present) with env-vars
// (prefix `ZEEBE_CONNECT__`, delimiter `__`).
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != "v1" {
		return Config{}, fmt.Errorf("zeebe schema_version %q not supported (want v1)", sv)
	}

	_ = k.Load(env.Provider("ZEEBE_CONNECT__", "__", nil), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(c *Config) {
	if c.GatewayAddress == "" {
		c.GatewayAddress = "127.0.0.1:26500"
	}
	if c.KeepAlive == 0 {
		c.KeepAlive = 45 * time.Second
	}
	if c.WorkerName == "" {
		c.WorkerName = "kafka-connect"
	}
	if c.TopicHeader == "" {
		c.TopicHeader = "kafkaTopic"
	}
	if c.MaxJobsToActivate == 0 {
		c.MaxJobsToActivate = 100
	}
	if c.JobTimeout == 0 {
		c.JobTimeout = 5 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.PollInterval == 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.QueueCapacity == 0 {
		c.QueueCapacity = 32_768
	}
}
