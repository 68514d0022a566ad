package spec

// KafkaSinkSpec configures the Kafka producer sink.
type KafkaSinkSpec struct {
	Brokers      []string `yaml:"brokers"`
	RequiredAcks int16    `yaml:"required_acks"` // 0,1,-1
	Version      string   `yaml:"version"`
}

type sinkConfigs struct {
	Kafka KafkaSinkSpec `yaml:"kafka"`
}

type debugSection struct {
	PerRecordDelayMS int  `yaml:"per_record_delay_ms"`
	PrintCounter     bool `yaml:"print_counter"`
	AckBatchSize     int  `yaml:"ack_batch_size"`
	AckFlushMS       int  `yaml:"ack_flush_ms"`
	PrintValue       bool `yaml:"print_value"`
	ValueMaxBytes    int  `yaml:"value_max_bytes"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	Source struct {
		Kind   string `yaml:"kind"`
		Config string `yaml:"config"`
	} `yaml:"source"`

	Sinks       []string     `yaml:"sinks"`
	SinkConfigs sinkConfigs  `yaml:"sink_configs"`
	Debug       debugSection `yaml:"debug"`
}
