package pipeline

import (
	"fmt"
	"time"

	"github.com/agrawald/kafka-connect-zeebe/internal/config"
	"github.com/agrawald/kafka-connect-zeebe/sink"
	kafkasink "github.com/agrawald/kafka-connect-zeebe/sink/kafka"
	"github.com/agrawald/kafka-connect-zeebe/sink/stdout"
	zeebesrc "github.com/agrawald/kafka-connect-zeebe/source/zeebe"
)

// Compile parses a connector YAML and wires up a ready-to-start Runner.
func Compile(path string) (*Runner, error) {
	r := NewRunner()
	if err := LoadYAML(path, r); err != nil {
		return nil, err
	}
	return r, nil
}

func LoadYAML(path string, r *Runner) error {
	cfg, confPath, err := config.LoadConnectorSpec(path)
	if err != nil {
		return err
	}

	/*──────── source ───────*/
	if cfg.Source.Kind != "zeebe" {
		return fmt.Errorf("unsupported source %q", cfg.Source.Kind)
	}
	zc, err := config.LoadZeebeConfig(confPath)
	if err != nil {
		return err
	}

	task := zeebesrc.NewTask()
	if err := task.Start(zc); err != nil {
		return err
	}
	r.SetSource(task)
	r.SetPollInterval(zc.PollInterval)

	/*──────── sinks ───────*/
	for _, name := range cfg.Sinks {
		sDrv, err := sink.NewAdapter(name)
		if err != nil {
			return err
		}

		switch name {
		case "kafka":
			err = sDrv.Configure(kafkasink.Config{
				Brokers:      cfg.SinkConfigs.Kafka.Brokers,
				RequiredAcks: cfg.SinkConfigs.Kafka.RequiredAcks,
				Version:      cfg.SinkConfigs.Kafka.Version,
			})

		case "stdout":
			delay := time.Duration(cfg.Debug.PerRecordDelayMS) * time.Millisecond
			err = sDrv.Configure(stdout.Config{
				DelayMS:       int(delay / time.Millisecond),
				PrintCounter:  cfg.Debug.PrintCounter,
				BatchSize:     cfg.Debug.AckBatchSize,
				FlushMS:       cfg.Debug.AckFlushMS,
				PrintValue:    cfg.Debug.PrintValue,
				ValueMaxBytes: cfg.Debug.ValueMaxBytes,
			})

		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return err
		}

		// If the sink supports acks, bind it.
		if ackAware, ok := sDrv.(sink.AckAware); ok {
			ackAware.BindAck(r.Ack)
		}
		r.AddSink(sDrv)
	}
	return nil
}
