package kafka

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/IBM/sarama"

	"github.com/agrawald/kafka-connect-zeebe/connect"
	"github.com/agrawald/kafka-connect-zeebe/internal/logging"
	"github.com/agrawald/kafka-connect-zeebe/sink"
)

type Config struct {
	Brokers      []string `yaml:"brokers"`
	RequiredAcks int16    `yaml:"required_acks"` // 0,1,-1
	Version      string   `yaml:"version"`
}

// driver publishes records to the topic each record names, and acknowledges
// an offset only after the broker has confirmed the write. The ack is what
// ultimately completes the job upstream.
type driver struct {
	cfg Config
	p   sarama.AsyncProducer
	ack sink.EmitFn
	wg  sync.WaitGroup
}

func (d *driver) Configure(c any) error {
	cfg, ok := c.(Config)
	if !ok {
		return fmt.Errorf("kafka-sink: want Config, got %T", c)
	}
	d.cfg = cfg

	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.RequiredAcks(cfg.RequiredAcks)
	sc.Producer.Return.Successes = true
	if cfg.Version != "" {
		ver, err := sarama.ParseKafkaVersion(cfg.Version)
		if err != nil {
			return err
		}
		sc.Version = ver
	}

	var err error
	if d.p, err = sarama.NewAsyncProducer(cfg.Brokers, sc); err != nil {
		return err
	}

	d.wg.Add(2)
	go d.forwardSuccesses()
	go d.logErrors()
	return nil
}

func (d *driver) Push(r *connect.Record) error {
	d.p.Input() <- &sarama.ProducerMessage{
		Topic:    r.Topic,
		Key:      sarama.StringEncoder(strconv.FormatInt(r.Key, 10)),
		Value:    sarama.ByteEncoder(r.Value),
		Metadata: r.Offset,
	}
	return nil
}

func (d *driver) Close() error {
	err := d.p.Close()
	d.wg.Wait()
	return err
}

func (d *driver) BindAck(fn sink.EmitFn) { d.ack = fn }

func (d *driver) forwardSuccesses() {
	defer d.wg.Done()
	for msg := range d.p.Successes() {
		off, ok := msg.Metadata.(connect.SourceOffset)
		if ok && d.ack != nil {
			d.ack(off)
		}
	}
}

func (d *driver) logErrors() {
	defer d.wg.Done()
	for perr := range d.p.Errors() {
		// the job is never completed, so the broker redelivers it later
		logging.L().Error("kafka-sink: produce failed", "topic", perr.Msg.Topic, "error", perr.Err)
	}
}

func init() { sink.Register("kafka", func() sink.Adapter { return &driver{} }) }
