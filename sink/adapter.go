package sink

import (
	"fmt"

	"github.com/agrawald/kafka-connect-zeebe/connect"
)

// EmitFn is what a sink calls to notify the pipeline that a record has been
// durably delivered; the offset identifies the job to complete upstream.
type EmitFn func(connect.SourceOffset)

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error         // driver-specific YAML ⇒ struct
	Push(*connect.Record) error  // deliver one record
	Close() error                // idempotent
}

// AckAware is *optional*; sinks that can confirm delivery implement it and
// the compiler wires the callback.
type AckAware interface {
	BindAck(EmitFn)
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
