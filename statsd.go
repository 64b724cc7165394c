package tagstats

import (
	"errors"
	"time"

	statsd "github.com/smira/go-statsd"
)

// ErrNoAddress is returned when an emitter is requested without a
// statsd server address and no emitter was injected.
var ErrNoAddress = errors.New("tagstats: statsd address required")

// statsdEmitter adapts the go-statsd client to the Emitter interface.
// All buffering, batching, and reconnect behavior lives in the wrapped
// client; this layer forwards calls as-is.
type statsdEmitter struct {
	client *statsd.Client
}

// NewStatsdEmitter constructs an Emitter backed by a go-statsd client
// configured from the transport options in cfg. Tags in cfg are ignored
// here; tagging is the Client's job.
func NewStatsdEmitter(cfg Config) (Emitter, error) {
	if cfg.Address == "" {
		return nil, ErrNoAddress
	}

	var opts []statsd.Option
	if cfg.MetricPrefix != "" {
		opts = append(opts, statsd.MetricPrefix(cfg.MetricPrefix))
	}
	if cfg.FlushInterval > 0 {
		opts = append(opts, statsd.FlushInterval(cfg.FlushInterval))
	}
	if cfg.MaxPacketSize > 0 {
		opts = append(opts, statsd.MaxPacketSize(cfg.MaxPacketSize))
	}

	return &statsdEmitter{client: statsd.NewClient(cfg.Address, opts...)}, nil
}

func (e *statsdEmitter) Incr(name string, count int64) { e.client.Incr(name, count) }

func (e *statsdEmitter) Decr(name string, count int64) { e.client.Decr(name, count) }

func (e *statsdEmitter) Gauge(name string, value int64) { e.client.Gauge(name, value) }

func (e *statsdEmitter) GaugeDelta(name string, value int64) { e.client.GaugeDelta(name, value) }

func (e *statsdEmitter) Timing(name string, delta int64) { e.client.Timing(name, delta) }

func (e *statsdEmitter) PrecisionTiming(name string, delta time.Duration) {
	e.client.PrecisionTiming(name, delta)
}

func (e *statsdEmitter) SetAdd(name string, value string) { e.client.SetAdd(name, value) }

func (e *statsdEmitter) Close() error { return e.client.Close() }
