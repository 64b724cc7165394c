package tagstats

import "time"

// Config carries the transport options handed to the underlying emitter
// plus any initial tags. It is only ever built from options and read;
// never mutated after construction.
type Config struct {
	// Address is the statsd server address ("host:port").
	Address string
	// MetricPrefix is prepended to every metric by the underlying client.
	MetricPrefix string
	// FlushInterval overrides the underlying client's flush period.
	FlushInterval time.Duration
	// MaxPacketSize overrides the underlying client's UDP packet size.
	MaxPacketSize int
	// Tags are initial tags merged under the module/service tags.
	Tags Tags

	// emitter, when set, is used instead of constructing a statsd client.
	// It does not participate in the fingerprint.
	emitter Emitter
}

// Option mutates Config.
type Option func(*Config)

// WithAddress sets the statsd server address.
func WithAddress(addr string) Option {
	return func(c *Config) { c.Address = addr }
}

// WithMetricPrefix sets the prefix the underlying client prepends to
// every metric name.
func WithMetricPrefix(prefix string) Option {
	return func(c *Config) { c.MetricPrefix = prefix }
}

// WithFlushInterval sets the underlying client's flush period.
func WithFlushInterval(d time.Duration) Option {
	return func(c *Config) { c.FlushInterval = d }
}

// WithMaxPacketSize sets the underlying client's maximum UDP packet size.
func WithMaxPacketSize(n int) Option {
	return func(c *Config) { c.MaxPacketSize = n }
}

// WithTags adds initial tags to the client. The module and service tags
// are applied on top and win on key conflict.
func WithTags(tags Tags) Option {
	return func(c *Config) { c.Tags = c.Tags.merged(tags) }
}

// WithEmitter injects a pre-built emitter instead of constructing a
// statsd client from the transport options. Intended for tests and for
// callers bringing their own transport. The emitter itself is not part
// of the registry fingerprint; distinguish injected configurations by
// their other options.
func WithEmitter(e Emitter) Option {
	return func(c *Config) { c.emitter = e }
}

// applyOptions builds Config from options.
func applyOptions(opts []Option) Config {
	var cfg Config
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
