package tagstats

import "time"

// Client decorates an Emitter with an insertion-ordered tag set. Every
// emission operation rewrites the metric name to carry the current tags
// plus a trailing name=<callsite> tag, then forwards to the underlying
// emitter with the remaining arguments unchanged.
//
// Clients returned by a Registry are shared: all holders of the same
// (module, options) pair see the same instance. ScopedExtraTags mutates
// that shared state; see its doc for the concurrency caveat.
type Client struct {
	emitter Emitter
	tags    Tags
}

// NewClient wraps an emitter with the given initial tags. The tag slice
// is copied; the caller's slice is not retained.
func NewClient(emitter Emitter, tags Tags) *Client {
	return &Client{emitter: emitter, tags: tags.clone()}
}

// Tags returns a copy of the client's current tag set.
func (c *Client) Tags() Tags {
	return c.tags.clone()
}

// WithExtraTags returns a new Client sharing the same underlying emitter,
// whose tag set is the receiver's tags merged with extra (extra wins on
// key conflict). The receiver is not mutated. This is the safe way to
// obtain a privately-tagged instance before entering concurrent code.
func (c *Client) WithExtraTags(extra Tags) *Client {
	return &Client{emitter: c.emitter, tags: c.tags.merged(extra)}
}

// ScopedExtraTags temporarily merges extra into the receiver's tag set
// in place and returns a restore function that reinstates the exact
// prior tag set. Callers must defer the restore so it runs on every exit
// path, including panic:
//
//	defer c.ScopedExtraTags(tagstats.Tags{{"def", "handler"}})()
//
// Not safe for concurrent use on a shared instance: two overlapping
// scoped regions on the same Client race and may restore stale tags.
// Use WithExtraTags to derive a private instance instead, or serialize
// access externally.
func (c *Client) ScopedExtraTags(extra Tags) func() {
	prior := c.tags
	c.tags = c.tags.merged(extra)
	return func() { c.tags = prior }
}

// Incr increments a counter.
func (c *Client) Incr(name string, count int64) {
	c.emitter.Incr(c.tags.composeName(baseIncr, name), count)
}

// Decr decrements a counter.
func (c *Client) Decr(name string, count int64) {
	c.emitter.Decr(c.tags.composeName(baseDecr, name), count)
}

// Gauge sets a gauge to an absolute value.
func (c *Client) Gauge(name string, value int64) {
	c.emitter.Gauge(c.tags.composeName(baseGauge, name), value)
}

// GaugeDelta shifts a gauge by a relative value.
func (c *Client) GaugeDelta(name string, value int64) {
	c.emitter.GaugeDelta(c.tags.composeName(baseGaugeDelta, name), value)
}

// Timing records a duration in milliseconds.
func (c *Client) Timing(name string, delta int64) {
	c.emitter.Timing(c.tags.composeName(baseTiming, name), delta)
}

// PrecisionTiming records a duration with sub-millisecond precision.
func (c *Client) PrecisionTiming(name string, delta time.Duration) {
	c.emitter.PrecisionTiming(c.tags.composeName(basePrecisionTiming, name), delta)
}

// SetAdd adds a value to a set metric.
func (c *Client) SetAdd(name string, value string) {
	c.emitter.SetAdd(c.tags.composeName(baseSetAdd, name), value)
}

// Time measures fn's wall-clock duration and records it as a precision
// timing under the given name. The measurement is emitted even if fn
// panics.
func (c *Client) Time(name string, fn func()) {
	t0 := time.Now()
	defer func() {
		c.PrecisionTiming(name, time.Since(t0))
	}()
	fn()
}

// Measure runs fn wrapped with call-count and duration metrics. It is a
// convenience for the package-level Measure with the receiver as the
// client.
func (c *Client) Measure(fn func(*Client) error, opts ...MeasureOption) error {
	return measure(c, fn, 1, opts...)
}

// Close closes the underlying emitter. It is a pass-through: the name is
// not rewritten and the emitter's error is returned unchanged. Closing a
// shared registry client affects every holder of that instance.
func (c *Client) Close() error {
	return c.emitter.Close()
}
