package tagstats

import "time"

// Emitter is the underlying statsd client contract. It enumerates the
// supported emission operations at compile time; each operation's first
// argument is the full metric name string. Close is a pass-through
// lifecycle operation and is never intercepted for tagging.
//
// This interface is designed to be minimal and stable. In case there is a
// need of new capabilities, we may later introduce separate optional
// interfaces rather than expanding this surface.
type Emitter interface {
	Incr(name string, count int64)
	Decr(name string, count int64)
	Gauge(name string, value int64)
	GaugeDelta(name string, value int64)
	Timing(name string, delta int64)
	PrecisionTiming(name string, delta time.Duration)
	SetAdd(name string, value string)

	Close() error
}

// Base metric names, one per emission operation. The composed wire name is
// "<base>,<tags>,name=<callsite>"; dashboards key off these exact strings.
const (
	baseIncr            = "incr"
	baseDecr            = "decr"
	baseGauge           = "gauge"
	baseGaugeDelta      = "gauge_delta"
	baseTiming          = "timing"
	basePrecisionTiming = "timer"
	baseSetAdd          = "set"
)
