package tagstats

import "time"

// NewNoopEmitter returns an Emitter that discards every emission. Useful
// as a stand-in when metrics are disabled.
func NewNoopEmitter() Emitter {
	return noopEmitter{}
}

type noopEmitter struct{}

func (noopEmitter) Incr(string, int64)                    {}
func (noopEmitter) Decr(string, int64)                    {}
func (noopEmitter) Gauge(string, int64)                   {}
func (noopEmitter) GaugeDelta(string, int64)              {}
func (noopEmitter) Timing(string, int64)                  {}
func (noopEmitter) PrecisionTiming(string, time.Duration) {}
func (noopEmitter) SetAdd(string, string)                 {}
func (noopEmitter) Close() error                          { return nil }
