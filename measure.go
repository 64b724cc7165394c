package tagstats

import (
	"reflect"
	"runtime"
	"time"

	"go.uber.org/zap"
)

type measureConfig struct {
	tags   Tags
	logger *zap.Logger
}

// MeasureOption configures a Measure call.
type MeasureOption func(*measureConfig)

// WithMeasureTags adds extra tags to the measurement scope, merged on top
// of the def tag and under the class tag.
func WithMeasureTags(tags Tags) MeasureOption {
	return func(cfg *measureConfig) { cfg.tags = cfg.tags.merged(tags) }
}

// WithMeasureLogger enables the logging side channel: a structured line
// at call start and call end (success or failure) carrying start time,
// end time, elapsed duration, function identity, and the error if any.
// The logger is named after the calling function via CallerName.
func WithMeasureLogger(l *zap.Logger) MeasureOption {
	return func(cfg *measureConfig) { cfg.logger = l }
}

// Measure runs fn wrapped with call metrics on c. Within a scoped tag
// region carrying def=<function name> (plus class=<receiver type> for
// methods and any option-supplied tags), it increments the "calls"
// counter, then records the "duration" timing around fn. fn receives the
// active client so emissions inside it carry the measurement tags, the
// explicit equivalent of injecting the client into the wrapped call.
//
// fn's error is returned unchanged; a panic propagates after the
// duration is recorded and the tag scope is restored. The duration is
// emitted on the failure path as well as on success.
func Measure(c *Client, fn func(*Client) error, opts ...MeasureOption) error {
	return measure(c, fn, 1, opts...)
}

// MeasureFunc returns fn wrapped as a no-argument function that runs
// under Measure each time it is invoked.
func MeasureFunc(c *Client, fn func(*Client) error, opts ...MeasureOption) func() error {
	return func() error { return Measure(c, fn, opts...) }
}

func measure(c *Client, fn func(*Client) error, skip int, opts ...MeasureOption) error {
	var cfg measureConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	def, class := funcIdentity(fn)
	tags := Tags{{"def", def}}
	tags = tags.merged(cfg.tags)
	if class != "" && class != def {
		tags = tags.merged(Tags{{"class", class}})
	}

	restore := c.ScopedExtraTags(tags)
	defer restore()

	c.Incr("calls", 1)

	var logger *zap.Logger
	var t0 time.Time
	if cfg.logger != nil {
		// name the logger after the function that invoked the measurement,
		// not after this package
		logger = cfg.logger.Named(CallerName(skip + 1))
		t0 = time.Now()
		logger.Info("measure begin",
			zap.Time("t0", t0),
			zap.String("fn", def),
		)
	}

	var err error
	defer func() {
		if logger != nil {
			t1 := time.Now()
			logger.Info("measure end",
				zap.Time("t0", t0),
				zap.Time("t1", t1),
				zap.Duration("elapsed", t1.Sub(t0)),
				zap.String("fn", def),
				zap.Error(err),
			)
		}
	}()

	c.Time("duration", func() {
		err = fn(c)
	})
	return err
}

// funcIdentity resolves the def and class tag values for a function
// value: def is the function's bare name, class the receiver type name
// for methods (empty otherwise). Anonymous functions report their
// runtime name (funcN) as def.
func funcIdentity(fn interface{}) (def, class string) {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "unknown", ""
	}
	_, typ, name := splitFuncName(f.Name())
	return name, typ
}
