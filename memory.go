package tagstats

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event is one recorded emission: the operation, the full composed
// metric name as it would hit the wire, and the operation's value.
type Event struct {
	Op       string
	Name     string
	Value    int64
	Duration time.Duration
	Member   string
}

// MemoryEmitter is a simple in-memory implementation of Emitter.
// It is concurrency-safe and suitable for tests, examples, and
// lightweight apps. It keeps an ordered log of every emission and
// aggregates per metric name on demand.
type MemoryEmitter struct {
	mu     sync.Mutex
	events []Event

	counters sync.Map // map[string]*MemoryCounter
	gauges   sync.Map // map[string]*MemoryGauge
	timings  sync.Map // map[string]*MemoryTiming
	sets     sync.Map // map[string]*memorySet

	closed atomic.Bool
}

// NewMemoryEmitter constructs a new MemoryEmitter.
func NewMemoryEmitter() *MemoryEmitter {
	return &MemoryEmitter{}
}

func (m *MemoryEmitter) record(e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

// Events returns a copy of the ordered emission log.
func (m *MemoryEmitter) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MemoryEmitter) counter(name string) *MemoryCounter {
	v, _ := m.counters.LoadOrStore(name, &MemoryCounter{})
	return v.(*MemoryCounter)
}

func (m *MemoryEmitter) gauge(name string) *MemoryGauge {
	v, _ := m.gauges.LoadOrStore(name, &MemoryGauge{})
	return v.(*MemoryGauge)
}

func (m *MemoryEmitter) timing(name string) *MemoryTiming {
	v, _ := m.timings.LoadOrStore(name, &MemoryTiming{})
	return v.(*MemoryTiming)
}

func (m *MemoryEmitter) Incr(name string, count int64) {
	m.counter(name).Add(count)
	m.record(Event{Op: baseIncr, Name: name, Value: count})
}

func (m *MemoryEmitter) Decr(name string, count int64) {
	m.counter(name).Add(-count)
	m.record(Event{Op: baseDecr, Name: name, Value: count})
}

func (m *MemoryEmitter) Gauge(name string, value int64) {
	m.gauge(name).Set(value)
	m.record(Event{Op: baseGauge, Name: name, Value: value})
}

func (m *MemoryEmitter) GaugeDelta(name string, value int64) {
	m.gauge(name).Add(value)
	m.record(Event{Op: baseGaugeDelta, Name: name, Value: value})
}

func (m *MemoryEmitter) Timing(name string, delta int64) {
	m.timing(name).Record(time.Duration(delta) * time.Millisecond)
	m.record(Event{Op: baseTiming, Name: name, Value: delta})
}

func (m *MemoryEmitter) PrecisionTiming(name string, delta time.Duration) {
	m.timing(name).Record(delta)
	m.record(Event{Op: basePrecisionTiming, Name: name, Duration: delta})
}

func (m *MemoryEmitter) SetAdd(name string, value string) {
	v, _ := m.sets.LoadOrStore(name, &memorySet{members: map[string]struct{}{}})
	v.(*memorySet).add(value)
	m.record(Event{Op: baseSetAdd, Name: name, Member: value})
}

// Close marks the emitter closed. Emissions after Close are still
// recorded; the flag exists so tests can assert pass-through behavior.
func (m *MemoryEmitter) Close() error {
	m.closed.Store(true)
	return nil
}

// Closed reports whether Close has been called.
func (m *MemoryEmitter) Closed() bool { return m.closed.Load() }

// CounterValue returns the accumulated value for a counter metric name.
func (m *MemoryEmitter) CounterValue(name string) (int64, bool) {
	v, ok := m.counters.Load(name)
	if !ok {
		return 0, false
	}
	return v.(*MemoryCounter).Snapshot(), true
}

// GaugeValue returns the current value for a gauge metric name.
func (m *MemoryEmitter) GaugeValue(name string) (int64, bool) {
	v, ok := m.gauges.Load(name)
	if !ok {
		return 0, false
	}
	return v.(*MemoryGauge).Snapshot(), true
}

// TimingStats returns the aggregate snapshot for a timing metric name.
func (m *MemoryEmitter) TimingStats(name string) (TimingSnapshot, bool) {
	v, ok := m.timings.Load(name)
	if !ok {
		return TimingSnapshot{}, false
	}
	return v.(*MemoryTiming).Snapshot(), true
}

// SetMembers reports how many distinct members a set metric has seen.
func (m *MemoryEmitter) SetMembers(name string) (int, bool) {
	v, ok := m.sets.Load(name)
	if !ok {
		return 0, false
	}
	return v.(*memorySet).size(), true
}

// MemoryCounter is a thread-safe counter.
type MemoryCounter struct {
	val atomic.Int64
}

// Add adds n (positive or negative) to the current value.
func (c *MemoryCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *MemoryCounter) Snapshot() int64 { return c.val.Load() }

// MemoryGauge is a thread-safe gauge supporting absolute and delta writes.
type MemoryGauge struct {
	val atomic.Int64
}

// Set stores an absolute value.
func (g *MemoryGauge) Set(v int64) { g.val.Store(v) }

// Add shifts the current value by n.
func (g *MemoryGauge) Add(n int64) { g.val.Add(n) }

// Snapshot returns the current value.
func (g *MemoryGauge) Snapshot() int64 { return g.val.Load() }

// MemoryTiming is a thread-safe duration aggregator tracking count, sum,
// min, and max. It does not maintain buckets; it's intended as a
// lightweight, general-purpose aggregator.
type MemoryTiming struct {
	mu    sync.Mutex
	count int64
	sum   time.Duration
	min   time.Duration
	max   time.Duration
}

// Record adds a measurement.
func (t *MemoryTiming) Record(d time.Duration) {
	t.mu.Lock()
	if t.count == 0 {
		// initialize min/max on first record
		t.min, t.max = d, d
	} else {
		if d < t.min {
			t.min = d
		}
		if d > t.max {
			t.max = d
		}
	}
	t.count++
	t.sum += d
	t.mu.Unlock()
}

// TimingSnapshot is an immutable snapshot of a MemoryTiming.
type TimingSnapshot struct {
	Count int64
	Sum   time.Duration
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
}

// Snapshot returns a copy of the aggregate state at the time of call.
func (t *MemoryTiming) Snapshot() TimingSnapshot {
	t.mu.Lock()
	count := t.count
	sum := t.sum
	minD := t.min
	maxD := t.max
	t.mu.Unlock()
	var mean time.Duration
	if count > 0 {
		mean = sum / time.Duration(count)
	}
	return TimingSnapshot{Count: count, Sum: sum, Min: minD, Max: maxD, Mean: mean}
}

type memorySet struct {
	mu      sync.Mutex
	members map[string]struct{}
}

func (s *memorySet) add(v string) {
	s.mu.Lock()
	s.members[v] = struct{}{}
	s.mu.Unlock()
}

func (s *memorySet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}
