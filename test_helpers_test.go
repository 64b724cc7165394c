package tagstats

// test helpers: build a client over a MemoryEmitter with the standard
// module/service tags, the way a registry would. Placed in a _test.go
// file so they are test-only and not part of the public API.

func newTestClient() (*Client, *MemoryEmitter) {
	m := NewMemoryEmitter()
	return NewClient(m, Tags{{"module", "m"}, {"service", "s"}}), m
}

// lastEvent returns the most recent emission, if any.
func lastEvent(m *MemoryEmitter) (Event, bool) {
	events := m.Events()
	if len(events) == 0 {
		return Event{}, false
	}
	return events[len(events)-1], true
}
