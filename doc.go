/*
Package tagstats is a convenience layer over a statsd client: it caches one
client per unique configuration, appends a set of key/value tags to every
metric name emitted through a client, and wraps functions with call-count
and duration metrics.

# Overview

The library is organized around three pieces:

1. Registry: a process-wide, concurrency-safe cache mapping a configuration
fingerprint to a single shared Client. Concurrent first accesses for the same
fingerprint are de-duplicated so exactly one instance is retained.

	client, err := tagstats.GetClient("checkout", "payments",
	    tagstats.WithAddress("statsd:8125"))

2. Client: decorates an Emitter (the underlying statsd client) with an
insertion-ordered tag set. Every emission operation rewrites the metric name
to "<base>,<k1>=<v1>,...,name=<callsite>" (the InfluxDB statsd tagging
convention) and forwards to the underlying client unchanged:

	client.Incr("fool", 1) // emits "incr,module=payments,service=checkout,name=fool"

Derive a privately-tagged child with WithExtraTags (never mutates the
parent), or merge tags temporarily with ScopedExtraTags:

	defer client.ScopedExtraTags(tagstats.Tags{{"op", "refund"}})()

3. Measure: wraps a function so each invocation emits a "calls" counter and
a "duration" timing, tagged def=<function name> and, for methods,
class=<receiver type>:

	err := tagstats.Measure(client, svc.ProcessOrder)

The wrapped function receives the active client, so emissions inside it
carry the measurement tags.

# Underlying client

Transmission (UDP send, buffering, batching, reconnects) is fully delegated
to github.com/smira/go-statsd. Any other transport can be plugged in through
the Emitter interface and the WithEmitter option. MemoryEmitter records and
aggregates emissions in memory for tests and lightweight apps; NewNoopEmitter
discards everything.

# Concurrency

Registry lookups are safe for concurrent use. A Client's tag set, however,
is shared by everyone holding the same cached instance: overlapping
ScopedExtraTags regions on one instance race and may restore stale tags.
Before entering concurrent code, derive a private instance with
WithExtraTags, or serialize access externally.

# Build and test

- Run unit tests:

	go test ./...

- Run with the race detector:

	go test -race ./...

# Notes

- The composed metric name format is wire-visible to dashboards and alerts;
it is covered byte-for-byte by tests and must stay stable.

- The cache never evicts. Growth is bounded in practice by the number of
distinct (module, options) pairs a process uses. Reset/ResetClients exist
for tests.
*/
package tagstats
