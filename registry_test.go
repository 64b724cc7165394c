package tagstats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SameArgumentsSameInstance(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	a, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)
	b, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)

	assert.Same(t, a, b)
}

func TestRegistry_DifferingArgumentsDistinctInstances(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	base, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)

	cases := []struct {
		name   string
		module string
		opts   []Option
	}{
		{name: "different module", module: "othermod", opts: []Option{WithEmitter(m)}},
		{name: "different prefix", module: "mod", opts: []Option{WithEmitter(m), WithMetricPrefix("pfx.")}},
		{name: "different packet size", module: "mod", opts: []Option{WithEmitter(m), WithMaxPacketSize(512)}},
		{name: "different tags", module: "mod", opts: []Option{WithEmitter(m), WithTags(Tags{{"env", "dev"}})}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := reg.GetClient("test", tc.module, tc.opts...)
			require.NoError(t, err)
			assert.NotSame(t, base, c)
		})
	}
}

// The service name is folded into the tag set, not the fingerprint: two
// services asking for the same (module, options) share one client tagged
// with the first caller's service.
func TestRegistry_ServiceNotPartOfFingerprint(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	a, err := reg.GetClient("first", "mod", WithEmitter(m))
	require.NoError(t, err)
	b, err := reg.GetClient("second", "mod", WithEmitter(m))
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, "module=mod,service=first", a.Tags().String())
}

func TestRegistry_InitialTagsUnderModuleService(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	c, err := reg.GetClient("svc", "mod", WithEmitter(m), WithTags(Tags{{"env", "dev"}}))
	require.NoError(t, err)

	assert.Equal(t, "env=dev,module=mod,service=svc", c.Tags().String())
}

func TestRegistry_ConcurrentFirstAccessDeduplicates(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	const n = 100
	clients := make([]*Client, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			c, err := reg.GetClient("test", "mod", WithEmitter(m))
			if err != nil {
				t.Error(err)
				return
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		require.Same(t, clients[0], clients[i], "caller %d got a different instance", i)
	}
}

func TestRegistry_FailedConstructionNotCached(t *testing.T) {
	reg := NewRegistry()

	// no address and no injected emitter: construction fails
	_, err := reg.GetClient("test", "mod")
	require.ErrorIs(t, err, ErrNoAddress)

	// same arguments fail again rather than returning a cached client
	_, err = reg.GetClient("test", "mod")
	require.ErrorIs(t, err, ErrNoAddress)

	// same fingerprint (the emitter is not part of it) succeeds once an
	// emitter is injected, and the result is cached for the key
	m := NewMemoryEmitter()
	c, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)

	cached, err := reg.GetClient("test", "mod")
	require.NoError(t, err)
	assert.Same(t, c, cached)
}

func TestRegistry_Reset(t *testing.T) {
	reg := NewRegistry()
	m := NewMemoryEmitter()

	a, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)

	reg.Reset()

	b, err := reg.GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestRegistry_InitCleanupEnabled(t *testing.T) {
	reg := NewRegistry() // default: cleanup enabled
	m := NewMemoryEmitter()

	opts := []Option{WithEmitter(m)}
	_, err := reg.GetClient("test", "cleanup_enabled", opts...)
	require.NoError(t, err)

	key := fingerprint("cleanup_enabled", applyOptions(opts))
	_, ok := reg.inits.Load(key)
	assert.False(t, ok, "expected inits entry to be deleted when cleanup enabled")
}

func TestRegistry_InitCleanupDisabled(t *testing.T) {
	reg := NewRegistry(WithInitCleanupDisabled())
	m := NewMemoryEmitter()

	opts := []Option{WithEmitter(m)}
	_, err := reg.GetClient("test", "cleanup_disabled", opts...)
	require.NoError(t, err)

	key := fingerprint("cleanup_disabled", applyOptions(opts))
	v, ok := reg.inits.Load(key)
	require.True(t, ok, "expected inits entry to be present when cleanup disabled")
	assert.NotNil(t, v)
}

func TestFingerprint_Deterministic(t *testing.T) {
	cfg := applyOptions([]Option{WithAddress("statsd:8125"), WithTags(Tags{{"a", "1"}})})
	assert.Equal(t, fingerprint("mod", cfg), fingerprint("mod", cfg))
	assert.NotEqual(t, fingerprint("mod", cfg), fingerprint("other", cfg))
}

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(ResetClients)

	m := NewMemoryEmitter()
	a, err := GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)
	b, err := GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)
	assert.Same(t, a, b)

	ResetClients()
	c, err := GetClient("test", "mod", WithEmitter(m))
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}
