package tagstats

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry is a process-wide cache of Clients keyed by a configuration
// fingerprint. It is concurrency-safe: concurrent first accesses for the
// same fingerprint are de-duplicated so exactly one Client is retained
// and returned to all racing callers. Entries live for the lifetime of
// the registry; nothing is evicted. Growth is bounded in practice by the
// number of distinct (module, options) pairs a process uses.
type Registry struct {
	cfg    *registryConfig
	logger *zap.Logger

	clients sync.Map // map[string]*Client
	// per-key init mutexes: protect concurrent initialization for the same key
	inits sync.Map // map[string]*sync.Mutex
}

type registryConfig struct {
	// when true, keep per-key mutex entries in `inits` after initialization
	// instead of removing them for GC. Default: false.
	doNotCleanupInits bool
	logger            *zap.Logger
}

// RegistryOption configures a Registry constructed by NewRegistry.
type RegistryOption func(*registryConfig)

// WithInitCleanupDisabled controls whether per-key init mutex entries are
// removed from the registry's internal `inits` map after initialization.
// Init cleanup is enabled by default; this option disables it.
func WithInitCleanupDisabled() RegistryOption {
	return func(cfg *registryConfig) { cfg.doNotCleanupInits = true }
}

// WithRegistryLogger sets the logger used for client construction events.
// Default is a no-op logger.
func WithRegistryLogger(l *zap.Logger) RegistryOption {
	return func(cfg *registryConfig) { cfg.logger = l }
}

// NewRegistry constructs a new, empty Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := &registryConfig{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	l := cfg.logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Registry{cfg: cfg, logger: l}
}

// keyMu returns a per-key mutex for the given key, creating one if necessary.
// The returned mutex is owned by the registry and should be locked/unlocked
// by callers.
func (r *Registry) keyMu(key string) *sync.Mutex {
	m, _ := r.inits.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}

// GetClient returns the shared Client for (module, options), constructing
// it on first access. service names the emitting application and is folded
// into the client's tag set, not the cache key: two services asking for the
// same (module, options) share one client whose service tag is the first
// caller's. Construction errors from the underlying emitter propagate
// unchanged and nothing is cached for that key.
//
// Callers must not assume a fresh instance: scoped tag mutations on the
// returned client are visible to every holder of the same cached instance.
func (r *Registry) GetClient(service, module string, opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)
	key := fingerprint(module, cfg)

	// fast read path using sync.Map loads (safe without a global lock)
	if v, ok := r.clients.Load(key); ok {
		return v.(*Client), nil
	}

	// acquire per-key mutex to deduplicate concurrent initializations
	km := r.keyMu(key)
	km.Lock()
	defer km.Unlock()

	// re-check after acquiring per-key mutex
	if v, ok := r.clients.Load(key); ok {
		return v.(*Client), nil
	}

	emitter := cfg.emitter
	if emitter == nil {
		var err error
		emitter, err = NewStatsdEmitter(cfg)
		if err != nil {
			// failed constructions are not cached; the init mutex entry is
			// kept so retries for this key stay serialized
			return nil, err
		}
	}

	tags := cfg.Tags.merged(Tags{{"module", module}, {"service", service}})
	client := NewClient(emitter, tags)
	r.clients.Store(key, client)
	r.logger.Debug("constructed statsd client",
		zap.String("service", service),
		zap.String("module", module),
		zap.String("fingerprint", key),
	)

	// optional cleanup: remove the per-key mutex from the inits map to allow
	// GC of mutexes. It's safe to delete while holding the mutex; existing
	// goroutines that already hold the pointer will continue to use it, and
	// new callers will get a new mutex.
	if !r.cfg.doNotCleanupInits {
		r.inits.Delete(key)
	}
	return client, nil
}

// Reset drops every cached client and init mutex. It exists for tests and
// teardown; production code has no reason to call it. Clients handed out
// before the reset keep working against their emitters.
func (r *Registry) Reset() {
	r.clients.Range(func(k, _ interface{}) bool {
		r.clients.Delete(k)
		return true
	})
	r.inits.Range(func(k, _ interface{}) bool {
		r.inits.Delete(k)
		return true
	})
}

// fingerprint derives the cache key: a SHA-256 hex digest over a
// deterministic JSON encoding of the module name and the canonical
// transport options. Equal logical inputs always serialize identically
// (struct field order is fixed and Tags preserves insertion order), so
// distinct configurations never collide.
func fingerprint(module string, cfg Config) string {
	canonical := struct {
		Module        string
		Address       string
		MetricPrefix  string
		FlushInterval time.Duration
		MaxPacketSize int
		Tags          Tags
	}{module, cfg.Address, cfg.MetricPrefix, cfg.FlushInterval, cfg.MaxPacketSize, cfg.Tags}

	data, err := json.Marshal(canonical)
	if err != nil {
		// cannot happen: the canonical struct contains only marshalable types
		panic("tagstats: fingerprint encoding failed: " + err.Error())
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// defaultRegistry backs the package-level convenience API, mirroring the
// one-cache-per-process usage this library is built for.
var defaultRegistry = NewRegistry()

// GetClient returns a shared Client from the package-level registry.
// See Registry.GetClient.
func GetClient(service, module string, opts ...Option) (*Client, error) {
	return defaultRegistry.GetClient(service, module, opts...)
}

// ResetClients clears the package-level registry. Test use only.
func ResetClients() {
	defaultRegistry.Reset()
}
