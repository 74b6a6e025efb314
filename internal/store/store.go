package store

import (
	"sort"
	"sync"

	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/Iron-Ham/cogniload/internal/event"
	"github.com/Iron-Ham/cogniload/internal/logging"
	"github.com/Iron-Ham/cogniload/internal/metrics"
)

// KV is the keyed store contract every stateful component depends on.
//
// Set is synchronous: a Get after Set returns the new value, and every
// subscriber of the key has been notified before Set returns.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Subscribe(key string, fn func(key, value string)) (unsubscribe func())
}

// Medium is the persisted backing of a Store.
type Medium interface {
	// Name identifies the backend in logs and errors ("memory", "file", "sqlite").
	Name() string
	// LoadAll returns every persisted key.
	LoadAll() (map[string]string, error)
	// Save persists one key.
	Save(key, value string) error
	Close() error
}

// decodeReporter is implemented by stores that want to hear about values the
// typed helpers could not decode.
type decodeReporter interface {
	ReportDecodeFailure(key string, err error)
}

// Store is a KV over a Medium. Values are cached in memory after the initial
// load; the medium is written through on every Set. Medium failures never
// reach callers: reads fall back to what is cached (or to the caller's
// default), writes stay visible in-process and are logged.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	medium Medium

	bus     *event.Bus
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fallbacks and medium errors.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics instruments the store.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithBus shares an existing event bus, so other components can observe
// store events alongside their own.
func WithBus(b *event.Bus) Option {
	return func(s *Store) { s.bus = b }
}

// New creates a Store and loads the medium's current contents. A medium that
// cannot be read leaves the store empty; every read then yields its default.
func New(medium Medium, opts ...Option) *Store {
	s := &Store{
		values: make(map[string]string),
		medium: medium,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NopLogger()
	}
	s.logger = s.logger.WithComponent("store").With("backend", medium.Name())
	if s.bus == nil {
		s.bus = event.NewBus(s.logger)
	}
	if ls, ok := medium.(interface{ SetLogger(*logging.Logger) }); ok {
		ls.SetLogger(s.logger)
	}

	loaded, err := medium.LoadAll()
	if err != nil {
		s.logger.Warn("store medium unavailable, starting empty",
			"error", errors.NewStoreError("load", "", err).WithBackend(medium.Name()).Error())
		s.metrics.RecordFallback("unavailable")
		return s
	}
	for k, v := range loaded {
		s.values[k] = v
	}
	s.logger.Debug("store loaded", "keys", len(loaded))
	return s
}

// NewMemoryStore returns a Store over a fresh in-memory medium.
func NewMemoryStore(opts ...Option) *Store {
	return New(NewMemory(), opts...)
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()

	if ok {
		s.metrics.RecordRead("hit")
	} else {
		s.metrics.RecordRead("miss")
	}
	return v, ok
}

// Set stores value under key, writes it through to the medium and notifies
// subscribers of key. A medium failure is logged and otherwise ignored.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	s.values[key] = value
	err := s.medium.Save(key, value)
	s.mu.Unlock()

	s.metrics.RecordWrite(err == nil)
	if err != nil {
		serr := errors.NewStoreError("save", key, err).WithBackend(s.medium.Name())
		if errors.Is(err, errors.ErrStoreClosed) {
			serr = serr.WithRetryable(false)
		}
		s.logger.Warn("store write failed, keeping in-process value",
			"key", key,
			"retryable", errors.IsRetryable(serr),
			"error", serr.Error())
	}

	s.metrics.RecordBroadcast()
	s.bus.Publish(event.NewKeyChangedEvent(key, value))
}

// Subscribe registers fn for writes to key. The returned function removes
// the subscription and is safe to call more than once.
func (s *Store) Subscribe(key string, fn func(key, value string)) func() {
	id := s.bus.Subscribe(event.KeyTopic(key), func(e event.Event) {
		if kc, ok := e.(event.KeyChangedEvent); ok {
			fn(kc.Key, kc.Value)
		}
	})

	var once sync.Once
	return func() {
		once.Do(func() { s.bus.Unsubscribe(id) })
	}
}

// Bus returns the event bus the store publishes on.
func (s *Store) Bus() *event.Bus {
	return s.bus
}

// Keys returns every key currently held, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reload re-reads the medium and publishes every key whose value differs from
// the cached one. It is how writes from another process become visible.
func (s *Store) Reload() error {
	loaded, err := s.medium.LoadAll()
	if err != nil {
		s.metrics.RecordFallback("unavailable")
		return errors.NewStoreError("reload", "", err).WithBackend(s.medium.Name())
	}

	type change struct{ key, value string }
	var changed []change

	s.mu.Lock()
	for k, v := range loaded {
		if old, ok := s.values[k]; !ok || old != v {
			s.values[k] = v
			changed = append(changed, change{k, v})
		}
	}
	s.mu.Unlock()

	sort.Slice(changed, func(i, j int) bool { return changed[i].key < changed[j].key })
	for _, c := range changed {
		s.logger.Debug("key changed externally", "key", c.key)
		s.metrics.RecordBroadcast()
		s.bus.Publish(event.NewKeyReloadedEvent(c.key, c.value))
	}
	return nil
}

// ReportDecodeFailure logs and counts a value that could not be decoded.
func (s *Store) ReportDecodeFailure(key string, err error) {
	s.metrics.RecordFallback("decode")
	s.logger.Warn("stored value could not be decoded, using default",
		"key", key,
		"error", errors.NewStoreError("decode", key, errors.Join(errors.ErrDecode, err)).WithBackend(s.medium.Name()).Error())
}

// Close releases the medium.
func (s *Store) Close() error {
	return s.medium.Close()
}
