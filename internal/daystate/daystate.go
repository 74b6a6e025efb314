// Package daystate tracks facts that reset at local midnight: the number of
// tasks completed today and the once-per-day display gates of the
// return-visit differ.
//
// Every fact is a pair of store keys: a value and the day key it was last
// written on. Reading a fact whose day key is not today resets it to zero
// and stamps today, so counters never leak across a calendar boundary no
// matter how long the host was away.
package daystate

import (
	"time"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/event"
	"github.com/Iron-Ham/cogniload/internal/logging"
	"github.com/Iron-Ham/cogniload/internal/metrics"
	"github.com/Iron-Ham/cogniload/internal/store"
)

// Fact names a day-scoped value and the keys it lives under. ValueKey is
// empty for flag facts, whose only state is the day they were last set.
type Fact struct {
	Name     string
	ValueKey string
	DateKey  string
}

// IsFlag reports whether the fact is a once-per-day gate.
func (f Fact) IsFlag() bool { return f.ValueKey == "" }

var (
	CompletionsToday = Fact{
		Name:     "completions",
		ValueKey: store.KeyTasksCompletedToday,
		DateKey:  store.KeyLastCompletionDate,
	}
	ReEntryShown = Fact{
		Name:    "reentry",
		DateKey: store.KeyLastReEntryShownDate,
	}
	LoadDiffShown = Fact{
		Name:    "load_diff",
		DateKey: store.KeyLastLoadDiffShownDate,
	}
)

// Tracker reads and advances day-scoped facts.
type Tracker struct {
	kv      store.KV
	clock   func() time.Time
	bus     *event.Bus
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBus publishes a DayRolloverEvent whenever a fact resets.
func WithBus(b *event.Bus) Option {
	return func(t *Tracker) { t.bus = b }
}

// WithLogger sets the tracker's logger.
func WithLogger(l *logging.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithMetrics counts rollovers.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

// New creates a Tracker over kv. A nil clock uses time.Now.
func New(kv store.KV, clock func() time.Time, opts ...Option) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	t := &Tracker{kv: kv, clock: clock}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logging.NopLogger()
	}
	t.logger = t.logger.WithComponent("daystate")
	return t
}

// Today returns the current day key.
func (t *Tracker) Today() string {
	return daykey.Key(t.clock())
}

// GetOrReset returns the fact's value for today. If it was last written on
// another day (or never), it is reset to zero first.
func (t *Tracker) GetOrReset(f Fact) int {
	today := t.Today()
	stamped, ok := t.kv.Get(f.DateKey)
	if ok && stamped == today {
		if f.IsFlag() {
			return 1
		}
		return store.GetInt(t.kv, f.ValueKey, 0)
	}

	if f.IsFlag() {
		// A flag resets by simply not matching today; nothing to write.
		return 0
	}

	t.kv.Set(f.DateKey, today)
	store.SetInt(t.kv, f.ValueKey, 0)
	t.rolledOver(f, stamped, today)
	return 0
}

// Increment adds one to a counter fact and returns the new value. Flags
// have no counter; for them it only reports whether the flag is set today.
func (t *Tracker) Increment(f Fact) int {
	if f.IsFlag() {
		return t.GetOrReset(f)
	}
	next := t.GetOrReset(f) + 1
	store.SetInt(t.kv, f.ValueKey, next)
	t.kv.Set(f.DateKey, t.Today())
	return next
}

// ShownToday reports whether a flag fact was set today.
func (t *Tracker) ShownToday(f Fact) bool {
	stamped, ok := t.kv.Get(f.DateKey)
	return ok && stamped == t.Today()
}

// MarkShown sets a flag fact for today. It returns true only for the first
// call of the day.
func (t *Tracker) MarkShown(f Fact) bool {
	today := t.Today()
	stamped, ok := t.kv.Get(f.DateKey)
	if ok && stamped == today {
		return false
	}
	t.kv.Set(f.DateKey, today)
	t.rolledOver(f, stamped, today)
	return true
}

func (t *Tracker) rolledOver(f Fact, previous, today string) {
	t.logger.Debug("day fact reset", "fact", f.Name, "previous", previous, "today", today)
	t.metrics.RecordRollover(f.Name)
	if t.bus != nil {
		t.bus.Publish(event.NewDayRolloverEvent(f.Name, previous, today))
	}
}
