// Package engine wires the load model, forecast, keyed store, day-boundary
// tracker and return-visit differ into the operations a host session uses.
//
// The store is the single owner of state: every call reads what it needs
// from it, so several engines (or processes) over the same medium agree.
package engine

import (
	"time"

	"github.com/Iron-Ham/cogniload/internal/backup"
	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/daystate"
	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/Iron-Ham/cogniload/internal/event"
	"github.com/Iron-Ham/cogniload/internal/forecast"
	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/Iron-Ham/cogniload/internal/logging"
	"github.com/Iron-Ham/cogniload/internal/metrics"
	"github.com/Iron-Ham/cogniload/internal/store"
	"github.com/Iron-Ham/cogniload/internal/task"
	"github.com/Iron-Ham/cogniload/internal/visit"
)

// Engine is a host session over a keyed store.
type Engine struct {
	kv      store.KV
	clock   func() time.Time
	tracker *daystate.Tracker
	differ  *visit.Differ

	threshold float64
	days      int

	bus     *event.Bus
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the engine's logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics instruments the engine and its components.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithBus publishes day rollovers on b.
func WithBus(b *event.Bus) Option {
	return func(e *Engine) { e.bus = b }
}

// WithOverloadThreshold sets the per-day load that triggers an insight.
func WithOverloadThreshold(threshold float64) Option {
	return func(e *Engine) { e.threshold = threshold }
}

// WithForecastDays sets the length of the week view.
func WithForecastDays(n int) Option {
	return func(e *Engine) { e.days = n }
}

// New creates an Engine over kv.
func New(kv store.KV, opts ...Option) *Engine {
	e := &Engine{
		kv:        kv,
		clock:     time.Now,
		threshold: forecast.DefaultOverloadThreshold,
		days:      forecast.DefaultDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NopLogger()
	}
	if e.bus == nil {
		if s, ok := kv.(*store.Store); ok {
			e.bus = s.Bus()
		}
	}

	e.tracker = daystate.New(kv, e.clock,
		daystate.WithBus(e.bus),
		daystate.WithLogger(e.logger),
		daystate.WithMetrics(e.metrics))
	e.differ = visit.New(kv, e.tracker, e.clock, e.logger)
	e.differ.SetMetrics(e.metrics)
	e.logger = e.logger.WithComponent("engine")
	return e
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// Tasks returns the stored task list. A missing or corrupt list is empty.
func (e *Engine) Tasks() []task.Task {
	var tasks []task.Task
	if !store.GetJSON(e.kv, store.KeyTasks, &tasks) || tasks == nil {
		return []task.Task{}
	}
	return tasks
}

// SaveTasks replaces the stored task list.
func (e *Engine) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := store.SetJSON(e.kv, store.KeyTasks, tasks); err != nil {
		return errors.Wrap(err, "encode tasks")
	}
	e.metrics.RecordScore(e.score(tasks).TotalLoad, len(tasks))
	return nil
}

// AddTask validates t, fills in its ID and creation time when missing, and
// appends it to the task list.
func (e *Engine) AddTask(t task.Task) (task.Task, error) {
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	if t.ID == "" {
		t.ID = task.NewID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = e.clock()
	}

	tasks := e.Tasks()
	if task.Find(tasks, t.ID) >= 0 {
		return task.Task{}, errors.NewValidationError("task id already exists").WithField("id").WithValue(t.ID)
	}
	if err := e.SaveTasks(append(tasks, t)); err != nil {
		return task.Task{}, err
	}
	e.logger.Info("task added", "task_id", t.ID, "category", t.Category)
	return t, nil
}

// RemoveTask deletes a task without counting it as completed.
func (e *Engine) RemoveTask(id string) error {
	rest, ok := task.Without(e.Tasks(), id)
	if !ok {
		return errors.NewNotFoundError("task", id).WithCause(errors.ErrTaskNotFound)
	}
	return e.SaveTasks(rest)
}

// CompleteTask removes a task and counts it toward today's completions. It
// returns the new count.
func (e *Engine) CompleteTask(id string) (int, error) {
	if err := e.RemoveTask(id); err != nil {
		return 0, err
	}
	n := e.tracker.Increment(daystate.CompletionsToday)
	e.metrics.RecordCompletion()
	e.logger.Info("task completed", "task_id", id, "completed_today", n)
	return n, nil
}

// CompletedToday returns today's completion count, resetting it after
// midnight.
func (e *Engine) CompletedToday() int {
	return e.tracker.GetOrReset(daystate.CompletionsToday)
}

// Background returns the background load offset.
func (e *Engine) Background() float64 {
	return store.GetFloat(e.kv, store.KeyBackgroundLoad, 0)
}

// SetBackground stores the background load offset.
func (e *Engine) SetBackground(v float64) {
	store.SetFloat(e.kv, store.KeyBackgroundLoad, v)
}

func (e *Engine) score(tasks []task.Task) load.Result {
	return load.Score(tasks, e.clock(), load.WithOffset(e.Background()))
}

// Snapshot is the dashboard view of the current state.
type Snapshot struct {
	TotalLoad      float64          `json:"totalLoad"`
	Breakdown      []load.Breakdown `json:"breakdown"`
	State          load.State       `json:"state"`
	StateMessage   string           `json:"stateMessage"`
	Background     float64          `json:"background"`
	Forecast       []forecast.Point `json:"forecast"`
	TodayLoad      int              `json:"todayLoad"`
	Insight        forecast.Insight `json:"insight"`
	CompletedToday int              `json:"completedToday"`
	Tasks          int              `json:"tasks"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// Snapshot scores the current tasks, forecasts them and bookmarks the total
// for the next return-visit diff.
func (e *Engine) Snapshot() Snapshot {
	now := e.clock()
	tasks := e.Tasks()
	res := e.score(tasks)
	points := forecast.Daily(tasks, now)
	state := load.StateOf(res.TotalLoad)

	visit.Bookmark(e.kv, res.TotalLoad)
	e.metrics.RecordScore(res.TotalLoad, len(tasks))

	return Snapshot{
		TotalLoad:      res.TotalLoad,
		Breakdown:      res.Breakdown,
		State:          state,
		StateMessage:   state.Message(),
		Background:     e.Background(),
		Forecast:       points,
		TodayLoad:      forecast.Lookup(points, daykey.Key(now)),
		Insight:        forecast.Advise(points, tasks, e.threshold, now),
		CompletedToday: e.CompletedToday(),
		Tasks:          len(tasks),
		GeneratedAt:    now,
	}
}

// Week returns the per-day view of the coming days starting today.
func (e *Engine) Week() []forecast.DaySummary {
	return forecast.Week(e.Tasks(), e.clock(), e.days)
}

// Visit evaluates a session start. The current total is bookmarked first so
// the diff compares today's load against the baseline of the previous day;
// once the diff has been shown the baseline moves to today.
func (e *Engine) Visit() visit.Result {
	tasks := e.Tasks()
	visit.Bookmark(e.kv, e.score(tasks).TotalLoad)

	res := e.differ.OnVisit()
	if res.ShouldShowLoadDiff {
		visit.Rotate(e.kv)
	}
	return res
}

// Bootstrap seeds the demo task list when no task list was ever stored. It
// reports whether seeding happened.
func (e *Engine) Bootstrap() bool {
	if _, ok := e.kv.Get(store.KeyTasks); ok {
		return false
	}
	if err := e.SaveTasks(task.DemoTasks()); err != nil {
		e.logger.Warn("seeding demo tasks failed", "error", err.Error())
		return false
	}
	e.logger.Info("seeded demo tasks")
	return true
}

// Export snapshots the durable keys.
func (e *Engine) Export() backup.Bundle {
	return backup.Export(e.kv, e.clock())
}

// Import restores a bundle and returns the number of keys written.
func (e *Engine) Import(b backup.Bundle) (int, error) {
	n, err := backup.Import(e.kv, b)
	if err != nil {
		return 0, err
	}
	e.logger.Info("backup imported", "keys", n, "export_date", b.ExportDate)
	return n, nil
}
