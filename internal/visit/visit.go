// Package visit decides, once per session start, what the host should say
// about the user's return: whether a new day began, how long they were away,
// and how their cognitive pressure compares with the last check-in.
package visit

import (
	"math"
	"time"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/daystate"
	"github.com/Iron-Ham/cogniload/internal/logging"
	"github.com/Iron-Ham/cogniload/internal/metrics"
	"github.com/Iron-Ham/cogniload/internal/store"
)

const day = 24 * time.Hour

// Diff thresholds, in load points.
const (
	SimilarBand   = 50
	LargeDiffBand = 100
)

// Result is the outcome of a session start.
type Result struct {
	IsNewDay                 bool   `json:"isNewDay"`
	DaysSinceLastVisit       int    `json:"daysSinceLastVisit"`
	ShouldShowReEntryMessage bool   `json:"shouldShowReEntryMessage"`
	ShouldShowLoadDiff       bool   `json:"shouldShowLoadDiff"`
	LoadDiffMessage          string `json:"loadDiffMessage"`
}

// Visit kinds, as counted by metrics.
const (
	KindFirst   = "first"
	KindSameDay = "same_day"
	KindNewDay  = "new_day"
)

// Differ computes visit results against the store.
type Differ struct {
	kv      store.KV
	tracker *daystate.Tracker
	clock   func() time.Time
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// New creates a Differ. tracker gates the once-per-day messages; a nil clock
// uses time.Now and a nil logger discards.
func New(kv store.KV, tracker *daystate.Tracker, clock func() time.Time, logger *logging.Logger) *Differ {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Differ{
		kv:      kv,
		tracker: tracker,
		clock:   clock,
		logger:  logger.WithComponent("visit"),
	}
}

// SetMetrics counts visits by kind.
func (d *Differ) SetMetrics(m *metrics.Metrics) {
	d.metrics = m
}

// OnVisit evaluates a session start and stamps the visit time. The stamp is
// written on every call, including the first ever visit, which otherwise
// yields a zero Result.
func (d *Differ) OnVisit() Result {
	now := d.clock()
	defer store.SetInt64(d.kv, store.KeyLastVisit, now.UnixMilli())

	lastMS := store.GetInt64(d.kv, store.KeyLastVisit, -1)
	if lastMS < 0 {
		d.metrics.RecordVisit(KindFirst)
		d.logger.Info("first visit")
		return Result{}
	}

	last := time.UnixMilli(lastMS).In(now.Location())
	res := Result{
		IsNewDay:           !daykey.Same(last, now),
		DaysSinceLastVisit: DaysBetween(last, now),
	}

	if !res.IsNewDay {
		d.metrics.RecordVisit(KindSameDay)
		return res
	}
	d.metrics.RecordVisit(KindNewDay)

	res.ShouldShowReEntryMessage = d.tracker.MarkShown(daystate.ReEntryShown)

	if d.tracker.MarkShown(daystate.LoadDiffShown) {
		delta := d.loadDelta()
		res.ShouldShowLoadDiff = true
		res.LoadDiffMessage = Classify(delta)
	}

	d.logger.Info("returning visit",
		"days_since", res.DaysSinceLastVisit,
		"reentry", res.ShouldShowReEntryMessage,
		"load_diff", res.ShouldShowLoadDiff)
	return res
}

// loadDelta compares the two bookmarked totals. Values are truncated to
// whole points before subtracting.
func (d *Differ) loadDelta() int {
	current := int(store.GetFloat(d.kv, store.KeyCurrentTotalLoad, 0))
	last := int(store.GetFloat(d.kv, store.KeyLastTotalLoad, 0))
	return current - last
}

// DaysBetween returns the whole 24-hour periods elapsed from last to now.
// A clock that moved backwards yields zero.
func DaysBetween(last, now time.Time) int {
	elapsed := now.Sub(last)
	if elapsed < 0 {
		return 0
	}
	return int(math.Floor(float64(elapsed) / float64(day)))
}

// Classify turns a load delta into the user-facing comparison.
func Classify(delta int) string {
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < SimilarBand:
		return "Your cognitive pressure feels similar to yesterday."
	case delta > LargeDiffBand:
		return "Your cognitive pressure is higher than yesterday."
	case delta > 0:
		return "Your cognitive pressure is slightly higher than yesterday."
	case delta < -LargeDiffBand:
		return "Today feels lighter than your last check-in."
	default:
		return "Today feels a bit lighter than yesterday."
	}
}
