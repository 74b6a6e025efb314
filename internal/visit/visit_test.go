package visit

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Iron-Ham/cogniload/internal/daystate"
	"github.com/Iron-Ham/cogniload/internal/metrics"
	"github.com/Iron-Ham/cogniload/internal/store"
)

func at(d, h, m int) time.Time {
	return time.Date(2026, time.March, d, h, m, 0, 0, time.Local)
}

func newDiffer(kv store.KV, now *time.Time) *Differ {
	clock := func() time.Time { return *now }
	return New(kv, daystate.New(kv, clock), clock, nil)
}

func TestOnVisit_FirstVisit(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(10, 9, 0)
	d := newDiffer(kv, &now)

	if got := d.OnVisit(); got != (Result{}) {
		t.Errorf("OnVisit() = %+v, want zero result", got)
	}
	if got := store.GetInt64(kv, store.KeyLastVisit, 0); got != now.UnixMilli() {
		t.Errorf("last visit = %d, want %d", got, now.UnixMilli())
	}
}

func TestOnVisit_SameDay(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(10, 9, 0)
	d := newDiffer(kv, &now)
	d.OnVisit()

	now = at(10, 17, 30)
	got := d.OnVisit()
	if got.IsNewDay || got.DaysSinceLastVisit != 0 || got.ShouldShowReEntryMessage || got.ShouldShowLoadDiff {
		t.Errorf("OnVisit() = %+v, want quiet same-day result", got)
	}
	if store.GetInt64(kv, store.KeyLastVisit, 0) != now.UnixMilli() {
		t.Error("last visit should be stamped on every visit")
	}
}

func TestOnVisit_AcrossMidnight(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(10, 23, 50)
	d := newDiffer(kv, &now)
	d.OnVisit()

	now = at(11, 0, 10)
	got := d.OnVisit()
	if !got.IsNewDay {
		t.Error("crossing midnight should be a new day")
	}
	if got.DaysSinceLastVisit != 0 {
		t.Errorf("DaysSinceLastVisit = %d, want 0 for 20 minutes away", got.DaysSinceLastVisit)
	}
	if !got.ShouldShowReEntryMessage || !got.ShouldShowLoadDiff {
		t.Errorf("first new-day visit should open both gates: %+v", got)
	}
}

func TestOnVisit_GatesOncePerDay(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(8, 12, 0)
	d := newDiffer(kv, &now)
	d.OnVisit()

	now = at(11, 8, 0)
	first := d.OnVisit()
	if first.DaysSinceLastVisit != 2 {
		t.Errorf("DaysSinceLastVisit = %d, want 2", first.DaysSinceLastVisit)
	}
	if !first.ShouldShowReEntryMessage || !first.ShouldShowLoadDiff {
		t.Fatalf("first visit of the day should show messages: %+v", first)
	}

	// Visits later the same day no longer see a new day at all.
	now = at(11, 9, 0)
	if second := d.OnVisit(); second.IsNewDay || second.ShouldShowReEntryMessage {
		t.Errorf("second visit = %+v", second)
	}
}

func TestOnVisit_GateAlreadyConsumed(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(10, 12, 0)
	d := newDiffer(kv, &now)
	d.OnVisit()

	// Another session already showed the messages today but left an old
	// visit stamp behind.
	now = at(11, 8, 0)
	kv.Set(store.KeyLastReEntryShownDate, "2026-03-11")
	kv.Set(store.KeyLastLoadDiffShownDate, "2026-03-11")

	got := d.OnVisit()
	if !got.IsNewDay {
		t.Error("IsNewDay should still be true")
	}
	if got.ShouldShowReEntryMessage || got.ShouldShowLoadDiff || got.LoadDiffMessage != "" {
		t.Errorf("consumed gates should stay shut: %+v", got)
	}
}

func TestOnVisit_LoadDiffMessage(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(10, 12, 0)
	d := newDiffer(kv, &now)
	d.OnVisit()

	store.SetFloat(kv, store.KeyLastTotalLoad, 200)
	store.SetFloat(kv, store.KeyCurrentTotalLoad, 330.9)

	now = at(11, 12, 0)
	got := d.OnVisit()
	if got.LoadDiffMessage != "Your cognitive pressure is higher than yesterday." {
		t.Errorf("LoadDiffMessage = %q", got.LoadDiffMessage)
	}
}

func TestOnVisit_ClockSkew(t *testing.T) {
	kv := store.NewMemoryStore()
	now := at(12, 12, 0)
	d := newDiffer(kv, &now)
	d.OnVisit()

	now = at(10, 12, 0)
	got := d.OnVisit()
	if got.DaysSinceLastVisit != 0 {
		t.Errorf("DaysSinceLastVisit = %d, want 0 when the clock moved back", got.DaysSinceLastVisit)
	}
}

func TestOnVisit_Metrics(t *testing.T) {
	kv := store.NewMemoryStore()
	_, m := metrics.NewRegistry()
	now := at(10, 12, 0)
	d := newDiffer(kv, &now)
	d.SetMetrics(m)

	d.OnVisit()
	d.OnVisit()
	now = at(11, 12, 0)
	d.OnVisit()

	for kind, want := range map[string]float64{KindFirst: 1, KindSameDay: 1, KindNewDay: 1} {
		if got := testutil.ToFloat64(m.Visits.WithLabelValues(kind)); got != want {
			t.Errorf("visits{%s} = %v, want %v", kind, got, want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		delta int
		want  string
	}{
		{0, "Your cognitive pressure feels similar to yesterday."},
		{49, "Your cognitive pressure feels similar to yesterday."},
		{-49, "Your cognitive pressure feels similar to yesterday."},
		{50, "Your cognitive pressure is slightly higher than yesterday."},
		{100, "Your cognitive pressure is slightly higher than yesterday."},
		{101, "Your cognitive pressure is higher than yesterday."},
		{-50, "Today feels a bit lighter than yesterday."},
		{-100, "Today feels a bit lighter than yesterday."},
		{-101, "Today feels lighter than your last check-in."},
	}

	for _, tt := range tests {
		if got := Classify(tt.delta); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name      string
		last, now time.Time
		want      int
	}{
		{"same instant", at(10, 8, 0), at(10, 8, 0), 0},
		{"23 hours", at(10, 8, 0), at(11, 7, 0), 0},
		{"exactly a day", at(10, 8, 0), at(11, 8, 0), 1},
		{"two and a half days", at(10, 8, 0), at(12, 20, 0), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.last, tt.now); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBookmarkAndRotate(t *testing.T) {
	kv := store.NewMemoryStore()

	Bookmark(kv, 120)
	if v, _ := kv.Get(store.KeyLastTotalLoad); v != "120" {
		t.Errorf("first bookmark should seed the baseline, got %q", v)
	}

	Bookmark(kv, 260.5)
	if v, _ := kv.Get(store.KeyCurrentTotalLoad); v != "260.5" {
		t.Errorf("current = %q, want 260.5", v)
	}
	if v, _ := kv.Get(store.KeyLastTotalLoad); v != "120" {
		t.Errorf("baseline should not move on later bookmarks, got %q", v)
	}

	Rotate(kv)
	if v, _ := kv.Get(store.KeyLastTotalLoad); v != "260.5" {
		t.Errorf("Rotate() baseline = %q, want 260.5", v)
	}
}
