// Package internal contains integration tests that exercise the store,
// day-state and engine packages together over a shared file medium.
package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/cogniload/internal/engine"
	"github.com/Iron-Ham/cogniload/internal/event"
	"github.com/Iron-Ham/cogniload/internal/store"
	"github.com/Iron-Ham/cogniload/internal/task"
	"github.com/Iron-Ham/cogniload/internal/testutil"
)

func openFileStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	medium, err := store.OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	s := store.New(medium)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestTwoProcessesShareTasks simulates two CLI invocations writing the same
// data directory: a write from one becomes visible to the other on reload and
// is broadcast to its subscribers.
func TestTwoProcessesShareTasks(t *testing.T) {
	dir := t.TempDir()
	clock := testutil.NewClock(testutil.LocalDate(2026, time.February, 2, 9))

	first := openFileStore(t, dir)
	second := openFileStore(t, dir)

	var mu sync.Mutex
	var seen []string
	unsubscribe := second.Subscribe(store.KeyTasks, func(key, value string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, key)
	})
	defer unsubscribe()

	writer := engine.New(first, engine.WithClock(clock.Now))
	if _, err := writer.AddTask(task.Task{Title: "Graphs", EstimatedDuration: 60, MentalEffort: 4, Category: "coding"}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	reader := engine.New(second, engine.WithClock(clock.Now))
	if got := len(reader.Tasks()); got != 0 {
		t.Fatalf("reader saw %d tasks before reload, want 0", got)
	}

	if err := second.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := len(reader.Tasks()); got != 1 {
		t.Errorf("reader saw %d tasks after reload, want 1", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != store.KeyTasks {
		t.Errorf("subscriber saw %v, want [%s]", seen, store.KeyTasks)
	}
}

// TestDayRolloverAcrossSessions checks that completions, the re-entry message
// and the load diff all follow the calendar day when sessions are reopened.
func TestDayRolloverAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	clock := testutil.NewClock(testutil.LocalDate(2026, time.February, 2, 9))

	open := func() (*engine.Engine, *store.Store) {
		s := openFileStore(t, dir)
		return engine.New(s, engine.WithClock(clock.Now)), s
	}

	// Day one: first visit, two tasks, one completed.
	e, _ := open()
	if res := e.Visit(); res.IsNewDay {
		t.Fatalf("first visit = %+v, want not a new day", res)
	}
	a, _ := e.AddTask(task.Task{Title: "Notes", EstimatedDuration: 30, MentalEffort: 2, Category: "reading"})
	if _, err := e.AddTask(task.Task{Title: "Quiz", EstimatedDuration: 90, MentalEffort: 4, Category: "revision"}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	if n, err := e.CompleteTask(a.ID); err != nil || n != 1 {
		t.Fatalf("CompleteTask() = %d, %v", n, err)
	}
	if snap := e.Snapshot(); snap.TotalLoad != 360 {
		t.Fatalf("day one TotalLoad = %v, want 360", snap.TotalLoad)
	}

	// Day three: a fresh process sees a new day and a heavier list.
	clock.Advance(48 * time.Hour)
	e, s := open()

	var rollovers []string
	s.Bus().Subscribe(event.DayRolloverTopic, func(ev event.Event) {
		rollovers = append(rollovers, ev.(event.DayRolloverEvent).Fact)
	})

	if _, err := e.AddTask(task.Task{Title: "Demo prep", EstimatedDuration: 120, MentalEffort: 5, Category: "coding"}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}

	res := e.Visit()
	if !res.IsNewDay || res.DaysSinceLastVisit != 2 {
		t.Errorf("Visit() = %+v, want new day after 2 days", res)
	}
	if !res.ShouldShowReEntryMessage || !res.ShouldShowLoadDiff {
		t.Errorf("Visit() = %+v, want both messages", res)
	}
	if got := e.CompletedToday(); got != 0 {
		t.Errorf("CompletedToday() = %d, want 0 after rollover", got)
	}
	if len(rollovers) == 0 {
		t.Error("expected a day rollover event")
	}

	// Same day again: nothing is shown twice.
	clock.Advance(time.Hour)
	e, _ = open()
	res = e.Visit()
	if res.ShouldShowReEntryMessage || res.ShouldShowLoadDiff {
		t.Errorf("second visit of the day = %+v, want no messages", res)
	}
}
