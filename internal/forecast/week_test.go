package forecast

import (
	"testing"
	"time"

	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/Iron-Ham/cogniload/internal/task"
)

func TestWeek(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", EstimatedDuration: 60, MentalEffort: 2, Category: "coding", Deadline: ptr(ts("2026-02-03T09:00:00Z"))},
		{ID: "t2", EstimatedDuration: 30, MentalEffort: 1, Category: "reading", Deadline: ptr(ts("2026-02-03T20:00:00Z"))},
		{ID: "t3", EstimatedDuration: 45, MentalEffort: 2, Category: "admin", Deadline: ptr(ts("2026-02-05T12:00:00Z"))},
		{ID: "t4", EstimatedDuration: 45, MentalEffort: 2, Category: "admin", Deadline: ptr(ts("2026-02-20T12:00:00Z"))},
		{ID: "t5", EstimatedDuration: 45, MentalEffort: 2, Category: "admin", CreatedAt: now},
	}

	days := Week(tasks, now, 7)

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Date != "2026-02-03" || days[6].Date != "2026-02-09" {
		t.Errorf("window = %s..%s, want 2026-02-03..2026-02-09", days[0].Date, days[6].Date)
	}

	// t1: 120 + 24 urgency; t2: 30 + 6 urgency + 15 switch
	if days[0].Load != 195 || len(days[0].Tasks) != 2 {
		t.Errorf("day 0 = load %d with %d tasks, want 195 with 2", days[0].Load, len(days[0].Tasks))
	}
	if days[0].State != load.StateSteady {
		t.Errorf("day 0 state = %q, want %q", days[0].State, load.StateSteady)
	}
	if days[2].Load != 108 {
		t.Errorf("day 2 load = %d, want 108", days[2].Load)
	}
	for _, i := range []int{1, 3, 4, 5, 6} {
		if days[i].Load != 0 || len(days[i].Tasks) != 0 {
			t.Errorf("day %d should be empty, got %+v", i, days[i])
		}
	}
}

func TestWeek_DefaultLength(t *testing.T) {
	if got := len(Week(nil, now, 0)); got != DefaultDays {
		t.Errorf("Week(n=0) len = %d, want %d", got, DefaultDays)
	}
}

func TestWeek_GroupsInHostLocation(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	local := time.Date(2026, 2, 3, 8, 0, 0, 0, ny)
	tasks := []task.Task{
		// 02:00 UTC on the 4th is still the 3rd in New York.
		{ID: "late", EstimatedDuration: 10, MentalEffort: 1, Category: "x", Deadline: ptr(ts("2026-02-04T02:00:00Z"))},
	}

	days := Week(tasks, local, 2)
	if len(days[0].Tasks) != 1 {
		t.Errorf("task should land on %s in EST, got %+v", days[0].Date, days)
	}
}
