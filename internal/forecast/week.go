package forecast

import (
	"math"
	"time"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/Iron-Ham/cogniload/internal/task"
)

// DefaultDays is the length of the rolling window shown by Week.
const DefaultDays = 7

// DaySummary is one day of the rolling calendar view.
type DaySummary struct {
	Date  string      `json:"date"`
	Tasks []task.Task `json:"tasks"`
	Load  int         `json:"load"`
	State load.State  `json:"state"`
}

// Week groups tasks by deadline day over the n days starting with the day of
// now. Each day is scored live against its own midnight, so context switches
// between that day's tasks count and urgency applies to deadlines within the
// first 24 hours of the day.
func Week(tasks []task.Task, now time.Time, n int) []DaySummary {
	if n <= 0 {
		n = DefaultDays
	}

	byDay := make(map[string][]task.Task)
	for _, t := range tasks {
		if !t.HasDeadline() {
			continue
		}
		key := daykey.Key(t.Deadline.In(now.Location()))
		byDay[key] = append(byDay[key], t)
	}

	days := make([]DaySummary, 0, n)
	for _, key := range daykey.Range(now, n) {
		dayStart, err := daykey.Parse(key, now.Location())
		if err != nil {
			continue
		}
		dayTasks := byDay[key]

		total := math.Round(load.Score(dayTasks, dayStart).TotalLoad)
		days = append(days, DaySummary{
			Date:  key,
			Tasks: dayTasks,
			Load:  int(total),
			State: load.StateOf(total),
		})
	}
	return days
}
