package forecast

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/task"
)

// DefaultOverloadThreshold is the per-day load above which a day is flagged.
const DefaultOverloadThreshold = 600

// Insight is the advice derived from a forecast.
type Insight struct {
	Overloaded bool   `json:"overloaded"`
	Date       string `json:"date,omitempty"`
	Load       int    `json:"load,omitempty"`
	TaskID     string `json:"taskId,omitempty"`
	Headline   string `json:"headline"`
	Suggestion string `json:"suggestion"`
}

// FirstOverload returns the earliest day whose load exceeds threshold.
func FirstOverload(points []Point, threshold float64) (Point, bool) {
	for _, p := range points {
		if float64(p.Load) > threshold {
			return p, true
		}
	}
	return Point{}, false
}

// Advise inspects a forecast and suggests moving a task that is due on the
// first overloaded day. Deadlines are compared in now's location.
func Advise(points []Point, tasks []task.Task, threshold float64, now time.Time) Insight {
	p, ok := FirstOverload(points, threshold)
	if !ok {
		return Insight{
			Headline:   "Balanced week ahead",
			Suggestion: "Your cognitive load is sustainable for the upcoming days.",
		}
	}

	in := Insight{
		Overloaded: true,
		Date:       p.Date,
		Load:       p.Load,
		Headline:   fmt.Sprintf("High load detected on %s", weekday(p.Date)),
		Suggestion: "Consider spreading tasks across the preceding days.",
	}

	for _, t := range tasks {
		if t.HasDeadline() && daykey.Key(t.Deadline.In(now.Location())) == p.Date {
			in.TaskID = t.ID
			in.Suggestion = fmt.Sprintf("Suggest moving '%s' to an earlier date to spread the load.", strings.TrimSpace(t.Title))
			break
		}
	}
	return in
}

func weekday(key string) string {
	t, err := daykey.Parse(key, time.UTC)
	if err != nil {
		return key
	}
	return t.Weekday().String()
}
