// Package load implements the cognitive load model.
//
// A task's load is its duration times its effort, plus a fixed penalty when
// its category differs from the task scored just before it, plus an urgency
// surcharge of 20% of the base load when its deadline is less than a day away.
// Scores depend on the order of the sequence passed in.
package load

import (
	"time"

	"github.com/Iron-Ham/cogniload/internal/task"
)

const (
	// ContextSwitchPenalty is added when a task's category differs from the
	// previous task in the sequence.
	ContextSwitchPenalty = 15.0

	// UrgencySurcharge is the fraction of base load added for tasks due
	// within UrgencyWindow (a 1.2x multiplier, reported as the extra 0.2 only).
	UrgencySurcharge = 0.2

	// UrgencyWindow is how close a deadline must be to count as urgent.
	UrgencyWindow = 24 * time.Hour
)

// Breakdown is the per-task component of a score.
type Breakdown struct {
	TaskID               string  `json:"taskId"`
	BaseLoad             float64 `json:"baseLoad"`
	ContextSwitchPenalty float64 `json:"contextSwitchPenalty"`
	UrgencyPenalty       float64 `json:"urgencyPenalty"`
	TotalTaskLoad        float64 `json:"totalTaskLoad"`
}

// Result is the outcome of scoring a task sequence.
type Result struct {
	TotalLoad float64     `json:"totalLoad"`
	Breakdown []Breakdown `json:"breakdown"`
}

type options struct {
	offset          float64
	simulateUrgency bool
}

// Option configures Score.
type Option func(*options)

// WithOffset adds a constant to the total (the background load). Negative
// offsets are allowed and not clamped.
func WithOffset(offset float64) Option {
	return func(o *options) { o.offset = offset }
}

// WithSimulatedUrgency treats every task that has a deadline as urgent,
// regardless of the reference instant.
func WithSimulatedUrgency() Option {
	return func(o *options) { o.simulateUrgency = true }
}

// Score computes the load of tasks in the given order relative to ref.
// Invalid task fields are not rejected; they produce meaningless numbers.
func Score(tasks []task.Task, ref time.Time, opts ...Option) Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Breakdown: make([]Breakdown, 0, len(tasks))}
	var total float64

	for i, t := range tasks {
		b := Breakdown{
			TaskID:   t.ID,
			BaseLoad: float64(t.EstimatedDuration * t.MentalEffort),
		}

		if i > 0 && tasks[i-1].Category != t.Category {
			b.ContextSwitchPenalty = ContextSwitchPenalty
		}

		if isUrgent(t, ref, o.simulateUrgency) {
			b.UrgencyPenalty = b.BaseLoad * UrgencySurcharge
		}

		b.TotalTaskLoad = b.BaseLoad + b.ContextSwitchPenalty + b.UrgencyPenalty
		total += b.TotalTaskLoad
		res.Breakdown = append(res.Breakdown, b)
	}

	res.TotalLoad = total + o.offset
	return res
}

// ScoreOne scores a single task in isolation with simulated urgency. This is
// the per-task load the daily forecast distributes.
func ScoreOne(t task.Task, ref time.Time) float64 {
	return Score([]task.Task{t}, ref, WithSimulatedUrgency()).TotalLoad
}

func isUrgent(t task.Task, ref time.Time, simulate bool) bool {
	if t.Deadline == nil {
		return false
	}
	if simulate {
		return true
	}
	until := t.Deadline.Sub(ref)
	return until > 0 && until <= UrgencyWindow
}
