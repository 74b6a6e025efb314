// Package task defines the work item scored by the load model and its
// persisted JSON form.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/errors"
)

// Effort bounds.
const (
	MinEffort = 1
	MaxEffort = 5
)

// Task is a unit of work supplied by the host. The engine treats a slice of
// tasks as an immutable ordered sequence.
type Task struct {
	ID                string
	Title             string
	EstimatedDuration int // minutes
	MentalEffort      int // 1..5
	Category          string
	Deadline          *time.Time
	CreatedAt         time.Time
}

// HasDeadline reports whether the task carries a deadline.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// Anchor is the instant the task's load is attributed to in forecasts:
// the deadline when present, otherwise the creation time.
func (t Task) Anchor() time.Time {
	if t.Deadline != nil {
		return *t.Deadline
	}
	return t.CreatedAt
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate checks the fields the load model relies on. The engine never calls
// it; hosts validate before submitting tasks.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.NewValidationError("title cannot be empty").WithField("title")
	}
	if t.EstimatedDuration <= 0 {
		return errors.NewValidationError("duration must be a positive number of minutes").
			WithField("estimatedDuration").WithValue(t.EstimatedDuration)
	}
	if t.MentalEffort < MinEffort || t.MentalEffort > MaxEffort {
		return errors.NewValidationError(fmt.Sprintf("effort must be between %d and %d", MinEffort, MaxEffort)).
			WithField("mentalEffort").WithValue(t.MentalEffort)
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.NewValidationError("category cannot be empty").WithField("category")
	}
	return nil
}

// wireTask is the persisted shape. Timestamps are strings so that both
// RFC 3339 instants and bare dates survive a round trip through other tools.
type wireTask struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	EstimatedDuration int    `json:"estimatedDuration"`
	MentalEffort      int    `json:"mentalEffort"`
	Category          string `json:"category"`
	Deadline          string `json:"deadline,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

// MarshalJSON encodes the task with RFC 3339 timestamps.
func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{
		ID:                t.ID,
		Title:             t.Title,
		EstimatedDuration: t.EstimatedDuration,
		MentalEffort:      t.MentalEffort,
		Category:          t.Category,
	}
	if !t.CreatedAt.IsZero() {
		w.CreatedAt = t.CreatedAt.Format(time.RFC3339)
	}
	if t.Deadline != nil {
		w.Deadline = t.Deadline.Format(time.RFC3339)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a task. Timestamps may be RFC 3339 or YYYY-MM-DD;
// bare dates are local midnight.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	created, err := ParseTime(w.CreatedAt)
	if err != nil {
		return fmt.Errorf("task %s createdAt: %w", w.ID, err)
	}

	*t = Task{
		ID:                w.ID,
		Title:             w.Title,
		EstimatedDuration: w.EstimatedDuration,
		MentalEffort:      w.MentalEffort,
		Category:          w.Category,
		CreatedAt:         created,
	}

	if w.Deadline != "" {
		d, err := ParseTime(w.Deadline)
		if err != nil {
			return fmt.Errorf("task %s deadline: %w", w.ID, err)
		}
		t.Deadline = &d
	}
	return nil
}

// ParseTime accepts RFC 3339 (with or without fractional seconds) or a bare
// YYYY-MM-DD date. An empty string yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return daykey.Parse(s, time.Local)
}

// Find returns the index of the task with the given id, or -1.
func Find(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of tasks with the task id removed, and whether it was present.
func Without(tasks []Task, id string) ([]Task, bool) {
	idx := Find(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	out = append(out, tasks[idx+1:]...)
	return out, true
}
