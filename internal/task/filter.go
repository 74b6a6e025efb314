package task

import (
	"github.com/gobwas/glob"

	"github.com/Iron-Ham/cogniload/internal/errors"
)

// FilterCategory keeps the tasks whose category matches a glob pattern
// (e.g. "cod*", "{admin,reading}"). An empty pattern keeps everything.
func FilterCategory(tasks []Task, pattern string) ([]Task, error) {
	if pattern == "" {
		return tasks, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewValidationError("invalid category pattern").
			WithField("category").WithValue(pattern).WithCause(err)
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if g.Match(t.Category) {
			out = append(out, t)
		}
	}
	return out, nil
}
