// Package forecast spreads task load over calendar days.
//
// The daily forecast is a heuristic, not a schedule. Each task is scored on
// its own with urgency forced on, then 70% of that load lands on the deadline
// day and 15% on each of the two days before it. Tasks without a deadline put
// all of their load on their creation day. Because tasks are scored in
// isolation, the per-day totals do not add up to the sequence-aware total
// returned by load.Score; the two views are intentionally kept separate.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/Iron-Ham/cogniload/internal/daykey"
	"github.com/Iron-Ham/cogniload/internal/load"
	"github.com/Iron-Ham/cogniload/internal/task"
)

// Redistribution shares for deadline-bearing tasks.
var deadlineShares = []float64{0.70, 0.15, 0.15}

// Point is the forecast load of one calendar day.
type Point struct {
	Date string `json:"date"`
	Load int    `json:"load"`
}

// Daily builds the per-day forecast for tasks. now supplies the host's
// location for day keys; with urgency simulated its instant does not change
// the result. The output is sorted by date and omits days whose accumulated
// load is zero. Days before today are kept.
func Daily(tasks []task.Task, now time.Time) []Point {
	sums := make(map[string]float64)

	for _, t := range tasks {
		total := load.ScoreOne(t, now)
		anchor := daykey.Key(t.Anchor().In(now.Location()))

		if !t.HasDeadline() {
			sums[anchor] += total
			continue
		}

		for back, share := range deadlineShares {
			day, err := daykey.AddDays(anchor, -back)
			if err != nil {
				continue
			}
			sums[day] += total * share
		}
	}

	points := make([]Point, 0, len(sums))
	for day, sum := range sums {
		if sum == 0 {
			continue
		}
		points = append(points, Point{Date: day, Load: int(math.Round(sum))})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// Lookup returns the load on a given day, or 0.
func Lookup(points []Point, date string) int {
	i := sort.Search(len(points), func(i int) bool { return points[i].Date >= date })
	if i < len(points) && points[i].Date == date {
		return points[i].Load
	}
	return 0
}
