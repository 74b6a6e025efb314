package task

import "time"

// DemoTasks returns the example collection used to bootstrap an empty store.
// Dates are local midnight.
func DemoTasks() []Task {
	day := func(s string) time.Time {
		t, _ := ParseTime(s)
		return t
	}
	deadline := func(s string) *time.Time {
		t := day(s)
		return &t
	}

	return []Task{
		{ID: "t1", Title: "DSA Assignment – Graph Algorithms", EstimatedDuration: 120, MentalEffort: 5, Category: "coding", Deadline: deadline("2026-02-05"), CreatedAt: day("2026-02-01")},
		{ID: "t2", Title: "Machine Learning Quiz Prep", EstimatedDuration: 90, MentalEffort: 4, Category: "revision", Deadline: deadline("2026-02-04"), CreatedAt: day("2026-02-01")},
		{ID: "t3", Title: "Operating Systems Notes Review", EstimatedDuration: 60, MentalEffort: 3, Category: "reading", Deadline: deadline("2026-02-03"), CreatedAt: day("2026-02-02")},
		{ID: "t4", Title: "Group Project Sync Meeting", EstimatedDuration: 45, MentalEffort: 3, Category: "admin", Deadline: deadline("2026-02-02"), CreatedAt: day("2026-02-02")},
		{ID: "t5", Title: "Internship Application – Resume Update", EstimatedDuration: 75, MentalEffort: 4, Category: "admin", Deadline: deadline("2026-02-06"), CreatedAt: day("2026-02-02")},
		{ID: "t6", Title: "DBMS Midterm Revision", EstimatedDuration: 150, MentalEffort: 5, Category: "revision", Deadline: deadline("2026-02-04"), CreatedAt: day("2026-02-03")},
		{ID: "t7", Title: "AI Ethics Reading", EstimatedDuration: 40, MentalEffort: 2, Category: "reading", Deadline: deadline("2026-02-06"), CreatedAt: day("2026-02-03")},
		{ID: "t8", Title: "Hackathon Demo Preparation", EstimatedDuration: 180, MentalEffort: 5, Category: "coding", Deadline: deadline("2026-02-05"), CreatedAt: day("2026-02-03")},
	}
}
