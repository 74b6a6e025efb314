package store

// Keys shared by the engine's stateful components. They are part of the
// persisted contract: renaming one orphans existing user data.
const (
	KeyTasks                 = "cogniload_tasks"
	KeyBackgroundLoad        = "background_load_modifier"
	KeyLastVisit             = "last_visit_timestamp"
	KeyLastTotalLoad         = "last_total_load"
	KeyCurrentTotalLoad      = "current_total_load"
	KeyTasksCompletedToday   = "tasks_completed_today"
	KeyLastCompletionDate    = "last_completion_date"
	KeyLastReEntryShownDate  = "last_reentry_message_date"
	KeyLastLoadDiffShownDate = "last_diff_shown_date"
)
