package types

import "time"

// Context is the read-only snapshot every reasoning call works from. It is
// built once per invocation and passed explicitly; nothing in the pipeline
// keeps user state between calls.
type Context struct {
	UserID string    `json:"user_id"`
	Now    time.Time `json:"now"`

	TasksDueToday []Task `json:"tasks_due_today"`
	TasksOverdue  []Task `json:"tasks_overdue"`
	TasksUpcoming []Task `json:"tasks_upcoming"`
	TasksInbox    []Task `json:"tasks_inbox"`

	EventsToday []Event `json:"events_today"`
	EventsWeek  []Event `json:"events_week"`

	Preferences UserPreferences `json:"preferences"`

	WorkloadMinutes  int  `json:"workload_minutes"`
	AvailableMinutes int  `json:"available_minutes"`
	IsOverloaded     bool `json:"is_overloaded"`
}
