package handlers

import (
	"net/http"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/engine"
	"tasksense/assistant/supabase"
	"tasksense/assistant/types"

	supa "github.com/supabase-community/supabase-go"
)

// buildUserContext fetches the user's tasks, events and preferences,
// classifies each open task, and assembles the snapshot. On failure it has
// already written the error response and returns ok=false.
func buildUserContext(w http.ResponseWriter, client *supa.Client, userID string, now time.Time) (types.Context, bool) {
	tasks, err := supabase.GetOpenTasks(client, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch tasks:", err)
		writeError(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return types.Context{}, false
	}

	events, err := supabase.GetEvents(client, userID, startOfDay(now), now.AddDate(0, 0, 8))
	if err != nil {
		config.Logger.Warn("Failed to fetch events, continuing without:", err)
		events = nil
	}

	prefs, err := supabase.GetUserPreferences(client, userID)
	if err != nil {
		config.Logger.Warn("Failed to fetch preferences, using defaults:", err)
		prefs = types.DefaultPreferences(userID)
	}

	// Refresh derived fields so the reasoner sees current classifications.
	// Stored time flexibility is kept when present: it reflects how movable
	// the task was judged at planning time, which is what reschedule
	// suggestions key off.
	for i := range tasks {
		dec := engine.ClassifyTask(tasks[i], tasks, now)
		tasks[i].AIPriority = dec.AIPriority
		tasks[i].EnergyCost = dec.EnergyCost
		if tasks[i].TimeFlexibility == "" {
			tasks[i].TimeFlexibility = dec.TimeFlexibility
		}
		tasks[i].Confidence = dec.DeadlineConfidence
		tasks[i].WorkflowState = dec.WorkflowState
	}

	return engine.BuildContext(userID, tasks, events, prefs, now), true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
