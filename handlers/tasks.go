package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/engine"
	"tasksense/assistant/supabase"
	"tasksense/assistant/types"

	"github.com/google/uuid"
)

// ClassifyTasksHandler recomputes workflow classifications for one task or
// for all of the user's open tasks, writes them back, and returns them.
func ClassifyTasksHandler(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if r.Body != nil {
		// An empty body means "classify everything".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.TaskID != "" {
		if _, err := uuid.Parse(req.TaskID); err != nil {
			config.Logger.Error("Invalid task ID format:", err)
			writeError(w, "Invalid task ID", http.StatusBadRequest)
			return
		}
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := supabase.GetOpenTasks(client, userID)
	if err != nil {
		config.Logger.Error("Failed to fetch tasks:", err)
		writeError(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	var targets []types.Task
	if req.TaskID != "" {
		for _, task := range tasks {
			if task.ID == req.TaskID {
				targets = []types.Task{task}
				break
			}
		}
		if len(targets) == 0 {
			// Done/archived tasks are not in the open list but may still be
			// classified; done always comes back completed.
			task, err := supabase.GetTask(client, userID, req.TaskID)
			if err != nil {
				config.Logger.Error("Failed to fetch task:", err)
				writeError(w, "Task not found", http.StatusNotFound)
				return
			}
			targets = []types.Task{task}
		}
	} else {
		targets = tasks
	}

	var decisions []types.WorkflowDecision
	for _, task := range targets {
		dec := engine.ClassifyTask(task, tasks, now)
		decisions = append(decisions, dec)

		if err := supabase.SaveClassification(client, userID, dec); err != nil {
			// The classification itself is still valid output.
			config.Logger.Warn("Failed to persist classification:", err)
		}
	}

	writeJSON(w, http.StatusOK, types.ClassifyResponse{
		Success:   true,
		Decisions: decisions,
	})
}
