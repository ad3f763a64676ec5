package supabase

import (
	"encoding/json"
	"fmt"

	"tasksense/assistant/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetOpenTasks returns every pending or active task for the user, due-dated
// ones first.
func GetOpenTasks(client *supabase.Client, userID string) ([]types.Task, error) {
	resp, _, err := client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", []string{string(types.StatusPending), string(types.StatusActive)}).
		Order("due_date", &postgrest.OrderOpts{Ascending: true, NullsFirst: false}).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task owned by the user.
func GetTask(client *supabase.Client, userID, taskID string) (types.Task, error) {
	resp, _, err := client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("id", taskID).
		Limit(1, "").
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("failed to fetch task: %w", err)
	}

	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return types.Task{}, fmt.Errorf("failed to decode task data: %w", err)
	}
	if len(tasks) == 0 {
		return types.Task{}, fmt.Errorf("task %s not found", taskID)
	}
	return tasks[0], nil
}

// SaveClassification writes a workflow decision back onto the task's derived
// fields.
func SaveClassification(client *supabase.Client, userID string, dec types.WorkflowDecision) error {
	updates := map[string]interface{}{
		"ai_priority":         dec.AIPriority,
		"energy_cost":         dec.EnergyCost,
		"time_flexibility":    dec.TimeFlexibility,
		"deadline_confidence": dec.DeadlineConfidence,
		"workflow_state":      dec.WorkflowState,
	}

	_, _, err := client.From("tasks").
		Update(updates, "", "").
		Eq("id", dec.TaskID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save classification for task %s: %w", dec.TaskID, err)
	}
	return nil
}
