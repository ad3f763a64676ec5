package handlers

import (
	"net/http"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/engine"
	"tasksense/assistant/supabase"
	"tasksense/assistant/types"
)

// RunAssistHandler executes the full pipeline: build a context snapshot,
// skip if it duplicates the last run, reason, decide, persist, and dispatch
// notifications for anything high or urgent.
func RunAssistHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	ctx, ok := buildUserContext(w, client, userID, now)
	if !ok {
		return
	}

	runLog := supabase.NewInsightRunLog(client)
	duplicate, hash := engine.IsDuplicateRun(runLog, ctx)
	if duplicate {
		config.Logger.Info("skipping duplicate insight run for user ", userID)
		writeJSON(w, http.StatusOK, types.AssistRunResponse{
			Success: true,
			Skipped: true,
			Reason:  "duplicate_context",
		})
		return
	}

	insight := engine.Reason(ctx)
	decisions := engine.Decide(insight, ctx)

	if err := supabase.SaveDecisions(client, userID, decisions); err != nil {
		config.Logger.Error("Failed to save decisions:", err)
		writeError(w, "Failed to save decisions", http.StatusInternalServerError)
		return
	}

	if hash != "" {
		if err := runLog.RecordRun(engine.InsightRun{
			UserID:      userID,
			ContextHash: hash,
			RanAt:       now,
		}); err != nil {
			config.Logger.Warn("Failed to record insight run:", err)
		}
	}

	// Notify on anything the user should see soon; the dispatcher applies
	// its own gates.
	dispatcher := engine.NewDispatcher(supabase.NewNotificationLog(client))
	dispatched := 0
	for _, decision := range decisions {
		if decision.Priority != types.DecisionPriorityHigh && decision.Priority != types.DecisionPriorityUrgent {
			continue
		}
		result := dispatcher.Dispatch(ctx.Preferences, types.Notification{
			UserID:   userID,
			Title:    notificationTitle(decision.Type),
			Body:     decision.Explanation,
			Priority: decision.Priority,
			Category: types.CategoryAIInsight,
		}, now)
		if result.Sent {
			dispatched++
		}
	}

	writeJSON(w, http.StatusOK, types.AssistRunResponse{
		Success:    true,
		Decisions:  decisions,
		Dispatched: dispatched,
	})
}

// NowHandler answers "what should I do right now" with exactly one item.
func NowHandler(w http.ResponseWriter, r *http.Request) {
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

	approvals, err := supabase.GetWaitingApprovals(client, userID)
	if err != nil {
		// An empty approval list degrades the ladder, it does not break it.
		config.Logger.Warn("Failed to fetch approvals, continuing without:", err)
		approvals = nil
	}

	selection := engine.SelectNow(tasks, approvals, time.Now())
	writeJSON(w, http.StatusOK, types.NowResponse{
		Success:   true,
		Selection: selection,
	})
}

// InsightHandler is the read-only preview: reason and decide without
// persisting or notifying.
func InsightHandler(w http.ResponseWriter, r *http.Request) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, ok := buildUserContext(w, client, userID, time.Now())
	if !ok {
		return
	}

	insight := engine.Reason(ctx)
	decisions := engine.Decide(insight, ctx)

	writeJSON(w, http.StatusOK, types.InsightResponse{
		Success:   true,
		Insight:   insight,
		Decisions: decisions,
	})
}

func notificationTitle(t types.DecisionType) string {
	switch t {
	case types.DecisionSuggestReschedule:
		return "Reschedule suggestion"
	case types.DecisionSuggestFocusBlock:
		return "Focus block suggestion"
	case types.DecisionSuggestBreak:
		return "Break suggestion"
	case types.DecisionWarnConflict:
		return "Calendar conflict"
	case types.DecisionWarnOverload:
		return "Overload warning"
	case types.DecisionRecommendAction:
		return "Suggestion"
	default:
		return "Assistant update"
	}
}
