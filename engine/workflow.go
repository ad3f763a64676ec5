package engine

import (
	"fmt"
	"strings"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

// Keyword vocabularies for energy-cost estimation. The high list is checked
// first; a title like "review and send report" counts as high.
var (
	highEnergyWords = []string{
		"design", "plan", "strategy", "create", "develop", "write",
		"analyze", "research", "review", "report", "presentation",
	}
	lowEnergyWords = []string{
		"call", "email", "reply", "check", "buy", "send", "pay",
		"book", "schedule", "confirm", "remind",
	}
)

// ClassifyTask computes the full workflow classification for one task. The
// surrounding task list is needed for day-load analysis on the task's due
// date. Pure: same inputs always produce the same decision.
func ClassifyTask(task types.Task, all []types.Task, now time.Time) types.WorkflowDecision {
	score, warnings := priorityScore(task, now)
	aiPriority := bucketPriority(score)
	energy := energyCost(task)
	flex := timeFlexibility(task, now)
	confidence := deadlineConfidence(task)

	state, stateWarnings := workflowState(task, aiPriority, flex, confidence, all)
	warnings = append(warnings, stateWarnings...)

	return types.WorkflowDecision{
		TaskID:             task.ID,
		AIPriority:         aiPriority,
		EnergyCost:         energy,
		TimeFlexibility:    flex,
		DeadlineConfidence: confidence,
		WorkflowState:      state,
		Score:              score,
		Explanation:        explainClassification(task, score, aiPriority, state),
		Warnings:           warnings,
	}
}

// priorityScore builds the 0-100 urgency score from due-date proximity,
// user priority, task age and capture source.
func priorityScore(task types.Task, now time.Time) (int, []string) {
	score := 0
	var warnings []string

	if task.DueDate == nil {
		warnings = append(warnings, "no deadline")
	} else {
		until := task.DueDate.Sub(now)
		switch {
		case until < 0:
			score += 40
			warnings = append(warnings, "overdue")
		case until <= 2*time.Hour:
			score += 35
			warnings = append(warnings, "due within 2 hours")
		case until <= 6*time.Hour:
			score += 25
		case until <= 24*time.Hour:
			score += 15
		case until <= 72*time.Hour:
			score += 5
		}
	}

	switch task.Priority {
	case types.PriorityHigh, types.PriorityUrgent:
		score += 30
	case types.PriorityMedium:
		score += 15
	default:
		score += 5
	}

	age := now.Sub(task.CreatedAt)
	if age > 7*24*time.Hour {
		score += 20
		warnings = append(warnings, "pending over a week")
	} else if age > 3*24*time.Hour {
		score += 10
	}

	if task.SourceIntent != nil {
		switch *task.SourceIntent {
		case types.SourceIntentEvent:
			score += 10
		case types.SourceIntentReminder:
			score += 5
		}
	}

	return score, warnings
}

func bucketPriority(score int) types.AIPriority {
	switch {
	case score >= 60:
		return types.AIPriorityHigh
	case score >= 30:
		return types.AIPriorityMedium
	default:
		return types.AIPriorityLow
	}
}

func energyCost(task types.Task) types.EnergyCost {
	text := strings.ToLower(task.Title + " " + task.Description)

	for _, word := range highEnergyWords {
		if strings.Contains(text, word) {
			return types.EnergyHigh
		}
	}
	for _, word := range lowEnergyWords {
		if strings.Contains(text, word) {
			return types.EnergyLow
		}
	}

	// No keyword signal, fall back to the estimate.
	if task.EstimatedMinutes != nil {
		if *task.EstimatedMinutes > 120 {
			return types.EnergyHigh
		}
		if *task.EstimatedMinutes < 30 {
			return types.EnergyLow
		}
	}
	return types.EnergyMedium
}

func timeFlexibility(task types.Task, now time.Time) types.TimeFlexibility {
	if task.IsEventSourced() {
		return types.FlexFixed
	}
	if task.DueDate == nil {
		return types.FlexFlexible
	}
	until := task.DueDate.Sub(now)
	switch {
	case until < 24*time.Hour:
		return types.FlexFixed
	case until < 72*time.Hour:
		return types.FlexSemi
	default:
		return types.FlexFlexible
	}
}

func deadlineConfidence(task types.Task) types.DeadlineConfidence {
	if task.DueDate == nil {
		return types.ConfidenceInferred
	}
	if task.IsEventSourced() {
		return types.ConfidenceStrong
	}
	switch task.Source {
	case types.TaskSourceVoice, types.TaskSourceAI:
		return types.ConfidenceWeak
	default:
		// Manually entered due dates are trusted.
		return types.ConfidenceStrong
	}
}

// workflowState walks the state ladder top to bottom, first match wins. A
// done task is always completed, nothing overrides that.
func workflowState(task types.Task, aiPriority types.AIPriority, flex types.TimeFlexibility, confidence types.DeadlineConfidence, all []types.Task) (types.WorkflowState, []string) {
	if task.Status == types.StatusDone {
		return types.StateCompleted, nil
	}

	if task.WorkflowState == "" || task.WorkflowState == types.StateInbox {
		if aiPriority == types.AIPriorityHigh && confidence == types.ConfidenceStrong {
			return types.StatePlanned, nil
		}
		if confidence == types.ConfidenceInferred || task.DueDate == nil {
			return types.StateInbox, nil
		}
	}

	if task.DueDate != nil && aiPriority != types.AIPriorityLow && confidence != types.ConfidenceInferred {
		load := AnalyzeDayLoad(all, *task.DueDate)
		if load.IsOverloaded {
			warning := fmt.Sprintf("due date %s is overloaded (%.0f%% of capacity)",
				task.DueDate.Format("2006-01-02"), load.LoadPercent)
			return types.StateSuggested, []string{warning}
		}
		return types.StatePlanned, nil
	}

	if flex == types.FlexFixed && aiPriority == types.AIPriorityHigh {
		return types.StateAutoReady, nil
	}

	return types.StateSuggested, nil
}

func explainClassification(task types.Task, score int, aiPriority types.AIPriority, state types.WorkflowState) string {
	due := "no due date"
	if task.DueDate != nil {
		due = "due " + task.DueDate.Format("Jan 2 15:04")
	}
	return fmt.Sprintf("%s priority (score %d), %s, %s -> %s",
		aiPriority, score, due, task.Priority, state)
}

// AnalyzeDayLoad sums the estimated minutes of every open task due on the
// target date against an 8-hour capacity. Integer math keeps the 80%
// boundary exact: 384 minutes is fine, 385 is overloaded.
func AnalyzeDayLoad(tasks []types.Task, date time.Time) types.DayLoad {
	cfg := config.Pipeline
	load := types.DayLoad{
		Date:         date,
		CapacityMins: cfg.DayCapacityMinutes,
	}

	for _, task := range tasks {
		if !task.IsOpen() || task.DueDate == nil {
			continue
		}
		if !sameDay(*task.DueDate, date) {
			continue
		}
		load.TaskCount++
		minutes := cfg.DefaultTaskMinutes
		if task.EstimatedMinutes != nil {
			minutes = *task.EstimatedMinutes
		}
		load.TotalMinutes += minutes
	}

	load.LoadPercent = float64(load.TotalMinutes) / float64(load.CapacityMins) * 100
	load.IsOverloaded = float64(load.TotalMinutes*100) > cfg.OverloadPercent*float64(load.CapacityMins)
	return load
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
