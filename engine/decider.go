package engine

import (
	"fmt"
	"time"

	"tasksense/assistant/types"
)

// Decide converts an insight into concrete, typed decision records ready for
// user approval. Nothing here executes anything; every record is a proposal.
func Decide(insight types.Insight, ctx types.Context) []types.Decision {
	var decisions []types.Decision

	for _, risk := range insight.Risks {
		if risk.Severity == types.SeverityLow {
			continue
		}
		if d := decideRisk(risk, ctx); d != nil {
			decisions = append(decisions, *d)
		}
	}

	for _, conflict := range insight.Conflicts {
		decisions = append(decisions, types.Decision{
			UserID:      ctx.UserID,
			Type:        types.DecisionWarnConflict,
			Explanation: conflict.Detail,
			Confidence:  0.95,
			Priority:    types.DecisionPriorityHigh,
			Conflict: &types.ConflictPayload{
				Kind:          string(conflict.Kind),
				FirstEventID:  conflict.FirstEvent.ID,
				SecondEventID: conflict.SecondEvent.ID,
			},
		})
	}

	for i, opp := range insight.Opportunities {
		if i >= 3 {
			break
		}
		if d := decideOpportunity(opp, insight, ctx); d != nil {
			decisions = append(decisions, *d)
		}
	}

	// Leftover free-text recommendations become plain action suggestions.
	// The recommendation list is built risks-first then opportunities, and
	// those already produced typed decisions above.
	consumed := 0
	for _, risk := range insight.Risks {
		if risk.Severity == types.SeverityHigh {
			consumed++
		}
	}
	if n := len(insight.Opportunities); n > 2 {
		consumed += 2
	} else {
		consumed += n
	}
	leftovers := insight.Recommendations
	if consumed < len(leftovers) {
		leftovers = leftovers[consumed:]
	} else {
		leftovers = nil
	}
	for i, rec := range leftovers {
		if i >= 2 {
			break
		}
		decisions = append(decisions, types.Decision{
			UserID:      ctx.UserID,
			Type:        types.DecisionRecommendAction,
			Explanation: rec,
			Confidence:  0.8,
			Priority:    types.DecisionPriorityNormal,
			Action:      &types.ActionPayload{Recommendation: rec},
		})
	}

	return decisions
}

func decideRisk(risk types.Risk, ctx types.Context) *types.Decision {
	switch risk.Type {
	case types.RiskOverload:
		flexible := flexibleTasksToday(ctx)
		if len(flexible) > 0 {
			ids := taskIDs(flexible, 3)
			return &types.Decision{
				UserID: ctx.UserID,
				Type:   types.DecisionSuggestReschedule,
				Explanation: fmt.Sprintf(
					"Today is overloaded (%d of %d minutes). Moving %d flexible tasks to tomorrow would relieve it.",
					ctx.WorkloadMinutes, ctx.AvailableMinutes, len(ids)),
				Confidence: 0.85,
				Priority:   riskPriority(risk.Severity),
				Reschedule: &types.ReschedulePayload{
					TaskIDs:    ids,
					TargetDate: tomorrow(ctx.Now),
				},
			}
		}
		return &types.Decision{
			UserID: ctx.UserID,
			Type:   types.DecisionWarnOverload,
			Explanation: fmt.Sprintf(
				"Today is overloaded (%d of %d minutes) and nothing can move. Consider dropping something.",
				ctx.WorkloadMinutes, ctx.AvailableMinutes),
			Confidence: 0.9,
			Priority:   riskPriority(risk.Severity),
			Overload: &types.OverloadPayload{
				WorkloadMinutes:  ctx.WorkloadMinutes,
				AvailableMinutes: ctx.AvailableMinutes,
			},
		}

	case types.RiskDeadline:
		return &types.Decision{
			UserID: ctx.UserID,
			Type:   types.DecisionWarnOverload,
			Explanation: fmt.Sprintf(
				"%d tasks are past due. Act now before the backlog compounds.",
				len(ctx.TasksOverdue)),
			Confidence: 1.0,
			Priority:   types.DecisionPriorityUrgent,
			Overload: &types.OverloadPayload{
				WorkloadMinutes:  ctx.WorkloadMinutes,
				AvailableMinutes: ctx.AvailableMinutes,
				OverdueCount:     len(ctx.TasksOverdue),
				ActNow:           true,
			},
		}
	}
	return nil
}

func decideOpportunity(opp types.Opportunity, insight types.Insight, ctx types.Context) *types.Decision {
	switch opp.Type {
	case types.OpportunityFocusBlock:
		slot := FindFocusSlot(ctx)
		if slot == nil {
			return nil
		}
		minutes := ctx.Preferences.FocusBlockMinutes
		if minutes <= 0 {
			minutes = 90
		}
		var topIDs []string
		for i, rank := range insight.Priorities {
			if i >= 3 {
				break
			}
			topIDs = append(topIDs, rank.TaskID)
		}
		return &types.Decision{
			UserID: ctx.UserID,
			Type:   types.DecisionSuggestFocusBlock,
			Explanation: fmt.Sprintf(
				"You have an open stretch at %s. Block %d minutes for your top tasks.",
				slot.Format("15:04"), minutes),
			Confidence: 0.85,
			Priority:   types.DecisionPriorityNormal,
			FocusBlock: &types.FocusBlockPayload{
				StartsAt: *slot,
				Minutes:  minutes,
				TaskIDs:  topIDs,
			},
		}

	case types.OpportunityReschedule:
		flexible := flexibleTasksToday(ctx)
		if len(flexible) == 0 {
			return nil
		}
		ids := taskIDs(flexible, 3)
		return &types.Decision{
			UserID: ctx.UserID,
			Type:   types.DecisionSuggestReschedule,
			Explanation: fmt.Sprintf(
				"Moving %d flexible tasks to tomorrow would make today realistic.", len(ids)),
			Confidence: 0.8,
			Priority:   types.DecisionPriorityNormal,
			Reschedule: &types.ReschedulePayload{
				TaskIDs:    ids,
				TargetDate: tomorrow(ctx.Now),
			},
		}

	case types.OpportunityBreak:
		eventID, gap := shortestGap(ctx.EventsToday)
		if eventID == "" {
			return nil
		}
		return &types.Decision{
			UserID: ctx.UserID,
			Type:   types.DecisionSuggestBreak,
			Explanation: fmt.Sprintf(
				"Only %d minutes between events. Take a breather after the first one.", gap),
			Confidence: 0.8,
			Priority:   types.DecisionPriorityNormal,
			Break: &types.BreakPayload{
				AfterEventID: eventID,
				GapMinutes:   gap,
			},
		}
	}
	return nil
}

// FindFocusSlot scans hour-by-hour from the next full hour for an event-free
// stretch of the configured focus-block length inside working hours.
func FindFocusSlot(ctx types.Context) *time.Time {
	prefs := ctx.Preferences
	minutes := prefs.FocusBlockMinutes
	if minutes <= 0 {
		minutes = 90
	}
	duration := time.Duration(minutes) * time.Minute

	now := ctx.Now
	start := now.Truncate(time.Hour).Add(time.Hour)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), prefs.WorkdayStartHour, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), prefs.WorkdayEndHour, 0, 0, 0, now.Location())
	if start.Before(dayStart) {
		start = dayStart
	}

	for slot := start; !slot.Add(duration).After(dayEnd); slot = slot.Add(time.Hour) {
		if !overlapsAny(slot, slot.Add(duration), ctx.EventsToday) {
			s := slot
			return &s
		}
	}
	return nil
}

func overlapsAny(from, to time.Time, events []types.Event) bool {
	for _, event := range events {
		if from.Before(event.EndsAt) && event.StartsAt.Before(to) {
			return true
		}
	}
	return false
}

// shortestGap returns the event preceding the smallest positive gap between
// today's adjacent events, with the gap in minutes.
func shortestGap(events []types.Event) (string, int) {
	bestID := ""
	bestGap := 0
	for i := 0; i+1 < len(events); i++ {
		gap := int(events[i+1].StartsAt.Sub(events[i].EndsAt).Minutes())
		if gap <= 0 {
			continue
		}
		if bestID == "" || gap < bestGap {
			bestID = events[i].ID
			bestGap = gap
		}
	}
	return bestID, bestGap
}

func riskPriority(severity types.Severity) types.DecisionPriority {
	if severity == types.SeverityHigh {
		return types.DecisionPriorityHigh
	}
	return types.DecisionPriorityNormal
}

func taskIDs(tasks []types.Task, limit int) []string {
	var ids []string
	for i, task := range tasks {
		if i >= limit {
			break
		}
		ids = append(ids, task.ID)
	}
	return ids
}

func tomorrow(now time.Time) time.Time {
	t := now.AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
