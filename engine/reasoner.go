package engine

import (
	"fmt"
	"slices"
	"time"

	"tasksense/assistant/types"
)

// Fixed recommendation copy per risk / opportunity type.
var (
	riskRecommendations = map[types.RiskType]string{
		types.RiskOverload:    "Your day is overbooked. Move flexible tasks to tomorrow to protect your time.",
		types.RiskDeadline:    "Overdue tasks are piling up. Start with the oldest one before taking on anything new.",
		types.RiskUnrealistic: "Your inbox backlog is growing. Triage it down to what actually matters.",
	}
	opportunityRecommendations = map[types.OpportunityType]string{
		types.OpportunityFocusBlock: "You have room for a deep focus block today. Use it on your top task.",
		types.OpportunityReschedule: "Lighten today by pushing a flexible task to tomorrow.",
		types.OpportunityBreak:      "Your events run back to back. Slot in a short break to recover.",
	}
)

const defaultRecommendation = "Your day looks manageable. Stick to the plan."

// Reason derives risks, conflicts, opportunities and a ranked priority list
// from one context snapshot. Pure: no I/O, no clock reads.
func Reason(ctx types.Context) types.Insight {
	insight := types.Insight{
		UserID:      ctx.UserID,
		GeneratedAt: ctx.Now,
	}

	insight.Risks = detectRisks(ctx)
	insight.Conflicts = detectConflicts(ctx.EventsToday)
	insight.Opportunities = detectOpportunities(ctx)
	insight.Priorities = rankTasks(ctx)
	insight.Recommendations = buildRecommendations(insight.Risks, insight.Opportunities)
	insight.Summary = summarize(ctx, insight)

	return insight
}

func detectRisks(ctx types.Context) []types.Risk {
	var risks []types.Risk

	if ctx.IsOverloaded {
		severity := types.SeverityMedium
		if float64(ctx.WorkloadMinutes) > 1.2*float64(ctx.AvailableMinutes) {
			severity = types.SeverityHigh
		}
		risks = append(risks, types.Risk{
			Type:     types.RiskOverload,
			Severity: severity,
			Detail: fmt.Sprintf("%d minutes of work against %d available",
				ctx.WorkloadMinutes, ctx.AvailableMinutes),
		})
	}

	if n := len(ctx.TasksOverdue); n > 0 {
		severity := types.SeverityMedium
		if n > 3 {
			severity = types.SeverityHigh
		}
		risks = append(risks, types.Risk{
			Type:     types.RiskDeadline,
			Severity: severity,
			Detail:   fmt.Sprintf("%d overdue tasks", n),
		})
	}

	if n := len(ctx.TasksInbox); n > 10 {
		risks = append(risks, types.Risk{
			Type:     types.RiskUnrealistic,
			Severity: types.SeverityLow,
			Detail:   fmt.Sprintf("%d unsorted tasks in the inbox", n),
		})
	}

	return risks
}

// detectConflicts walks adjacent pairs of today's events (already sorted by
// start time in the context builder).
func detectConflicts(events []types.Event) []types.EventConflict {
	var conflicts []types.EventConflict

	for i := 0; i+1 < len(events); i++ {
		first, second := events[i], events[i+1]

		if first.EndsAt.After(second.StartsAt) {
			conflicts = append(conflicts, types.EventConflict{
				Kind:        types.ConflictTimeOverlap,
				FirstEvent:  first,
				SecondEvent: second,
				Detail:      fmt.Sprintf("%q overlaps %q", first.Title, second.Title),
			})
			continue
		}

		gap := int(second.StartsAt.Sub(first.EndsAt).Minutes())
		if first.Location != "" && second.Location != "" &&
			first.Location != second.Location && gap < 30 {
			conflicts = append(conflicts, types.EventConflict{
				Kind:        types.ConflictTravelGap,
				FirstEvent:  first,
				SecondEvent: second,
				GapMinutes:  gap,
				Detail: fmt.Sprintf("only %d minutes to get from %s to %s",
					gap, first.Location, second.Location),
			})
		}
	}

	return conflicts
}

func detectOpportunities(ctx types.Context) []types.Opportunity {
	var opportunities []types.Opportunity

	highToday := 0
	for _, task := range ctx.TasksDueToday {
		if isHighPriority(task) {
			highToday++
		}
	}
	if highToday >= 2 && len(ctx.EventsToday) < 3 {
		opportunities = append(opportunities, types.Opportunity{
			Type:   types.OpportunityFocusBlock,
			Detail: fmt.Sprintf("%d high-priority tasks and a light calendar", highToday),
		})
	}

	if ctx.IsOverloaded && len(flexibleTasksToday(ctx)) > 0 {
		opportunities = append(opportunities, types.Opportunity{
			Type:   types.OpportunityReschedule,
			Detail: "flexible tasks can move to tomorrow",
		})
	}

	if len(ctx.EventsToday) >= 3 {
		for i := 0; i+1 < len(ctx.EventsToday); i++ {
			gap := ctx.EventsToday[i+1].StartsAt.Sub(ctx.EventsToday[i].EndsAt)
			if gap > 0 && gap < 15*time.Minute {
				opportunities = append(opportunities, types.Opportunity{
					Type:   types.OpportunityBreak,
					Detail: "back-to-back events with almost no recovery time",
				})
				break
			}
		}
	}

	return opportunities
}

// rankTasks scores every task the snapshot knows about and sorts them
// highest first. Scores are clamped to 0-100.
func rankTasks(ctx types.Context) []types.TaskRank {
	type scored struct {
		task    types.Task
		overdue bool
		today   bool
	}

	var pool []scored
	for _, t := range ctx.TasksOverdue {
		pool = append(pool, scored{task: t, overdue: true})
	}
	for _, t := range ctx.TasksDueToday {
		pool = append(pool, scored{task: t, today: true})
	}
	for _, t := range ctx.TasksUpcoming {
		pool = append(pool, scored{task: t})
	}

	var ranks []types.TaskRank
	for _, s := range pool {
		score := 50
		if s.overdue {
			score += 40
		}
		if s.today {
			score += 30
		}
		if isHighPriority(s.task) {
			score += 20
		}
		if s.task.TimeFlexibility == types.FlexFixed {
			score += 10
		}
		if s.task.EnergyCost == types.EnergyLow {
			score += 5
		}
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
		ranks = append(ranks, types.TaskRank{
			TaskID: s.task.ID,
			Title:  s.task.Title,
			Score:  score,
		})
	}

	slices.SortStableFunc(ranks, func(a, b types.TaskRank) int {
		return b.Score - a.Score
	})
	return ranks
}

// buildRecommendations orders the free-text advice: high-severity risks
// first, then at most two opportunities, with a fallback when nothing needs
// saying.
func buildRecommendations(risks []types.Risk, opportunities []types.Opportunity) []string {
	var recs []string

	for _, risk := range risks {
		if risk.Severity == types.SeverityHigh {
			recs = append(recs, riskRecommendations[risk.Type])
		}
	}

	for i, opp := range opportunities {
		if i >= 2 {
			break
		}
		recs = append(recs, opportunityRecommendations[opp.Type])
	}

	if len(recs) == 0 {
		recs = append(recs, defaultRecommendation)
	}
	return recs
}

func summarize(ctx types.Context, insight types.Insight) string {
	return fmt.Sprintf(
		"%d tasks due today, %d overdue, %d events on the calendar. "+
			"Detected %d risks, %d conflicts and %d opportunities. "+
			"Workload is %d of %d available minutes.",
		len(ctx.TasksDueToday), len(ctx.TasksOverdue), len(ctx.EventsToday),
		len(insight.Risks), len(insight.Conflicts), len(insight.Opportunities),
		ctx.WorkloadMinutes, ctx.AvailableMinutes,
	)
}

func isHighPriority(task types.Task) bool {
	return task.Priority == types.PriorityHigh ||
		task.Priority == types.PriorityUrgent ||
		task.AIPriority == types.AIPriorityHigh
}

// flexibleTasksToday returns today's low/medium-priority tasks that can
// move without breaking anything.
func flexibleTasksToday(ctx types.Context) []types.Task {
	var flexible []types.Task
	for _, task := range ctx.TasksDueToday {
		if task.TimeFlexibility != types.FlexFlexible {
			continue
		}
		if task.Priority == types.PriorityLow || task.Priority == types.PriorityMedium {
			flexible = append(flexible, task)
		}
	}
	return flexible
}
