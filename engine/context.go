package engine

import (
	"slices"
	"time"

	"tasksense/assistant/types"
)

// BuildContext aggregates a user's tasks, events and preferences into the
// read-only snapshot the reasoning pipeline works from.
func BuildContext(userID string, tasks []types.Task, events []types.Event, prefs types.UserPreferences, now time.Time) types.Context {
	ctx := types.Context{
		UserID:      userID,
		Now:         now,
		Preferences: prefs,
	}

	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	weekAhead := now.AddDate(0, 0, 7)

	var upcoming []types.Task
	for _, task := range tasks {
		if !task.IsOpen() {
			continue
		}
		if task.DueDate == nil || task.WorkflowState == types.StateInbox {
			ctx.TasksInbox = append(ctx.TasksInbox, task)
		}
		if task.DueDate == nil {
			continue
		}
		switch {
		case task.DueDate.Before(now):
			ctx.TasksOverdue = append(ctx.TasksOverdue, task)
		case sameDay(*task.DueDate, now):
			ctx.TasksDueToday = append(ctx.TasksDueToday, task)
		case task.DueDate.After(endOfToday):
			upcoming = append(upcoming, task)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b types.Task) int {
		return a.DueDate.Compare(*b.DueDate)
	})
	if len(upcoming) > 10 {
		upcoming = upcoming[:10]
	}
	ctx.TasksUpcoming = upcoming

	for _, event := range events {
		if sameDay(event.StartsAt, now) {
			ctx.EventsToday = append(ctx.EventsToday, event)
		} else if event.StartsAt.After(endOfToday) && event.StartsAt.Before(weekAhead) {
			ctx.EventsWeek = append(ctx.EventsWeek, event)
		}
	}
	slices.SortStableFunc(ctx.EventsToday, func(a, b types.Event) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	// Workload: today's task estimates, defaulting to the user's preferred
	// task length when no estimate is set.
	defaultMins := prefs.PreferredTaskMins
	if defaultMins <= 0 {
		defaultMins = 30
	}
	for _, task := range ctx.TasksDueToday {
		if task.EstimatedMinutes != nil {
			ctx.WorkloadMinutes += *task.EstimatedMinutes
		} else {
			ctx.WorkloadMinutes += defaultMins
		}
	}

	// Available time: working-hours span minus today's event time.
	available := (prefs.WorkdayEndHour - prefs.WorkdayStartHour) * 60
	for _, event := range ctx.EventsToday {
		available -= event.DurationMinutes()
	}
	if available < 0 {
		available = 0
	}
	ctx.AvailableMinutes = available

	// Overloaded once workload passes 80% of what is actually available.
	ctx.IsOverloaded = ctx.WorkloadMinutes*10 > ctx.AvailableMinutes*8

	return ctx
}
