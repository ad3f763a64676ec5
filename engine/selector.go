package engine

import (
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

// SelectNow picks exactly one "what to do right now" item. The ladder is
// fixed: fresh approvals beat overdue tasks beat stale approvals beat
// today's high-priority tasks beat today's remaining tasks.
func SelectNow(tasks []types.Task, approvals []types.ApprovalItem, now time.Time) types.NowSelection {
	staleCutoff := now.Add(-config.Pipeline.StaleApprovalAge)

	var fresh, stale []types.ApprovalItem
	for _, item := range approvals {
		if item.Status != types.ApprovalWaiting || item.IsSnoozed(now) {
			continue
		}
		if item.CreatedAt.After(staleCutoff) {
			fresh = append(fresh, item)
		} else {
			stale = append(stale, item)
		}
	}

	// 1. Freshest waiting approval.
	if len(fresh) > 0 {
		pick := fresh[0]
		for _, item := range fresh[1:] {
			if item.CreatedAt.After(pick.CreatedAt) {
				pick = item
			}
		}
		return types.NowSelection{
			Type:     "plan",
			Approval: &pick,
			Title:    pick.Title,
			Reason:   "waiting for your approval",
			Priority: 100,
		}
	}

	// 2. Earliest overdue task.
	var overdue *types.Task
	for i, task := range tasks {
		if !task.IsOpen() || task.DueDate == nil || !task.DueDate.Before(now) {
			continue
		}
		if overdue == nil || task.DueDate.Before(*overdue.DueDate) {
			overdue = &tasks[i]
		}
	}
	if overdue != nil {
		return types.NowSelection{
			Type:     "task",
			TaskID:   overdue.ID,
			Title:    overdue.Title,
			Reason:   "overdue task needs attention",
			Priority: 90,
		}
	}

	// 3. Oldest stale approval.
	if len(stale) > 0 {
		pick := stale[0]
		for _, item := range stale[1:] {
			if item.CreatedAt.Before(pick.CreatedAt) {
				pick = item
			}
		}
		return types.NowSelection{
			Type:     "plan",
			Approval: &pick,
			Title:    pick.Title,
			Reason:   "approval pending for over a day",
			Priority: 80,
		}
	}

	// 4. First high-priority task due today.
	for _, task := range tasks {
		if !task.IsOpen() || task.DueDate == nil || !sameDay(*task.DueDate, now) {
			continue
		}
		if task.Priority == types.PriorityHigh || task.Priority == types.PriorityUrgent {
			return types.NowSelection{
				Type:     "task",
				TaskID:   task.ID,
				Title:    task.Title,
				Reason:   "high-priority task due today",
				Priority: 80,
			}
		}
	}

	// 5. Any task due today.
	for _, task := range tasks {
		if !task.IsOpen() || task.DueDate == nil || !sameDay(*task.DueDate, now) {
			continue
		}
		return types.NowSelection{
			Type:     "task",
			TaskID:   task.ID,
			Title:    task.Title,
			Reason:   "due today",
			Priority: 60,
		}
	}

	return types.NowSelection{
		Type:     "empty",
		Reason:   "nothing urgent right now",
		Priority: 0,
	}
}
