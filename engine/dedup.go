package engine

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

// InsightRun records one completed reasoning pass so near-identical reruns
// can be skipped.
type InsightRun struct {
	UserID      string    `json:"user_id"`
	ContextHash string    `json:"context_hash"`
	RanAt       time.Time `json:"ran_at"`
}

// InsightRunStore is the lookback log behind duplicate suppression. This is
// a best-effort read-then-compare: two near-simultaneous runs for the same
// user can both pass the check. Accepted limitation, not a guarantee.
type InsightRunStore interface {
	LastRun(userID string) (*InsightRun, error)
	RecordRun(run InsightRun) error
}

// snapshotFingerprint flattens the context into hash-friendly primitives.
// The timestamp is truncated to the hour, so unchanged data regenerates
// decisions at most once per hour.
type snapshotFingerprint struct {
	UserID    string
	Hour      int64
	Tasks     []string
	Events    []string
	Prefs     types.UserPreferences
	Workload  int
	Available int
	Overload  bool
}

// SnapshotHash computes the duplicate-suppression hash for a context.
func SnapshotHash(ctx types.Context) (string, error) {
	fp := snapshotFingerprint{
		UserID:    ctx.UserID,
		Hour:      ctx.Now.Truncate(time.Hour).Unix(),
		Prefs:     ctx.Preferences,
		Workload:  ctx.WorkloadMinutes,
		Available: ctx.AvailableMinutes,
		Overload:  ctx.IsOverloaded,
	}

	appendTasks := func(bucket string, tasks []types.Task) {
		for _, t := range tasks {
			due := int64(0)
			if t.DueDate != nil {
				due = t.DueDate.Unix()
			}
			fp.Tasks = append(fp.Tasks, fmt.Sprintf("%s|%s|%s|%s|%d", bucket, t.ID, t.Status, t.Priority, due))
		}
	}
	appendTasks("today", ctx.TasksDueToday)
	appendTasks("overdue", ctx.TasksOverdue)
	appendTasks("upcoming", ctx.TasksUpcoming)
	appendTasks("inbox", ctx.TasksInbox)

	for _, e := range append(append([]types.Event{}, ctx.EventsToday...), ctx.EventsWeek...) {
		fp.Events = append(fp.Events, fmt.Sprintf("%s|%d|%d|%s", e.ID, e.StartsAt.Unix(), e.EndsAt.Unix(), e.Location))
	}

	hash, err := hashstructure.Hash(fp, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash context snapshot: %w", err)
	}
	return fmt.Sprintf("%016x", hash), nil
}

// IsDuplicateRun reports whether an identical snapshot was already processed
// inside the dedup window. It returns the computed hash so the caller can
// record the run afterwards. Hash or lookup failures fail open: the run
// proceeds.
func IsDuplicateRun(store InsightRunStore, ctx types.Context) (bool, string) {
	hash, err := SnapshotHash(ctx)
	if err != nil {
		config.Logger.Warn("snapshot hash failed, running anyway:", err)
		return false, ""
	}

	last, err := store.LastRun(ctx.UserID)
	if err != nil {
		config.Logger.Warn("could not read last insight run:", err)
		return false, hash
	}
	if last == nil {
		return false, hash
	}

	if last.ContextHash == hash && ctx.Now.Sub(last.RanAt) < config.Pipeline.DedupWindow {
		return true, hash
	}
	return false, hash
}
