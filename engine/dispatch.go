package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

// NotificationStore is the storage collaborator the dispatcher hands
// finalized payloads to. The supabase package provides the production
// implementation; tests use an in-memory fake.
type NotificationStore interface {
	// CountDispatchedToday counts notifications of the category already
	// dispatched for the user on the calendar day containing now.
	CountDispatchedToday(userID string, category types.NotificationCategory, now time.Time) (int, error)
	// LastUpsellAt returns when the user last saw an upsell notification,
	// or nil if never.
	LastUpsellAt(userID string) (*time.Time, error)
	Save(n types.Notification) error
}

type DispatchResult struct {
	Sent         bool       `json:"sent"`
	Skipped      bool       `json:"skipped"`
	Reason       string     `json:"reason,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

type Dispatcher struct {
	store NotificationStore
	cfg   config.PipelineConfig
}

func NewDispatcher(store NotificationStore) *Dispatcher {
	return &Dispatcher{store: store, cfg: config.Pipeline}
}

// Dispatch runs the notification gate chain: opt-in, plan-tier priority
// floor, free-tier daily cap (with a single upsell per cooldown), then
// quiet-hours rescheduling, then persistence. It never panics and never
// returns an error; failures come back as an unsent result with a reason.
func (d *Dispatcher) Dispatch(prefs types.UserPreferences, n types.Notification, now time.Time) DispatchResult {
	log := config.Logger.WithField("user_id", n.UserID)

	// 1. Opt-in gate.
	if !prefs.AIOptIn {
		log.Info("notification suppressed: ai_opt_out")
		return DispatchResult{Skipped: true, Reason: "ai_opt_out"}
	}

	urgent := n.Priority == types.DecisionPriorityHigh || n.Priority == types.DecisionPriorityUrgent

	// Upsell and system notifications are exempt from the free-tier gates;
	// only AI insights count against the quota.
	if prefs.PlanTier == types.PlanFree && n.Category == types.CategoryAIInsight {
		// 2. Priority floor.
		if !urgent {
			log.Info("notification suppressed: low_priority_for_free_tier")
			return DispatchResult{Skipped: true, Reason: "low_priority_for_free_tier"}
		}

		// 3. Daily cap.
		count, err := d.store.CountDispatchedToday(n.UserID, types.CategoryAIInsight, now)
		if err != nil {
			// Counting failure is not a reason to drop an opted-in,
			// high-priority notification.
			log.Warn("could not count today's notifications, allowing through:", err)
		} else if count >= d.cfg.FreeTierDailyCap {
			d.maybeUpsell(n.UserID, now, log)
			log.Info("notification suppressed: daily_limit_reached")
			return DispatchResult{Skipped: true, Reason: "daily_limit_reached"}
		}
	}

	// 4. Quiet hours. High and urgent payloads go out immediately.
	if !urgent && prefs.QuietHoursEnabled {
		if slot, delayed := d.nextAllowedTime(prefs, now); delayed {
			n.ScheduledFor = &slot
			log.Infof("notification delayed to %s by quiet hours", slot.Format(time.RFC3339))
		}
	}
	if n.ScheduledFor == nil {
		n.ScheduledFor = &now
	}

	// 5. Persistence.
	if err := d.store.Save(n); err != nil {
		log.Error("failed to persist notification:", err)
		return DispatchResult{Reason: "storage_error"}
	}
	return DispatchResult{Sent: true, ScheduledFor: n.ScheduledFor}
}

// maybeUpsell emits at most one upgrade prompt per cooldown window.
func (d *Dispatcher) maybeUpsell(userID string, now time.Time, log *logrus.Entry) {
	last, err := d.store.LastUpsellAt(userID)
	if err != nil {
		log.Warn("could not check last upsell:", err)
		return
	}
	if last != nil && now.Sub(*last) < d.cfg.UpsellCooldown {
		return
	}
	upsell := types.Notification{
		UserID:       userID,
		Title:        "You've hit today's AI limit",
		Body:         "Free plans get 2 AI notifications per day. Upgrade to Pro for unlimited insights.",
		Priority:     types.DecisionPriorityHigh,
		Category:     types.CategoryUpsell,
		Reason:       "daily_limit_reached",
		ScheduledFor: &now,
	}
	if err := d.store.Save(upsell); err != nil {
		log.Warn("failed to record upsell notification:", err)
	}
}

// nextAllowedTime searches forward in 15-minute steps, hard-bounded to
// ~48h, for the first instant outside the user's quiet window. The bool
// reports whether the payload actually moved.
func (d *Dispatcher) nextAllowedTime(prefs types.UserPreferences, now time.Time) (time.Time, bool) {
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil || prefs.Timezone == "" {
		loc = time.UTC
	}

	for i := 0; i <= d.cfg.QuietSearchSteps; i++ {
		candidate := now.Add(time.Duration(i) * d.cfg.QuietSearchStep)
		if !InQuietWindow(candidate.In(loc), prefs.QuietStart, prefs.QuietEnd) {
			return candidate, i > 0
		}
	}
	// Bound exhausted: send at the original time rather than hold forever.
	return now, false
}

// InQuietWindow reports whether the local time t falls inside the quiet
// window. Same-day windows (start < end) block strictly between the bounds;
// overnight windows (start > end) block from start through midnight to end.
func InQuietWindow(t time.Time, start, end string) bool {
	startMins, err := parseClock(start)
	if err != nil {
		return false
	}
	endMins, err := parseClock(end)
	if err != nil {
		return false
	}
	if startMins == endMins {
		return false
	}

	mins := t.Hour()*60 + t.Minute()
	if startMins < endMins {
		return mins > startMins && mins < endMins
	}
	return mins >= startMins || mins < endMins
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}
