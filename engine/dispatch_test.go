package engine

import (
	"errors"
	"testing"
	"time"

	"tasksense/assistant/types"
)

// fakeNotificationStore keeps everything in memory and tracks upsells by
// watching Save, the same way the real table would.
type fakeNotificationStore struct {
	saved      []types.Notification
	todayCount int
	countErr   error
	saveErr    error
	lastUpsell *time.Time
}

func (f *fakeNotificationStore) CountDispatchedToday(userID string, category types.NotificationCategory, now time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.todayCount, nil
}

func (f *fakeNotificationStore) LastUpsellAt(userID string) (*time.Time, error) {
	return f.lastUpsell, nil
}

func (f *fakeNotificationStore) Save(n types.Notification) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, n)
	if n.Category == types.CategoryUpsell {
		t := *n.ScheduledFor
		f.lastUpsell = &t
	}
	return nil
}

func (f *fakeNotificationStore) countSaved(category types.NotificationCategory) int {
	n := 0
	for _, saved := range f.saved {
		if saved.Category == category {
			n++
		}
	}
	return n
}

func insightNotification(priority types.DecisionPriority) types.Notification {
	return types.Notification{
		UserID:   "u1",
		Title:    "Heads up",
		Body:     "Your afternoon is overbooked.",
		Priority: priority,
		Category: types.CategoryAIInsight,
	}
}

func TestDispatchOptOut(t *testing.T) {
	store := &fakeNotificationStore{}
	prefs := testPrefs()
	prefs.AIOptIn = false

	res := NewDispatcher(store).Dispatch(prefs, insightNotification(types.DecisionPriorityUrgent), testNow)

	if !res.Skipped || res.Reason != "ai_opt_out" {
		t.Errorf("expected ai_opt_out skip, got %+v", res)
	}
	if len(store.saved) != 0 {
		t.Errorf("nothing should be persisted for an opted-out user")
	}
}

func TestDispatchFreeTierPriorityFloor(t *testing.T) {
	store := &fakeNotificationStore{}

	res := NewDispatcher(store).Dispatch(testPrefs(), insightNotification(types.DecisionPriorityNormal), testNow)

	if !res.Skipped || res.Reason != "low_priority_for_free_tier" {
		t.Errorf("normal priority on a free plan must be suppressed, got %+v", res)
	}
}

func TestDispatchProTierIgnoresFloorAndCap(t *testing.T) {
	store := &fakeNotificationStore{todayCount: 10}
	prefs := testPrefs()
	prefs.PlanTier = types.PlanPro

	res := NewDispatcher(store).Dispatch(prefs, insightNotification(types.DecisionPriorityNormal), testNow)

	if !res.Sent {
		t.Fatalf("pro plan should bypass the free-tier gates, got %+v", res)
	}
	if res.ScheduledFor == nil || !res.ScheduledFor.Equal(testNow) {
		t.Errorf("sent-now notifications should be scheduled for now, got %v", res.ScheduledFor)
	}
}

func TestDispatchDailyCapEmitsOneUpsell(t *testing.T) {
	store := &fakeNotificationStore{todayCount: 2}
	d := NewDispatcher(store)

	res := d.Dispatch(testPrefs(), insightNotification(types.DecisionPriorityHigh), testNow)
	if !res.Skipped || res.Reason != "daily_limit_reached" {
		t.Fatalf("third insight of the day must be capped, got %+v", res)
	}
	if store.countSaved(types.CategoryUpsell) != 1 {
		t.Fatalf("expected exactly one upsell, got %d", store.countSaved(types.CategoryUpsell))
	}

	// A fourth attempt inside the cooldown stays capped without another upsell.
	res = d.Dispatch(testPrefs(), insightNotification(types.DecisionPriorityHigh), testNow.Add(time.Hour))
	if !res.Skipped || res.Reason != "daily_limit_reached" {
		t.Fatalf("still capped, got %+v", res)
	}
	if store.countSaved(types.CategoryUpsell) != 1 {
		t.Errorf("upsell repeated inside the cooldown, got %d", store.countSaved(types.CategoryUpsell))
	}
}

func TestDispatchUpsellRepeatsAfterCooldown(t *testing.T) {
	stale := testNow.Add(-25 * time.Hour)
	store := &fakeNotificationStore{todayCount: 2, lastUpsell: &stale}

	NewDispatcher(store).Dispatch(testPrefs(), insightNotification(types.DecisionPriorityHigh), testNow)

	if store.countSaved(types.CategoryUpsell) != 1 {
		t.Errorf("a day-old upsell should not block a new one, got %d", store.countSaved(types.CategoryUpsell))
	}
}

func TestDispatchCountErrorAllowsThrough(t *testing.T) {
	store := &fakeNotificationStore{countErr: errors.New("table offline")}

	res := NewDispatcher(store).Dispatch(testPrefs(), insightNotification(types.DecisionPriorityHigh), testNow)

	if !res.Sent {
		t.Errorf("a counting failure must not drop the notification, got %+v", res)
	}
}

func TestDispatchQuietHoursDelay(t *testing.T) {
	prefs := testPrefs()
	prefs.PlanTier = types.PlanPro
	prefs.QuietHoursEnabled = true
	prefs.QuietStart = "22:00"
	prefs.QuietEnd = "08:00"

	cases := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "late evening waits for morning",
			at:   time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "just before the window opens",
			at:   time.Date(2026, 8, 28, 7, 59, 0, 0, time.UTC),
			want: time.Date(2026, 8, 28, 8, 14, 0, 0, time.UTC),
		},
		{
			name: "mid-morning goes out immediately",
			at:   time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeNotificationStore{}
			res := NewDispatcher(store).Dispatch(prefs, insightNotification(types.DecisionPriorityNormal), tc.at)
			if !res.Sent {
				t.Fatalf("quiet hours delay, not drop: %+v", res)
			}
			if res.ScheduledFor == nil || !res.ScheduledFor.Equal(tc.want) {
				t.Errorf("scheduled for %v, want %s", res.ScheduledFor, tc.want)
			}
		})
	}
}

func TestDispatchUrgentBypassesQuietHours(t *testing.T) {
	prefs := testPrefs()
	prefs.QuietHoursEnabled = true
	prefs.QuietStart = "22:00"
	prefs.QuietEnd = "08:00"
	at := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)

	store := &fakeNotificationStore{}
	res := NewDispatcher(store).Dispatch(prefs, insightNotification(types.DecisionPriorityUrgent), at)

	if !res.Sent || !res.ScheduledFor.Equal(at) {
		t.Errorf("urgent payloads go out immediately, got %+v", res)
	}
}

func TestDispatchStorageError(t *testing.T) {
	store := &fakeNotificationStore{saveErr: errors.New("insert failed")}

	res := NewDispatcher(store).Dispatch(testPrefs(), insightNotification(types.DecisionPriorityHigh), testNow)

	if res.Sent || res.Reason != "storage_error" {
		t.Errorf("expected storage_error, got %+v", res)
	}
}

func TestInQuietWindow(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 8, 28, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name       string
		t          time.Time
		start, end string
		want       bool
	}{
		{"overnight late evening", at(23, 0), "22:00", "08:00", true},
		{"overnight early morning", at(7, 59), "22:00", "08:00", true},
		{"overnight at start", at(22, 0), "22:00", "08:00", true},
		{"overnight at end", at(8, 0), "22:00", "08:00", false},
		{"overnight midday", at(12, 0), "22:00", "08:00", false},
		{"same day inside", at(13, 0), "12:00", "14:00", true},
		{"same day at start", at(12, 0), "12:00", "14:00", false},
		{"same day at end", at(14, 0), "12:00", "14:00", false},
		{"degenerate window", at(12, 0), "12:00", "12:00", false},
		{"unparseable start", at(12, 0), "noon", "14:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InQuietWindow(tc.t, tc.start, tc.end); got != tc.want {
				t.Errorf("InQuietWindow(%s, %s, %s) = %v, want %v",
					tc.t.Format("15:04"), tc.start, tc.end, got, tc.want)
			}
		})
	}
}
