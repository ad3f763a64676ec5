package engine

import (
	"testing"
	"time"

	"tasksense/assistant/types"
)

func findDecision(decisions []types.Decision, kind types.DecisionType) *types.Decision {
	for i := range decisions {
		if decisions[i].Type == kind {
			return &decisions[i]
		}
	}
	return nil
}

func TestDeadlineRiskBecomesUrgentWarning(t *testing.T) {
	ctx := types.Context{
		UserID: "u1",
		Now:    testNow,
		TasksOverdue: []types.Task{
			{ID: "a", Status: types.StatusPending, DueDate: taskDueIn(-time.Hour)},
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	warn := findDecision(decisions, types.DecisionWarnOverload)
	if warn == nil {
		t.Fatal("expected a warn_overload decision for the deadline risk")
	}
	if warn.Confidence != 1.0 || warn.Priority != types.DecisionPriorityUrgent {
		t.Errorf("deadline warning must be urgent at full confidence, got %+v", warn)
	}
	if warn.Overload == nil || !warn.Overload.ActNow || warn.Overload.OverdueCount != 1 {
		t.Errorf("payload wrong: %+v", warn.Overload)
	}
	if err := warn.Validate(); err != nil {
		t.Errorf("decision failed validation: %v", err)
	}
}

func TestOverloadWithFlexibleTasksSuggestsReschedule(t *testing.T) {
	ctx := types.Context{
		UserID:           "u1",
		Now:              testNow,
		IsOverloaded:     true,
		WorkloadMinutes:  500,
		AvailableMinutes: 400,
		TasksDueToday: []types.Task{
			{ID: "flex1", Priority: types.PriorityLow, TimeFlexibility: types.FlexFlexible, Status: types.StatusPending},
			{ID: "flex2", Priority: types.PriorityMedium, TimeFlexibility: types.FlexFlexible, Status: types.StatusPending},
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	resched := findDecision(decisions, types.DecisionSuggestReschedule)
	if resched == nil {
		t.Fatal("expected a reschedule suggestion")
	}
	wantTomorrow := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !resched.Reschedule.TargetDate.Equal(wantTomorrow) {
		t.Errorf("target date = %s, want %s", resched.Reschedule.TargetDate, wantTomorrow)
	}
	if len(resched.Reschedule.TaskIDs) != 2 {
		t.Errorf("expected both flexible tasks, got %v", resched.Reschedule.TaskIDs)
	}
}

func TestOverloadWithoutFlexibleTasksWarns(t *testing.T) {
	ctx := types.Context{
		UserID:           "u1",
		Now:              testNow,
		IsOverloaded:     true,
		WorkloadMinutes:  500,
		AvailableMinutes: 400,
		TasksDueToday: []types.Task{
			{ID: "fixed", Priority: types.PriorityHigh, TimeFlexibility: types.FlexFixed, Status: types.StatusPending},
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	if findDecision(decisions, types.DecisionSuggestReschedule) != nil {
		t.Fatal("nothing flexible, reschedule must not be offered")
	}
	if findDecision(decisions, types.DecisionWarnOverload) == nil {
		t.Fatal("expected a plain overload warning")
	}
}

func TestConflictDecision(t *testing.T) {
	ctx := types.Context{
		UserID: "u1",
		Now:    testNow,
		EventsToday: []types.Event{
			eventAt("e1", testNow.Add(time.Hour), 90, ""),
			eventAt("e2", testNow.Add(2*time.Hour), 60, ""),
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	conflict := findDecision(decisions, types.DecisionWarnConflict)
	if conflict == nil {
		t.Fatal("expected a conflict warning")
	}
	if conflict.Confidence != 0.95 || conflict.Priority != types.DecisionPriorityHigh {
		t.Errorf("conflict decision should be 0.95/high, got %+v", conflict)
	}
	if conflict.Conflict.FirstEventID != "e1" || conflict.Conflict.SecondEventID != "e2" {
		t.Errorf("conflict payload wrong: %+v", conflict.Conflict)
	}
}

func TestFocusSlotSearch(t *testing.T) {
	prefs := testPrefs()
	prefs.FocusBlockMinutes = 60
	ctx := types.Context{
		UserID:      "u1",
		Now:         testNow.Add(20 * time.Minute), // 10:20
		Preferences: prefs,
		EventsToday: []types.Event{
			eventAt("busy", testNow.Add(time.Hour), 60, ""), // 11:00-12:00
		},
	}

	slot := FindFocusSlot(ctx)
	if slot == nil {
		t.Fatal("expected a focus slot")
	}
	want := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if !slot.Equal(want) {
		t.Errorf("slot = %s, want %s", slot, want)
	}
}

func TestFocusSlotRespectsWorkdayEnd(t *testing.T) {
	prefs := testPrefs()
	prefs.FocusBlockMinutes = 120
	ctx := types.Context{
		UserID:      "u1",
		Now:         time.Date(2026, 8, 28, 16, 10, 0, 0, time.UTC),
		Preferences: prefs,
	}

	if slot := FindFocusSlot(ctx); slot != nil {
		t.Fatalf("no 2h slot fits before 17:00, got %s", slot)
	}
}

func TestFocusBlockDecisionCarriesTopTasks(t *testing.T) {
	prefs := testPrefs()
	ctx := types.Context{
		UserID:      "u1",
		Now:         testNow,
		Preferences: prefs,
		TasksDueToday: []types.Task{
			{ID: "a", Priority: types.PriorityHigh, Status: types.StatusPending},
			{ID: "b", Priority: types.PriorityUrgent, Status: types.StatusPending},
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	focus := findDecision(decisions, types.DecisionSuggestFocusBlock)
	if focus == nil {
		t.Fatal("expected a focus block decision")
	}
	if len(focus.FocusBlock.TaskIDs) != 2 {
		t.Errorf("expected the ranked task IDs, got %v", focus.FocusBlock.TaskIDs)
	}
	if focus.FocusBlock.Minutes != prefs.FocusBlockMinutes {
		t.Errorf("minutes = %d, want %d", focus.FocusBlock.Minutes, prefs.FocusBlockMinutes)
	}
}

func TestBreakDecisionFollowsShortestGap(t *testing.T) {
	ctx := types.Context{
		UserID: "u1",
		Now:    testNow,
		EventsToday: []types.Event{
			eventAt("e1", testNow.Add(time.Hour), 60, ""),                 // ends 12:00
			eventAt("e2", testNow.Add(2*time.Hour+10*time.Minute), 60, ""), // gap 10
			eventAt("e3", testNow.Add(4*time.Hour), 60, ""),               // gap 50
		},
	}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	brk := findDecision(decisions, types.DecisionSuggestBreak)
	if brk == nil {
		t.Fatal("expected a break suggestion")
	}
	if brk.Break.AfterEventID != "e1" || brk.Break.GapMinutes != 10 {
		t.Errorf("break should follow the 10-minute gap after e1, got %+v", brk.Break)
	}
}

func TestLeftoverRecommendationBecomesAction(t *testing.T) {
	ctx := types.Context{UserID: "u1", Now: testNow}
	insight := Reason(ctx)
	decisions := Decide(insight, ctx)

	if len(decisions) != 1 {
		t.Fatalf("quiet context should yield one decision, got %d: %+v", len(decisions), decisions)
	}
	action := decisions[0]
	if action.Type != types.DecisionRecommendAction || action.Confidence != 0.8 {
		t.Errorf("expected a recommend_action at 0.8, got %+v", action)
	}
	if action.Action == nil || action.Action.Recommendation != defaultRecommendation {
		t.Errorf("payload wrong: %+v", action.Action)
	}
}
