package engine

import (
	"reflect"
	"testing"
	"time"

	"tasksense/assistant/types"
)

var testNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func taskDueIn(d time.Duration) *time.Time {
	t := testNow.Add(d)
	return &t
}

func intPtr(n int) *int { return &n }

func srcIntent(s types.SourceIntent) *types.SourceIntent { return &s }

func TestClassifyHighPriorityDueSoon(t *testing.T) {
	task := types.Task{
		ID:        "t1",
		Title:     "Finish quarterly numbers",
		Priority:  types.PriorityHigh,
		Status:    types.StatusPending,
		DueDate:   taskDueIn(time.Hour),
		Source:    types.TaskSourceManual,
		CreatedAt: testNow.Add(-10 * time.Minute),
	}

	dec := ClassifyTask(task, []types.Task{task}, testNow)

	// 35 (due within 2h) + 30 (high) + 0 (age) + 0 (source)
	if dec.Score != 65 {
		t.Fatalf("expected score 65, got %d", dec.Score)
	}
	if dec.AIPriority != types.AIPriorityHigh {
		t.Errorf("expected high ai_priority, got %s", dec.AIPriority)
	}
	if dec.DeadlineConfidence != types.ConfidenceStrong {
		t.Errorf("expected strong confidence, got %s", dec.DeadlineConfidence)
	}
	if dec.TimeFlexibility != types.FlexFixed {
		t.Errorf("expected fixed flexibility, got %s", dec.TimeFlexibility)
	}
	if !hasWarning(dec.Warnings, "due within 2 hours") {
		t.Errorf("expected due-soon warning, got %v", dec.Warnings)
	}
}

func TestDoneTaskAlwaysCompleted(t *testing.T) {
	task := types.Task{
		ID:           "t1",
		Title:        "Design new landing page",
		Priority:     types.PriorityHigh,
		Status:       types.StatusDone,
		DueDate:      taskDueIn(-48 * time.Hour),
		SourceIntent: srcIntent(types.SourceIntentEvent),
		CreatedAt:    testNow.Add(-10 * 24 * time.Hour),
	}

	dec := ClassifyTask(task, []types.Task{task}, testNow)
	if dec.WorkflowState != types.StateCompleted {
		t.Fatalf("done task must classify as completed, got %s", dec.WorkflowState)
	}
}

func TestClassifyNoDueDate(t *testing.T) {
	task := types.Task{
		ID:        "t1",
		Title:     "Think about vacation",
		Priority:  types.PriorityLow,
		Status:    types.StatusPending,
		CreatedAt: testNow.Add(-time.Hour),
	}

	dec := ClassifyTask(task, []types.Task{task}, testNow)
	if !hasWarning(dec.Warnings, "no deadline") {
		t.Errorf("expected no-deadline warning, got %v", dec.Warnings)
	}
	if dec.WorkflowState != types.StateInbox {
		t.Errorf("undated low-priority task belongs in inbox, got %s", dec.WorkflowState)
	}
	if dec.DeadlineConfidence != types.ConfidenceInferred {
		t.Errorf("no due date must infer confidence, got %s", dec.DeadlineConfidence)
	}
	if dec.TimeFlexibility != types.FlexFlexible {
		t.Errorf("no due date must be flexible, got %s", dec.TimeFlexibility)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	task := types.Task{
		ID:           "t1",
		Title:        "Write launch email",
		Priority:     types.PriorityMedium,
		Status:       types.StatusPending,
		DueDate:      taskDueIn(5 * time.Hour),
		SourceIntent: srcIntent(types.SourceIntentReminder),
		Source:       types.TaskSourceVoice,
		CreatedAt:    testNow.Add(-4 * 24 * time.Hour),
	}
	all := []types.Task{task}

	first := ClassifyTask(task, all, testNow)
	second := ClassifyTask(task, all, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("classification is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestEnergyCost(t *testing.T) {
	cases := []struct {
		name     string
		title    string
		estimate *int
		want     types.EnergyCost
	}{
		{"high keyword wins", "Design the onboarding flow", intPtr(10), types.EnergyHigh},
		{"low keyword", "Quick call with Sam", nil, types.EnergyLow},
		{"high checked before low", "Review and send the report", nil, types.EnergyHigh},
		{"duration fallback high", "Tidy the garage", intPtr(150), types.EnergyHigh},
		{"duration fallback low", "Water plants", intPtr(20), types.EnergyLow},
		{"no signal", "Dentist", nil, types.EnergyMedium},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := types.Task{Title: tc.title, EstimatedMinutes: tc.estimate}
			if got := energyCost(task); got != tc.want {
				t.Errorf("energyCost(%q) = %s, want %s", tc.title, got, tc.want)
			}
		})
	}
}

func TestTimeFlexibility(t *testing.T) {
	eventTask := types.Task{
		DueDate:      taskDueIn(100 * time.Hour),
		SourceIntent: srcIntent(types.SourceIntentEvent),
	}
	if got := timeFlexibility(eventTask, testNow); got != types.FlexFixed {
		t.Errorf("event-sourced task must be fixed, got %s", got)
	}

	cases := []struct {
		due  time.Duration
		want types.TimeFlexibility
	}{
		{10 * time.Hour, types.FlexFixed},
		{48 * time.Hour, types.FlexSemi},
		{100 * time.Hour, types.FlexFlexible},
	}
	for _, tc := range cases {
		task := types.Task{DueDate: taskDueIn(tc.due)}
		if got := timeFlexibility(task, testNow); got != tc.want {
			t.Errorf("due in %s: got %s, want %s", tc.due, got, tc.want)
		}
	}
}

func TestDeadlineConfidence(t *testing.T) {
	due := taskDueIn(24 * time.Hour)
	cases := []struct {
		name string
		task types.Task
		want types.DeadlineConfidence
	}{
		{"event sourced", types.Task{DueDate: due, SourceIntent: srcIntent(types.SourceIntentEvent)}, types.ConfidenceStrong},
		{"manual", types.Task{DueDate: due, Source: types.TaskSourceManual}, types.ConfidenceStrong},
		{"voice", types.Task{DueDate: due, Source: types.TaskSourceVoice}, types.ConfidenceWeak},
		{"ai", types.Task{DueDate: due, Source: types.TaskSourceAI}, types.ConfidenceWeak},
		{"no due date", types.Task{Source: types.TaskSourceManual}, types.ConfidenceInferred},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deadlineConfidence(tc.task); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDayLoadBoundary(t *testing.T) {
	date := testNow.Add(26 * time.Hour)

	build := func(total int) []types.Task {
		return []types.Task{
			{ID: "a", Status: types.StatusPending, DueDate: &date, EstimatedMinutes: intPtr(total - 100)},
			{ID: "b", Status: types.StatusPending, DueDate: &date, EstimatedMinutes: intPtr(100)},
		}
	}

	at384 := AnalyzeDayLoad(build(384), date)
	if at384.IsOverloaded {
		t.Errorf("384 minutes is exactly 80%% and must not be overloaded (load %.2f%%)", at384.LoadPercent)
	}
	at385 := AnalyzeDayLoad(build(385), date)
	if !at385.IsOverloaded {
		t.Errorf("385 minutes must be overloaded (load %.2f%%)", at385.LoadPercent)
	}
}

func TestDayLoadDefaultsAndFilters(t *testing.T) {
	date := testNow.Add(26 * time.Hour)
	otherDay := testNow.Add(80 * time.Hour)
	tasks := []types.Task{
		{ID: "a", Status: types.StatusPending, DueDate: &date},                             // default 30
		{ID: "b", Status: types.StatusPending, DueDate: &date, EstimatedMinutes: intPtr(60)},
		{ID: "c", Status: types.StatusDone, DueDate: &date, EstimatedMinutes: intPtr(500)}, // done, ignored
		{ID: "d", Status: types.StatusPending, DueDate: &otherDay, EstimatedMinutes: intPtr(500)},
		{ID: "e", Status: types.StatusPending}, // no due date
	}

	load := AnalyzeDayLoad(tasks, date)
	if load.TaskCount != 2 {
		t.Errorf("expected 2 tasks counted, got %d", load.TaskCount)
	}
	if load.TotalMinutes != 90 {
		t.Errorf("expected 90 total minutes, got %d", load.TotalMinutes)
	}
}

func TestWorkflowStateOverloadedDayGetsSuggested(t *testing.T) {
	due := testNow.Add(20 * time.Hour)
	task := types.Task{
		ID:        "t1",
		Title:     "Prep meeting notes",
		Priority:  types.PriorityMedium,
		Status:    types.StatusPending,
		DueDate:   &due,
		Source:    types.TaskSourceManual,
		CreatedAt: testNow.Add(-time.Hour),
	}
	// 15 (<=24h) + 15 (medium) = 30: medium priority, strong confidence.
	filler := types.Task{
		ID: "filler", Status: types.StatusPending, DueDate: &due,
		EstimatedMinutes: intPtr(400),
	}

	dec := ClassifyTask(task, []types.Task{task, filler}, testNow)
	if dec.WorkflowState != types.StateSuggested {
		t.Fatalf("overloaded day should yield suggested, got %s", dec.WorkflowState)
	}
	if len(dec.Warnings) == 0 {
		t.Error("expected an overload warning")
	}

	decLight := ClassifyTask(task, []types.Task{task}, testNow)
	if decLight.WorkflowState != types.StatePlanned {
		t.Fatalf("light day should yield planned, got %s", decLight.WorkflowState)
	}
}

func TestWorkflowStateAutoReady(t *testing.T) {
	task := types.Task{
		ID:            "t1",
		Title:         "Standup",
		Priority:      types.PriorityHigh,
		Status:        types.StatusPending,
		SourceIntent:  srcIntent(types.SourceIntentEvent),
		WorkflowState: types.StateSuggested,
		CreatedAt:     testNow.Add(-8 * 24 * time.Hour),
	}
	// 30 (high) + 20 (age) + 10 (event) = 60: high, fixed, inferred.

	dec := ClassifyTask(task, []types.Task{task}, testNow)
	if dec.WorkflowState != types.StateAutoReady {
		t.Fatalf("fixed high-priority task should be auto_ready, got %s", dec.WorkflowState)
	}
}

func hasWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}
