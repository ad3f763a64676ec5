package config

import "time"

// PipelineConfig holds the behavioral constants the decision pipeline keys
// off. Values are load-bearing: changing them changes classification,
// gating and dedup behavior for every user.
type PipelineConfig struct {
	// Workday capacity used by day-load analysis, minutes.
	DayCapacityMinutes int
	// A day is overloaded once load exceeds this percentage of capacity.
	OverloadPercent float64
	// Default duration assumed for a task with no estimate, minutes.
	DefaultTaskMinutes int
	// Approvals older than this are "stale" and drop down the now-ladder.
	StaleApprovalAge time.Duration
	// Free-tier users get at most this many AI notifications per day.
	FreeTierDailyCap int
	// Quiet-hours forward search: step size and hard iteration bound.
	QuietSearchStep  time.Duration
	QuietSearchSteps int
	// How long one upsell notification suppresses the next.
	UpsellCooldown time.Duration
	// Insight runs with an identical context hash inside this window are
	// skipped as duplicates.
	DedupWindow time.Duration
}

var Pipeline = PipelineConfig{
	DayCapacityMinutes: 480,
	OverloadPercent:    80,
	DefaultTaskMinutes: 30,
	StaleApprovalAge:   24 * time.Hour,
	FreeTierDailyCap:   2,
	QuietSearchStep:    15 * time.Minute,
	QuietSearchSteps:   192, // ~48h of 15-minute steps
	UpsellCooldown:     24 * time.Hour,
	DedupWindow:        24 * time.Hour,
}

// Confidence thresholds shared across the intent pipeline.
const (
	// Bare confirmation phrases below this are treated as clarification.
	ConfirmationFloor = 0.3
	// Below this the parser itself downgrades to clarification.
	ClarificationFloor = 0.4
	// Safe Mode: anything under this never executes without approval.
	SafeModeFloor = 0.6
	// Language-aware execution thresholds used by the upstream parser.
	LanguageExecutionFloor = 0.7
	// At or above this the execution classifier may act directly.
	HighConfidenceFloor = 0.9
)
