package types

import (
	"fmt"
	"time"
)

type DecisionType string

const (
	DecisionSuggestReschedule DecisionType = "suggest_reschedule"
	DecisionSuggestFocusBlock DecisionType = "suggest_focus_block"
	DecisionSuggestBreak      DecisionType = "suggest_break"
	DecisionWarnConflict      DecisionType = "warn_conflict"
	DecisionWarnOverload      DecisionType = "warn_overload"
	DecisionRecommendAction   DecisionType = "recommend_action"
)

type DecisionPriority string

const (
	DecisionPriorityLow    DecisionPriority = "low"
	DecisionPriorityNormal DecisionPriority = "normal"
	DecisionPriorityHigh   DecisionPriority = "high"
	DecisionPriorityUrgent DecisionPriority = "urgent"
)

// Payload variants. Exactly one is non-nil on a Decision, matching its Type.

type ReschedulePayload struct {
	TaskIDs    []string  `json:"task_ids"`
	TargetDate time.Time `json:"target_date"`
}

type FocusBlockPayload struct {
	StartsAt time.Time `json:"starts_at"`
	Minutes  int       `json:"minutes"`
	TaskIDs  []string  `json:"task_ids"`
}

type BreakPayload struct {
	AfterEventID string `json:"after_event_id"`
	GapMinutes   int    `json:"gap_minutes"`
}

type ConflictPayload struct {
	Kind          string `json:"kind"` // time_overlap | travel_gap
	FirstEventID  string `json:"first_event_id"`
	SecondEventID string `json:"second_event_id"`
}

type OverloadPayload struct {
	WorkloadMinutes  int  `json:"workload_minutes"`
	AvailableMinutes int  `json:"available_minutes"`
	OverdueCount     int  `json:"overdue_count,omitempty"`
	ActNow           bool `json:"act_now,omitempty"`
}

type ActionPayload struct {
	Recommendation string `json:"recommendation"`
}

// Decision is a concrete, typed record ready to present to a user for
// approval. It is a closed union: Type selects which payload field is set.
type Decision struct {
	UserID      string           `json:"user_id,omitempty"`
	Type        DecisionType     `json:"decision_type"`
	Explanation string           `json:"explanation"`
	Confidence  float64          `json:"confidence"`
	Priority    DecisionPriority `json:"priority"`
	CreatedAt   time.Time        `json:"created_at,omitempty"`

	Reschedule *ReschedulePayload `json:"reschedule,omitempty"`
	FocusBlock *FocusBlockPayload `json:"focus_block,omitempty"`
	Break      *BreakPayload      `json:"break,omitempty"`
	Conflict   *ConflictPayload   `json:"conflict,omitempty"`
	Overload   *OverloadPayload   `json:"overload,omitempty"`
	Action     *ActionPayload     `json:"action,omitempty"`
}

// Validate checks that the payload matches the declared type.
func (d Decision) Validate() error {
	var ok bool
	switch d.Type {
	case DecisionSuggestReschedule:
		ok = d.Reschedule != nil
	case DecisionSuggestFocusBlock:
		ok = d.FocusBlock != nil
	case DecisionSuggestBreak:
		ok = d.Break != nil
	case DecisionWarnConflict:
		ok = d.Conflict != nil
	case DecisionWarnOverload:
		ok = d.Overload != nil
	case DecisionRecommendAction:
		ok = d.Action != nil
	default:
		return fmt.Errorf("unknown decision type %q", d.Type)
	}
	if !ok {
		return fmt.Errorf("decision type %q is missing its payload", d.Type)
	}
	return nil
}
