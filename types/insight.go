package types

import "time"

type RiskType string

const (
	RiskOverload    RiskType = "overload"
	RiskDeadline    RiskType = "deadline"
	RiskUnrealistic RiskType = "unrealistic"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Risk struct {
	Type     RiskType `json:"type"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

type ConflictKind string

const (
	ConflictTimeOverlap ConflictKind = "time_overlap"
	ConflictTravelGap   ConflictKind = "travel_gap"
)

type EventConflict struct {
	Kind        ConflictKind `json:"kind"`
	FirstEvent  Event        `json:"first_event"`
	SecondEvent Event        `json:"second_event"`
	GapMinutes  int          `json:"gap_minutes,omitempty"`
	Detail      string       `json:"detail"`
}

type OpportunityType string

const (
	OpportunityFocusBlock OpportunityType = "focus_block"
	OpportunityReschedule OpportunityType = "reschedule"
	OpportunityBreak      OpportunityType = "break"
)

type Opportunity struct {
	Type   OpportunityType `json:"type"`
	Detail string          `json:"detail"`
}

// TaskRank is one entry of the ranked priority list, highest score first.
type TaskRank struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Score  int    `json:"score"`
}

// Insight is the Reasoner's full read of one context snapshot.
type Insight struct {
	UserID          string          `json:"user_id"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Risks           []Risk          `json:"risks,omitempty"`
	Conflicts       []EventConflict `json:"conflicts,omitempty"`
	Opportunities   []Opportunity   `json:"opportunities,omitempty"`
	Priorities      []TaskRank      `json:"priorities,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	Summary         string          `json:"summary"`
}

// NowSelection is the Priority Selector's single "what to do right now"
// answer.
type NowSelection struct {
	Type     string        `json:"type"` // plan | task | empty
	TaskID   string        `json:"task_id,omitempty"`
	Approval *ApprovalItem `json:"approval,omitempty"`
	Title    string        `json:"title,omitempty"`
	Reason   string        `json:"reason"`
	Priority int           `json:"priority"`
}
