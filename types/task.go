package types

import "time"

// User-set priority on a task. "urgent" is accepted from older clients and
// scores the same as "high".
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	StatusPending  TaskStatus = "pending"
	StatusActive   TaskStatus = "active"
	StatusDone     TaskStatus = "done"
	StatusArchived TaskStatus = "archived"
)

// SourceIntent records what kind of capture produced the task.
type SourceIntent string

const (
	SourceIntentTask     SourceIntent = "task"
	SourceIntentReminder SourceIntent = "reminder"
	SourceIntentEvent    SourceIntent = "event"
)

// TaskSource is the capture channel, which drives deadline confidence.
type TaskSource string

const (
	TaskSourceManual TaskSource = "manual"
	TaskSourceVoice  TaskSource = "voice"
	TaskSourceAI     TaskSource = "ai"
)

// Derived classification enums. These are views recomputed on every
// classification call, not independently persisted facts.
type AIPriority string

const (
	AIPriorityLow    AIPriority = "low"
	AIPriorityMedium AIPriority = "medium"
	AIPriorityHigh   AIPriority = "high"
)

type EnergyCost string

const (
	EnergyLow    EnergyCost = "low"
	EnergyMedium EnergyCost = "medium"
	EnergyHigh   EnergyCost = "high"
)

type TimeFlexibility string

const (
	FlexFixed    TimeFlexibility = "fixed"
	FlexSemi     TimeFlexibility = "semi"
	FlexFlexible TimeFlexibility = "flexible"
)

type DeadlineConfidence string

const (
	ConfidenceStrong   DeadlineConfidence = "strong"
	ConfidenceWeak     DeadlineConfidence = "weak"
	ConfidenceInferred DeadlineConfidence = "inferred"
)

type WorkflowState string

const (
	StateInbox     WorkflowState = "inbox"
	StatePlanned   WorkflowState = "planned"
	StateSuggested WorkflowState = "suggested"
	StateAutoReady WorkflowState = "auto_ready"
	StateCompleted WorkflowState = "completed"
)

type Task struct {
	ID               string             `json:"id,omitempty"`
	UserID           string             `json:"user_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	Priority         Priority           `json:"priority"`
	Status           TaskStatus         `json:"status"`
	DueDate          *time.Time         `json:"due_date,omitempty"`
	EstimatedMinutes *int               `json:"estimated_minutes,omitempty"`
	SourceIntent     *SourceIntent      `json:"source_intent,omitempty"`
	Source           TaskSource         `json:"source,omitempty"`
	AIPriority       AIPriority         `json:"ai_priority,omitempty"`
	EnergyCost       EnergyCost         `json:"energy_cost,omitempty"`
	TimeFlexibility  TimeFlexibility    `json:"time_flexibility,omitempty"`
	Confidence       DeadlineConfidence `json:"deadline_confidence,omitempty"`
	WorkflowState    WorkflowState      `json:"workflow_state,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// IsOpen reports whether the task still needs doing.
func (t Task) IsOpen() bool {
	return t.Status != StatusDone && t.Status != StatusArchived
}

// IsEventSourced reports whether the task was captured from a calendar event.
func (t Task) IsEventSourced() bool {
	return t.SourceIntent != nil && *t.SourceIntent == SourceIntentEvent
}

// WorkflowDecision is the classifier's output for a single task, intended to
// be written back onto the task's derived fields.
type WorkflowDecision struct {
	TaskID             string             `json:"task_id"`
	AIPriority         AIPriority         `json:"ai_priority"`
	EnergyCost         EnergyCost         `json:"energy_cost"`
	TimeFlexibility    TimeFlexibility    `json:"time_flexibility"`
	DeadlineConfidence DeadlineConfidence `json:"deadline_confidence"`
	WorkflowState      WorkflowState      `json:"workflow_state"`
	Score              int                `json:"score"`
	Explanation        string             `json:"explanation"`
	Warnings           []string           `json:"warnings,omitempty"`
}

// DayLoad summarizes how full a single date is.
type DayLoad struct {
	Date         time.Time `json:"date"`
	TaskCount    int       `json:"task_count"`
	TotalMinutes int       `json:"total_minutes"`
	CapacityMins int       `json:"capacity_minutes"`
	LoadPercent  float64   `json:"load_percent"`
	IsOverloaded bool      `json:"is_overloaded"`
}
