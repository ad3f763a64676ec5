package types

import "time"

type IntentKind string

const (
	IntentTask          IntentKind = "task"
	IntentReminder      IntentKind = "reminder"
	IntentEmail         IntentKind = "email"
	IntentWhatsApp      IntentKind = "whatsapp"
	IntentNote          IntentKind = "note"
	IntentClarification IntentKind = "clarification"
	IntentUnknown       IntentKind = "unknown"
)

func (k IntentKind) IsValid() bool {
	switch k {
	case IntentTask, IntentReminder, IntentEmail, IntentWhatsApp,
		IntentNote, IntentClarification, IntentUnknown:
		return true
	default:
		return false
	}
}

// IsExternal reports whether acting on the intent would reach outside the
// user's own workspace (messages to other people).
func (k IntentKind) IsExternal() bool {
	return k == IntentEmail || k == IntentWhatsApp
}

type IntentAction string

const (
	ActionDo       IntentAction = "do"
	ActionSchedule IntentAction = "schedule"
	ActionSend     IntentAction = "send"
)

// ParsedIntent is the structured form of a free-text capture, produced by
// the llm package.
type ParsedIntent struct {
	Intent     IntentKind   `json:"intent"`
	Action     IntentAction `json:"action"`
	When       *time.Time   `json:"when,omitempty"`
	Target     string       `json:"target,omitempty"`
	Content    string       `json:"content"`
	Confidence float64      `json:"confidence"`
}

type ExecutionType string

const (
	ExecImmediate     ExecutionType = "immediate"
	ExecScheduled     ExecutionType = "scheduled"
	ExecNeedsApproval ExecutionType = "needs_approval"
)

// ExecutionDecision is the execution-mode classification of one intent.
type ExecutionDecision struct {
	Priority      AIPriority    `json:"priority"`
	ExecutionType ExecutionType `json:"execution_type"`
	Reason        string        `json:"reason"`
}
