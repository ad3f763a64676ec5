package types

// Response envelopes for the HTTP surface.

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
}

type AssistRunResponse struct {
	Success    bool       `json:"success"`
	Skipped    bool       `json:"skipped,omitempty"`
	Reason     string     `json:"reason,omitempty"`
	Decisions  []Decision `json:"decisions,omitempty"`
	Dispatched int        `json:"dispatched,omitempty"`
}

type NowResponse struct {
	Success   bool         `json:"success"`
	Selection NowSelection `json:"selection"`
}

type InsightResponse struct {
	Success   bool       `json:"success"`
	Insight   Insight    `json:"insight"`
	Decisions []Decision `json:"decisions,omitempty"`
}

type ClassifyResponse struct {
	Success   bool               `json:"success"`
	Decisions []WorkflowDecision `json:"decisions"`
}

type ClassifyRequest struct {
	TaskID string `json:"task_id,omitempty"`
}

type ExecuteIntentRequest struct {
	Text   string        `json:"text,omitempty"`
	Intent *ParsedIntent `json:"intent,omitempty"`
}

type ExecuteIntentResponse struct {
	Success   bool              `json:"success"`
	Intent    ParsedIntent      `json:"intent"`
	Execution ExecutionDecision `json:"execution"`
}
