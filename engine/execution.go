package engine

import (
	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

// ClassifyExecution maps a parsed intent to an execution mode. The table
// fails open toward approval: only unambiguous, high-confidence intents
// execute without a human in the loop, and anything that reaches another
// person needs confirmation no matter how confident the parser was.
func ClassifyExecution(intent types.ParsedIntent) types.ExecutionDecision {
	if intent.Confidence < config.SafeModeFloor ||
		intent.Intent == types.IntentClarification ||
		intent.Intent == types.IntentUnknown {
		return types.ExecutionDecision{
			Priority:      types.AIPriorityLow,
			ExecutionType: types.ExecNeedsApproval,
			Reason:        "needs clarification",
		}
	}

	if intent.Confidence < config.HighConfidenceFloor {
		return types.ExecutionDecision{
			Priority:      types.AIPriorityMedium,
			ExecutionType: types.ExecNeedsApproval,
			Reason:        "Safe Mode",
		}
	}

	// External side effects always need confirmation, even at full
	// confidence.
	if intent.Intent.IsExternal() || intent.Action == types.ActionSend {
		return types.ExecutionDecision{
			Priority:      types.AIPriorityHigh,
			ExecutionType: types.ExecNeedsApproval,
			Reason:        "external actions require confirmation",
		}
	}

	if intent.Action == types.ActionDo && intent.Intent == types.IntentTask {
		return types.ExecutionDecision{
			Priority:      types.AIPriorityHigh,
			ExecutionType: types.ExecImmediate,
			Reason:        "high-confidence task capture",
		}
	}

	if intent.Action == types.ActionSchedule || intent.When != nil {
		return types.ExecutionDecision{
			Priority:      types.AIPriorityHigh,
			ExecutionType: types.ExecScheduled,
			Reason:        "time-bound intent",
		}
	}

	return types.ExecutionDecision{
		Priority:      types.AIPriorityHigh,
		ExecutionType: types.ExecImmediate,
		Reason:        "captured as task",
	}
}
