package handlers

import (
	"encoding/json"
	"net/http"

	"tasksense/assistant/config"
	"tasksense/assistant/engine"
	"tasksense/assistant/llm"
	"tasksense/assistant/types"
)

// ExecuteIntentHandler classifies how a captured intent should execute.
// Callers send either raw text (parsed through the LLM first) or an already
// parsed intent.
func ExecuteIntentHandler(w http.ResponseWriter, r *http.Request) {
	var req types.ExecuteIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Text == "" && req.Intent == nil {
		writeError(w, "Missing text or intent", http.StatusBadRequest)
		return
	}

	var intent types.ParsedIntent
	if req.Intent != nil {
		intent = *req.Intent
	} else {
		parsed, err := llm.ParseIntent(req.Text)
		if err != nil {
			// Parsing trouble is not a request failure: the intent has
			// already degraded to clarification.
			config.Logger.Warn("Intent parse degraded:", err)
		}
		intent = parsed
	}

	execution := engine.ClassifyExecution(intent)

	writeJSON(w, http.StatusOK, types.ExecuteIntentResponse{
		Success:   true,
		Intent:    intent,
		Execution: execution,
	})
}
