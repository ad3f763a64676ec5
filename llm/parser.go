package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/types"
)

const apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// geminiIntent is the raw shape the model returns before normalization.
type geminiIntent struct {
	Intent     string  `json:"intent"`
	Action     string  `json:"action"`
	When       string  `json:"when"`
	Target     string  `json:"target"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// Bare confirmation phrases carry no intent of their own. Below the
// confirmation floor they always mean "ask what they meant".
var confirmationPhrases = []string{
	"yes", "yeah", "yep", "ok", "okay", "sure", "do it", "confirm", "go ahead",
}

// ParseIntent enriches free text into a structured intent via Gemini.
// Failures never surface as executable intents: any parse or transport
// problem degrades to a clarification intent with zero confidence.
func ParseIntent(text string) (types.ParsedIntent, error) {
	if strings.TrimSpace(text) == "" {
		return clarify(text), nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return clarify(text), fmt.Errorf("GEMINI_API_KEY not set")
	}

	prompt := BuildIntentPrompt(text)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.1,
			"maxOutputTokens": 300,
			"topP":            0.8,
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return clarify(text), fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", apiURL+"?key="+apiKey, bytes.NewReader(jsonData))
	if err != nil {
		return clarify(text), fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return clarify(text), fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return clarify(text), fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var res map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return clarify(text), fmt.Errorf("failed to decode response: %v", err)
	}

	raw, err := extractTextFromResponse(res)
	if err != nil {
		config.Logger.Warn("failed to extract intent text:", err)
		return clarify(text), nil
	}

	parsed, err := parseIntentJSON(raw)
	if err != nil {
		config.Logger.Warnf("failed to parse intent JSON: %v\noriginal text: %s", err, raw)
		return clarify(text), nil
	}

	return normalizeIntent(parsed, text), nil
}

// normalizeIntent applies the trust floors to a raw model response and maps
// it onto the typed intent.
func normalizeIntent(raw geminiIntent, original string) types.ParsedIntent {
	intent := types.ParsedIntent{
		Intent:     types.IntentKind(raw.Intent),
		Action:     types.IntentAction(raw.Action),
		Target:     raw.Target,
		Content:    raw.Content,
		Confidence: raw.Confidence,
	}
	if intent.Content == "" {
		intent.Content = original
	}
	if !intent.Intent.IsValid() {
		intent.Intent = types.IntentUnknown
	}
	if intent.Confidence < 0 {
		intent.Confidence = 0
	}
	if intent.Confidence > 1 {
		intent.Confidence = 1
	}

	if raw.When != "" {
		if when, err := time.Parse(time.RFC3339, raw.When); err == nil {
			intent.When = &when
		}
	}

	// Bare confirmations with nothing behind them need a question, not a
	// guess.
	if intent.Confidence < config.ConfirmationFloor && isConfirmationPhrase(original) {
		intent.Intent = types.IntentClarification
	}
	if intent.Confidence < config.ClarificationFloor {
		intent.Intent = types.IntentClarification
	}

	return intent
}

func isConfirmationPhrase(text string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	for _, phrase := range confirmationPhrases {
		if trimmed == phrase {
			return true
		}
	}
	return false
}

func clarify(text string) types.ParsedIntent {
	return types.ParsedIntent{
		Intent:     types.IntentClarification,
		Action:     types.ActionDo,
		Content:    text,
		Confidence: 0,
	}
}

// Extract text from Gemini API response with proper error handling
func extractTextFromResponse(res map[string]interface{}) (string, error) {
	candidates, ok := res["candidates"].([]interface{})
	if !ok || len(candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate, ok := candidates[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid candidate format")
	}

	content, ok := candidate["content"].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("no content in candidate")
	}

	parts, ok := content["parts"].([]interface{})
	if !ok || len(parts) == 0 {
		return "", fmt.Errorf("no parts in content")
	}

	part, ok := parts[0].(map[string]interface{})
	if !ok {
		return "", fmt.Errorf("invalid part format")
	}

	text, ok := part["text"].(string)
	if !ok {
		return "", fmt.Errorf("no text in part")
	}

	return text, nil
}

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parseIntentJSON tries the code-block form first, then the first brace
// balanced region of the raw text.
func parseIntentJSON(text string) (geminiIntent, error) {
	var parsed geminiIntent

	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, nil
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil {
			return parsed, nil
		}
	}

	return geminiIntent{}, fmt.Errorf("no valid JSON found in response")
}
