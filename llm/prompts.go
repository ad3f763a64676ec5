package llm

import (
	"fmt"
	"strings"
)

// BuildIntentPrompt asks the model to turn a free-text capture into one
// strict-JSON intent record. The schema mirrors types.ParsedIntent.
func BuildIntentPrompt(text string) string {
	systemInstructions := `
You convert one short piece of user input into a structured intent for a task
assistant. The user may be capturing a task, setting a reminder, asking to
send a message, or just jotting a note.

Classify the input into exactly one intent:
- "task": something the user will do themselves
- "reminder": the user wants to be reminded at a time
- "email": the user wants an email sent to someone
- "whatsapp": the user wants a WhatsApp message sent to someone
- "note": information to keep, nothing to do
- "clarification": the input is too vague or ambiguous to act on
- "unknown": none of the above fit

And exactly one action:
- "do": act on it directly
- "schedule": it is bound to a time
- "send": it reaches another person

Rules:
- "when" must be RFC3339 or null. Never invent a time the user did not give.
- "target" is the recipient for email/whatsapp, otherwise empty.
- "confidence" is your honest 0.0-1.0 estimate that this reading is right.
  Vague input means low confidence. Do not inflate it.

ONLY respond with valid JSON in this exact shape, no extra text:
{
 "intent": "task",
 "action": "do",
 "when": null,
 "target": "",
 "content": "the normalized thing to do",
 "confidence": 0.0
}
`

	return fmt.Sprintf("%s\nUSER INPUT:\n%s", systemInstructions, strings.TrimSpace(text))
}
