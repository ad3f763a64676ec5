package types

import "time"

type NotificationCategory string

const (
	CategoryAIInsight NotificationCategory = "ai_insight"
	CategoryUpsell    NotificationCategory = "upsell"
	CategorySystem    NotificationCategory = "system"
)

// Notification is a payload headed for delivery. ScheduledFor is assigned by
// the dispatcher, never by the caller.
type Notification struct {
	ID           string               `json:"id,omitempty"`
	UserID       string               `json:"user_id"`
	Title        string               `json:"title"`
	Body         string               `json:"body"`
	Priority     DecisionPriority     `json:"priority"`
	Category     NotificationCategory `json:"category"`
	Reason       string               `json:"reason,omitempty"`
	ScheduledFor *time.Time           `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time            `json:"created_at,omitempty"`
}
