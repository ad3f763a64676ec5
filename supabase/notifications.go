package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"tasksense/assistant/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// NotificationLog is the production engine.NotificationStore, backed by the
// notifications table.
type NotificationLog struct {
	client *supabase.Client
}

func NewNotificationLog(client *supabase.Client) *NotificationLog {
	return &NotificationLog{client: client}
}

func (l *NotificationLog) CountDispatchedToday(userID string, category types.NotificationCategory, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	_, count, err := l.client.From("notifications").
		Select("id", "exact", false).
		Eq("user_id", userID).
		Eq("category", string(category)).
		Gte("created_at", dayStart.Format(time.RFC3339)).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return int(count), nil
}

func (l *NotificationLog) LastUpsellAt(userID string) (*time.Time, error) {
	resp, _, err := l.client.From("notifications").
		Select("created_at", "", false).
		Eq("user_id", userID).
		Eq("category", string(types.CategoryUpsell)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last upsell: %w", err)
	}

	var rows []struct {
		CreatedAt time.Time `json:"created_at"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode last upsell: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0].CreatedAt, nil
}

func (l *NotificationLog) Save(n types.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, _, err := l.client.From("notifications").Insert(n, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}
