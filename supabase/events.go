package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"tasksense/assistant/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetEvents returns the user's events starting inside [from, to).
func GetEvents(client *supabase.Client, userID string, from, to time.Time) ([]types.Event, error) {
	resp, _, err := client.From("events").
		Select("*", "", false).
		Eq("user_id", userID).
		Gte("starts_at", from.Format(time.RFC3339)).
		Lt("starts_at", to.Format(time.RFC3339)).
		Order("starts_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var events []types.Event
	if err := json.Unmarshal(resp, &events); err != nil {
		return nil, fmt.Errorf("failed to decode event data: %w", err)
	}
	return events, nil
}
