package supabase

import (
	"encoding/json"
	"fmt"

	"tasksense/assistant/types"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// GetWaitingApprovals returns the user's items still waiting for review,
// newest first. Snooze filtering happens in the selector, not here.
func GetWaitingApprovals(client *supabase.Client, userID string) ([]types.ApprovalItem, error) {
	resp, _, err := client.From("approval_items").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("status", string(types.ApprovalWaiting)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch approval items: %w", err)
	}

	var items []types.ApprovalItem
	if err := json.Unmarshal(resp, &items); err != nil {
		return nil, fmt.Errorf("failed to decode approval items: %w", err)
	}
	return items, nil
}
