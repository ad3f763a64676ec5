package supabase

import (
	"fmt"
	"time"

	"tasksense/assistant/config"
	"tasksense/assistant/types"

	"github.com/supabase-community/supabase-go"
)

// SaveDecisions persists the pipeline's decision records for user review.
// Records failing the payload/type check are dropped with a warning rather
// than poisoning the whole batch.
func SaveDecisions(client *supabase.Client, userID string, decisions []types.Decision) error {
	var rows []types.Decision
	for _, d := range decisions {
		if err := d.Validate(); err != nil {
			config.Logger.Warn("dropping malformed decision:", err)
			continue
		}
		d.UserID = userID
		if d.CreatedAt.IsZero() {
			d.CreatedAt = time.Now()
		}
		rows = append(rows, d)
	}
	if len(rows) == 0 {
		return nil
	}

	_, _, err := client.From("decisions").Insert(rows, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save decisions: %w", err)
	}
	return nil
}
