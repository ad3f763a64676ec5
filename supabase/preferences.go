package supabase

import (
	"encoding/json"
	"fmt"

	"tasksense/assistant/config"
	"tasksense/assistant/types"

	"github.com/supabase-community/supabase-go"
)

// GetUserPreferences loads the user's preference row, falling back to
// defaults when none exists yet. A missing row is expected for new users and
// only logged, never an error.
func GetUserPreferences(client *supabase.Client, userID string) (types.UserPreferences, error) {
	resp, _, err := client.From("user_preferences").
		Select("*", "", false).
		Eq("user_id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return types.UserPreferences{}, fmt.Errorf("failed to fetch preferences: %w", err)
	}

	var prefs []types.UserPreferences
	if err := json.Unmarshal(resp, &prefs); err != nil {
		return types.UserPreferences{}, fmt.Errorf("failed to decode preferences: %w", err)
	}

	if len(prefs) == 0 {
		config.Logger.Warn("no preferences for user, using defaults: ", userID)
		return types.DefaultPreferences(userID), nil
	}
	return prefs[0], nil
}
