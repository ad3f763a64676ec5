package types

type PlanTier string

const (
	PlanFree       PlanTier = "free"
	PlanPro        PlanTier = "pro"
	PlanEnterprise PlanTier = "enterprise"
)

type UserPreferences struct {
	UserID            string   `json:"user_id"`
	AIOptIn           bool     `json:"ai_opt_in"`
	PlanTier          PlanTier `json:"plan_tier"`
	QuietHoursEnabled bool     `json:"quiet_hours_enabled"`
	QuietStart        string   `json:"quiet_start,omitempty"` // "HH:MM" local
	QuietEnd          string   `json:"quiet_end,omitempty"`   // "HH:MM" local
	Timezone          string   `json:"timezone,omitempty"`
	WorkdayStartHour  int      `json:"workday_start_hour"`
	WorkdayEndHour    int      `json:"workday_end_hour"`
	FocusBlockMinutes int      `json:"focus_block_minutes"`
	PreferredTaskMins int      `json:"preferred_task_minutes"`
}

// DefaultPreferences applies when a user has no stored preference row.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:            userID,
		AIOptIn:           true,
		PlanTier:          PlanFree,
		Timezone:          "UTC",
		WorkdayStartHour:  9,
		WorkdayEndHour:    17,
		FocusBlockMinutes: 90,
		PreferredTaskMins: 30,
	}
}
