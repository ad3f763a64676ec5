package supabase

import (
	"encoding/json"
	"fmt"

	"tasksense/assistant/engine"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// InsightRunLog is the production engine.InsightRunStore, backed by the
// insight_runs table.
type InsightRunLog struct {
	client *supabase.Client
}

func NewInsightRunLog(client *supabase.Client) *InsightRunLog {
	return &InsightRunLog{client: client}
}

func (l *InsightRunLog) LastRun(userID string) (*engine.InsightRun, error) {
	resp, _, err := l.client.From("insight_runs").
		Select("*", "", false).
		Eq("user_id", userID).
		Order("ran_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last insight run: %w", err)
	}

	var runs []engine.InsightRun
	if err := json.Unmarshal(resp, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode insight runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (l *InsightRunLog) RecordRun(run engine.InsightRun) error {
	_, _, err := l.client.From("insight_runs").Insert(run, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to record insight run: %w", err)
	}
	return nil
}
