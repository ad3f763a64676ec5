package types

import "time"

type Event struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DurationMinutes returns the event length in whole minutes.
func (e Event) DurationMinutes() int {
	return int(e.EndsAt.Sub(e.StartsAt).Minutes())
}
