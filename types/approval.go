package types

import "time"

type ApprovalStatus string

const (
	ApprovalWaiting  ApprovalStatus = "waiting_approval"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalDeclined ApprovalStatus = "declined"
	ApprovalExpired  ApprovalStatus = "expired"
)

// ApprovalItem is a pending, user-reviewable action. Nothing with side
// effects runs until the user approves it.
type ApprovalItem struct {
	ID        string            `json:"id,omitempty"`
	UserID    string            `json:"user_id"`
	Status    ApprovalStatus    `json:"status"`
	Title     string            `json:"title"`
	Fields    map[string]string `json:"fields,omitempty"`
	SkipUntil *time.Time        `json:"skip_until,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// IsSnoozed reports whether the item is snoozed at the given instant.
func (a ApprovalItem) IsSnoozed(now time.Time) bool {
	return a.SkipUntil != nil && a.SkipUntil.After(now)
}
