package domain

import "time"

// HistoryAction classifies an edit-history entry.
type HistoryAction string

const (
	HistoryCreate HistoryAction = "CREATE"
	HistoryUpdate HistoryAction = "UPDATE"
	HistoryDelete HistoryAction = "DELETE"
)

// EditHistory records a mutation against a family-scoped record. History
// logging is a concern separate from the mutation itself: any family member
// may edit any family record, and the log is the only trail of who did what.
type EditHistory struct {
	HistoryID  string        `json:"historyID"`
	Collection string        `json:"collection"` // e.g. "orders", "debts"
	RecordID   string        `json:"recordID"`
	ActorID    string        `json:"actorID"`
	FamilyID   *string       `json:"familyID,omitempty"`
	Action     HistoryAction `json:"action"`
	Detail     string        `json:"detail"`
	CreatedAt  time.Time     `json:"createdAt"`
}
