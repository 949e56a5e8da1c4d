package domain

import "time"

// ChangeOp is the kind of row change carried by a change event.
type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
)

// ChangeEvent is the raw notification emitted when a row in a watched
// collection changes. No payload diffing happens anywhere: consumers are
// expected to re-issue their full list query on receipt.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Op         ChangeOp  `json:"op"`
	RecordID   string    `json:"recordID"`
	UserID     string    `json:"userID,omitempty"`
	FamilyID   string    `json:"familyID,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
