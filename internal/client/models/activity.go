package models

import "time"

// ActivityKind labels a local activity-log record.
type ActivityKind string

const (
	ActivityRegistered ActivityKind = "registered"
	ActivityClaimed    ActivityKind = "claimed"
	ActivityRevealed   ActivityKind = "revealed"
	ActivityConfirmed  ActivityKind = "confirmed"
	ActivityApproved   ActivityKind = "approved"
	ActivityRejected   ActivityKind = "rejected"
	ActivityDecrypted  ActivityKind = "decrypted"
)

// Activity is one row in the local, append-only activity log. The log is a
// convenience for the CLI's history view; the chain remains the authority
// on what actually happened.
type Activity struct {
	ID        string
	Kind      ActivityKind
	ItemID    string
	Address   string
	Details   string
	CreatedAt time.Time
}
