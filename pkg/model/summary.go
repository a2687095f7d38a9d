package model

import "time"

// InteractionSummary is an append-only record of a finished
// conversation. Summaries are accepted even when no matching account
// record exists, and identical saves append separate rows.
type InteractionSummary struct {
	UserID    string    `firestore:"user_id"`
	SessionID string    `firestore:"session_id"`
	Summary   string    `firestore:"summary"`
	CreatedAt time.Time `firestore:"created_at,serverTimestamp"`
}
