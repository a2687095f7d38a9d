package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrAccountNotFound signals a valid empty lookup result, distinct
	// from a driver failure. Callers present a polite not-found message
	// rather than an apology.
	ErrAccountNotFound = goerr.New("account not found")
)

// Account is a user profile record in the remote store. The user ID is
// an opaque string; the store owns uniqueness and format.
type Account struct {
	UserID           string `firestore:"user_id"`
	Email            string `firestore:"email"`
	FullName         string `firestore:"full_name"`
	SubscriptionTier string `firestore:"subscription_tier"`
}
