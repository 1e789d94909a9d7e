package model

import "time"

const (
	// ConfirmationStatusProposed defines the status of a pending, not yet confirmed action.
	ConfirmationStatusProposed = "proposed"
	// ConfirmationStatusConfirmed defines the status of a confirmed, consumed token.
	ConfirmationStatusConfirmed = "confirmed"
	// ConfirmationStatusCancelled defines the status of an explicitly cancelled token.
	ConfirmationStatusCancelled = "cancelled"
	// ConfirmationStatusExpired defines the status of a token that outlived its window.
	ConfirmationStatusExpired = "expired"
)

// ConfirmationToken binds one pending destructive action to its eventual explicit confirmation.
// The token is single use regardless of outcome.
type ConfirmationToken struct {
	ID        string        `json:"id"`
	Request   ActionRequest `json:"request"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// PendingConfirmation is what the caller receives when an action awaits confirmation.
type PendingConfirmation struct {
	Token       string      `json:"token"`
	Action      Action      `json:"action"`
	Environment Environment `json:"environment"`
	Commit      string      `json:"commit,omitempty"`
	ExpiresAt   time.Time   `json:"expiresAt"`
}
