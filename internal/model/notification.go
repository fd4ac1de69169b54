package model

import (
	"time"
)

// Notification severities.
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationInfo    = "info"
)

// Notification is a locally persisted, user-visible event record. The
// list is append-only; records are independent of the session lifecycle.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact is a locally remembered transfer counterpart, either saved
// explicitly or aggregated from transaction history.
type Contact struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	CBU      string    `json:"cbu"`
	Email    string    `json:"email,omitempty"`
	LastUsed time.Time `json:"lastTransaction"`
}
