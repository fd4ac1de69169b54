package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal code statuses reported by the backend.
const (
	WithdrawalStatusPending   = "PENDING"
	WithdrawalStatusCompleted = "COMPLETED"
	WithdrawalStatusExpired   = "EXPIRED"
)

// CountdownExpired is the terminal countdown label.
const CountdownExpired = "Expirado"

// WithdrawalCode is a backend-issued one-time code authorizing a store to
// debit the holder's account. The client only displays it; whether the
// code is still honorable is decided by the backend at process time.
type WithdrawalCode struct {
	Code      string          `json:"code"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status,omitempty"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      *Party          `json:"user,omitempty"`
}

// Remaining returns the time left before expiry, floored at zero.
func (w WithdrawalCode) Remaining(now time.Time) time.Duration {
	d := w.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CountdownLabel renders the remaining lifetime as "m:ss", or the
// expired label once the remainder reaches zero. Advisory only.
func (w WithdrawalCode) CountdownLabel(now time.Time) string {
	d := w.Remaining(now)
	if d <= 0 {
		return CountdownExpired
	}
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
