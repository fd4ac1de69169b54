package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction direction, from the perspective of the session account.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// Transaction kinds reported by the backend.
const (
	TypeTransfer   = "transfer"
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)

// Party identifies the counterpart of a transaction, subject to that
// account's privacy settings.
type Party struct {
	ID           string `json:"id,omitempty"`
	FullName     string `json:"fullName,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	CBU          string `json:"cbu,omitempty"`
	Email        string `json:"email,omitempty"`
}

// DisplayName returns the counterpart's human-facing name.
func (p Party) DisplayName() string {
	switch {
	case p.FullName != "":
		return p.FullName
	case p.BusinessName != "":
		return p.BusinessName
	default:
		return "N/A"
	}
}

// Transaction is the client's copy of a completed backend transaction.
type Transaction struct {
	ID               string          `json:"id"`
	Type             string          `json:"type"`
	Direction        string          `json:"direction"`
	Amount           decimal.Decimal `json:"amount"`
	CommissionAmount decimal.Decimal `json:"commissionAmount,omitempty"`
	NetAmount        decimal.Decimal `json:"netAmount,omitempty"`
	Currency         string          `json:"currency"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	OtherParty       *Party          `json:"otherParty,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// SignedAmount renders the amount with the sign implied by direction,
// for display only.
func (t Transaction) SignedAmount() string {
	sign := "+"
	if t.Direction == DirectionOutgoing {
		sign = "-"
	}
	return sign + "$" + t.Amount.StringFixed(2)
}

// Pagination describes a page of history results.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// HasMore reports whether another page exists after this one.
func (p Pagination) HasMore() bool {
	return p.Offset+p.Limit < p.Total
}
