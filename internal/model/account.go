// Package model defines the domain types shared across the LocalPay client.
package model

import (
	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two kinds of accounts the backend serves.
type AccountType string

const (
	AccountTypeUser  AccountType = "user"
	AccountTypeStore AccountType = "store"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	return t == AccountTypeUser || t == AccountTypeStore
}

// PrivacySettings controls which profile fields other accounts may see.
type PrivacySettings struct {
	ShowEmail bool `json:"showEmail"`
	ShowPhone bool `json:"showPhone"`
}

// Account is the client's copy of a user or store record. The backend owns
// the authoritative state; this struct is only ever populated from API
// responses, never mutated locally.
type Account struct {
	ID            string           `json:"id"`
	FullName      string           `json:"fullName,omitempty"`
	BusinessName  string           `json:"businessName,omitempty"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone,omitempty"`
	CBU           string           `json:"cbu,omitempty"`
	City          string           `json:"city,omitempty"`
	BusinessType  string           `json:"businessType,omitempty"`
	Balance       decimal.Decimal  `json:"balance"`
	Currency      string           `json:"currency"`
	Commissions   decimal.Decimal  `json:"totalCommissionsEarned,omitempty"`
	Privacy       *PrivacySettings `json:"privacySettings,omitempty"`
	EmailVerified bool             `json:"emailVerified,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty"`
}

// DisplayName returns the human-facing name for either account variant.
func (a Account) DisplayName() string {
	if a.BusinessName != "" {
		return a.BusinessName
	}
	return a.FullName
}

// CurrencyOrDefault returns the account currency, defaulting to USD when
// the backend omitted it.
func (a Account) CurrencyOrDefault() string {
	if a.Currency == "" {
		return "USD"
	}
	return a.Currency
}
