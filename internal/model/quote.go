package model

import (
	"github.com/shopspring/decimal"
)

// Quote is the backend's preview of an operation's effect, produced by a
// verify-style call and shown before execution. The fee and total are
// whatever the backend returned; the client never recomputes them beyond
// display formatting.
type Quote struct {
	Counterpart Party
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	Total       decimal.Decimal
	Currency    string
	Description string
	// Code carries withdrawal-code details when the quoted operation is
	// a code redemption.
	Code *WithdrawalCode
}

// Receipt is the terminal result of an executed operation.
type Receipt struct {
	Transaction *Transaction
	// NewBalance is the balance echoed by the execute response. It is
	// advisory; callers must re-fetch the profile before trusting it
	// for further operations.
	NewBalance decimal.Decimal
	// Code is set when the operation issued a withdrawal code.
	Code    *WithdrawalCode
	Message string
}
