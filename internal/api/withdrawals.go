package api

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/localpay/localpay/internal/model"
)

// GenerateWithdrawal asks the backend to issue a one-time withdrawal code
// debiting the session user's account for amount plus the backend's fee.
func (c *Client) GenerateWithdrawal(ctx context.Context, amount decimal.Decimal) (*model.WithdrawalCode, error) {
	req := struct {
		Amount json.Number `json:"amount"`
	}{Amount: amountJSON(amount)}

	var resp struct {
		statusEnvelope
		WithdrawalCode *model.WithdrawalCode `json:"withdrawalCode"`
	}
	if err := c.post(ctx, "/withdrawals/generate", req, &resp, true); err != nil {
		return nil, err
	}
	if resp.WithdrawalCode == nil {
		return nil, &Error{Status: 500, Message: "Error al generar código de retiro"}
	}
	return resp.WithdrawalCode, nil
}

// WithdrawalInfo looks a code up without redeeming it: the quote step of
// the store's process-withdrawal flow.
func (c *Client) WithdrawalInfo(ctx context.Context, code string) (*model.WithdrawalCode, error) {
	req := struct {
		Code string `json:"code"`
	}{Code: code}

	var resp struct {
		statusEnvelope
		WithdrawalCode *model.WithdrawalCode `json:"withdrawalCode"`
	}
	if err := c.post(ctx, "/withdrawals/info", req, &resp, true); err != nil {
		return nil, err
	}
	if resp.WithdrawalCode == nil {
		return nil, &Error{Status: 404, Message: "Código inválido o expirado"}
	}
	return resp.WithdrawalCode, nil
}

// ProcessResult is the execute response for a code redemption.
type ProcessResult struct {
	Transaction *model.Transaction
	// StoreBalance is advisory; re-fetch the profile before trusting it.
	StoreBalance decimal.Decimal
}

// ProcessWithdrawal redeems a withdrawal code at the session store.
// Whether the code is still honorable is decided here by the backend,
// regardless of what any local countdown displayed.
func (c *Client) ProcessWithdrawal(ctx context.Context, code string) (*ProcessResult, error) {
	req := struct {
		Code string `json:"code"`
	}{Code: code}

	var resp struct {
		statusEnvelope
		Store *struct {
			NewBalance decimal.Decimal `json:"newBalance"`
		} `json:"store"`
		Transaction *model.Transaction `json:"transaction"`
	}
	if err := c.post(ctx, "/withdrawals/process", req, &resp, true); err != nil {
		return nil, err
	}

	result := &ProcessResult{Transaction: resp.Transaction}
	if resp.Store != nil {
		result.StoreBalance = resp.Store.NewBalance
	}
	return result, nil
}
