package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/localpay/localpay/internal/model"
)

// amountJSON renders a decimal as a bare JSON number, which is the shape
// the backend expects for amounts.
func amountJSON(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// SendResult is the execute response for a user-to-user transfer.
type SendResult struct {
	Transaction *model.Transaction
	Recipient   *model.Party
	// SenderBalance is advisory; re-fetch the profile before trusting it.
	SenderBalance decimal.Decimal
}

// SendMoney executes a transfer to the given CBU. Never called without a
// prior successful VerifyCBU for the same input.
func (c *Client) SendMoney(ctx context.Context, cbu string, amount decimal.Decimal, description string) (*SendResult, error) {
	req := struct {
		CBU         string      `json:"cbu"`
		Amount      json.Number `json:"amount"`
		Description string      `json:"description"`
	}{CBU: cbu, Amount: amountJSON(amount), Description: description}

	var resp struct {
		statusEnvelope
		Sender *struct {
			Balance decimal.Decimal `json:"balance"`
		} `json:"sender"`
		Recipient   *model.Party       `json:"recipient"`
		Transaction *model.Transaction `json:"transaction"`
	}
	if err := c.post(ctx, "/transactions/send", req, &resp, true); err != nil {
		return nil, err
	}

	result := &SendResult{Transaction: resp.Transaction, Recipient: resp.Recipient}
	if resp.Sender != nil {
		result.SenderBalance = resp.Sender.Balance
	}
	return result, nil
}

// AddMoneyResult is the execute response for a store cash-in.
type AddMoneyResult struct {
	Transaction *model.Transaction
	// StoreBalance is advisory; re-fetch the profile before trusting it.
	StoreBalance decimal.Decimal
}

// AddMoney executes a store deposit into a user account identified by CBU.
func (c *Client) AddMoney(ctx context.Context, cbu string, amount decimal.Decimal, description string) (*AddMoneyResult, error) {
	req := struct {
		CBU         string      `json:"cbu"`
		Amount      json.Number `json:"amount"`
		Description string      `json:"description"`
	}{CBU: cbu, Amount: amountJSON(amount), Description: description}

	var resp struct {
		statusEnvelope
		Store *struct {
			NewBalance decimal.Decimal `json:"newBalance"`
		} `json:"store"`
		Transaction *model.Transaction `json:"transaction"`
	}
	if err := c.post(ctx, "/stores/add-money", req, &resp, true); err != nil {
		return nil, err
	}

	result := &AddMoneyResult{Transaction: resp.Transaction}
	if resp.Store != nil {
		result.StoreBalance = resp.Store.NewBalance
	}
	return result, nil
}

// History returns a page of the session account's transactions.
func (c *Client) History(ctx context.Context, acct model.AccountType, limit, offset int) ([]model.Transaction, model.Pagination, error) {
	path := "/transactions/history"
	if acct == model.AccountTypeStore {
		path = "/stores/transactions"
	}
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var resp struct {
		statusEnvelope
		Transactions []model.Transaction `json:"transactions"`
		Pagination   model.Pagination    `json:"pagination"`
	}
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, model.Pagination{}, err
	}
	return resp.Transactions, resp.Pagination, nil
}

// Transaction fetches one transaction by ID.
func (c *Client) Transaction(ctx context.Context, id string) (*model.Transaction, error) {
	var resp struct {
		statusEnvelope
		Transaction *model.Transaction `json:"transaction"`
	}
	if err := c.get(ctx, "/transactions/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Transaction == nil {
		return nil, &Error{Status: 404, Message: "Transacción no encontrada"}
	}
	return resp.Transaction, nil
}
