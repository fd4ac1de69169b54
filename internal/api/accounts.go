package api

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/localpay/localpay/internal/model"
)

// VerifyCBU asks the backend to resolve a CBU into the holder's public
// account record. This is the quote step for transfer-style flows; the
// caller must treat the response as authoritative and never enrich it
// locally.
func (c *Client) VerifyCBU(ctx context.Context, acct model.AccountType, cbu string) (*model.Account, error) {
	req := struct {
		CBU string `json:"cbu"`
	}{CBU: cbu}

	var resp struct {
		statusEnvelope
		User *model.Account `json:"user"`
	}
	if err := c.post(ctx, typedPath(acct, "/verify-cbu"), req, &resp, true); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &Error{Status: 404, Message: "CBU no encontrado"}
	}
	return resp.User, nil
}

// Me fetches the session account's full profile. This is the only
// trusted source for the balance after any wizard completes.
func (c *Client) Me(ctx context.Context, acct model.AccountType) (*model.Account, error) {
	var resp struct {
		statusEnvelope
		User  json.RawMessage `json:"user"`
		Store json.RawMessage `json:"store"`
	}
	if err := c.get(ctx, typedPath(acct, "/me"), nil, &resp); err != nil {
		return nil, err
	}
	return decodeAccount(resp.User, resp.Store)
}

// ProfileUpdate carries the editable profile fields; zero-valued fields
// are omitted from the request.
type ProfileUpdate struct {
	FullName     string `json:"fullName,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

// UpdateProfile replaces the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, acct model.AccountType, upd ProfileUpdate) (*model.Account, error) {
	var resp struct {
		statusEnvelope
		User  json.RawMessage `json:"user"`
		Store json.RawMessage `json:"store"`
	}
	if err := c.put(ctx, typedPath(acct, "/profile"), upd, &resp); err != nil {
		return nil, err
	}
	return decodeAccount(resp.User, resp.Store)
}

// UpdateEmail changes the login email; the backend re-checks the password.
func (c *Client) UpdateEmail(ctx context.Context, acct model.AccountType, email, password string) error {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	return c.put(ctx, typedPath(acct, "/email"), req, nil)
}

// UpdatePassword rotates the account password.
func (c *Client) UpdatePassword(ctx context.Context, acct model.AccountType, current, next string) error {
	req := struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{CurrentPassword: current, NewPassword: next}
	return c.put(ctx, typedPath(acct, "/password"), req, nil)
}

// UpdatePrivacy replaces the privacy settings.
func (c *Client) UpdatePrivacy(ctx context.Context, acct model.AccountType, p model.PrivacySettings) error {
	req := struct {
		PrivacySettings model.PrivacySettings `json:"privacySettings"`
	}{PrivacySettings: p}
	return c.put(ctx, typedPath(acct, "/privacy"), req, nil)
}

// Search finds accounts by CBU, email, ID or name. The backend decides
// how to interpret the query unless an explicit type hint is given.
func (c *Client) Search(ctx context.Context, acct model.AccountType, query, hint string) ([]model.Account, error) {
	params := url.Values{"query": {query}}
	if hint != "" {
		params.Set("type", hint)
	}

	var resp struct {
		statusEnvelope
		User   *model.Account  `json:"user"`
		Users  []model.Account `json:"users"`
		Store  *model.Account  `json:"store"`
		Stores []model.Account `json:"stores"`
	}
	if err := c.get(ctx, typedPath(acct, "/search"), params, &resp); err != nil {
		return nil, err
	}

	results := resp.Users
	results = append(results, resp.Stores...)
	if resp.User != nil {
		results = append(results, *resp.User)
	}
	if resp.Store != nil {
		results = append(results, *resp.Store)
	}
	return results, nil
}
