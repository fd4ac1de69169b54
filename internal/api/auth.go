package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localpay/localpay/internal/model"
)

// LoginResult is the outcome of the unified login call. The backend
// detects whether the credentials belong to a user or a store.
type LoginResult struct {
	Token       string
	AccountType model.AccountType
	Account     model.Account
}

// Login authenticates against the unified login endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		statusEnvelope
		Type  model.AccountType `json:"type"`
		Token string            `json:"token"`
		User  *model.Account    `json:"user"`
		Store *model.Account    `json:"store"`
	}
	if err := c.post(ctx, "/auth/login", req, &resp, false); err != nil {
		return nil, err
	}

	result := &LoginResult{Token: resp.Token, AccountType: resp.Type}
	switch {
	case resp.User != nil:
		result.Account = *resp.User
	case resp.Store != nil:
		result.Account = *resp.Store
	default:
		return nil, fmt.Errorf("login response carried no account record")
	}
	return result, nil
}

// RegisterUserRequest is the profile payload for a new user account.
type RegisterUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterStoreRequest is the profile payload for a new store account.
type RegisterStoreRequest struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	BusinessType string `json:"businessType"`
	Password     string `json:"password"`
}

// RegisterResult reports whether the new account still needs its email
// verified before it can log in.
type RegisterResult struct {
	RequiresVerification bool
	Message              string
}

// RegisterUser creates a user account.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterResult, error) {
	return c.register(ctx, "/users/create", req)
}

// RegisterStore creates a store account.
func (c *Client) RegisterStore(ctx context.Context, req RegisterStoreRequest) (*RegisterResult, error) {
	return c.register(ctx, "/stores/create", req)
}

func (c *Client) register(ctx context.Context, path string, req any) (*RegisterResult, error) {
	var resp struct {
		statusEnvelope
		RequiresVerification bool `json:"requiresVerification"`
	}
	if err := c.post(ctx, path, req, &resp, false); err != nil {
		return nil, err
	}
	return &RegisterResult{
		RequiresVerification: resp.RequiresVerification,
		Message:              resp.Message,
	}, nil
}

// VerifyEmail confirms an account's email with the 6-digit code the
// backend mailed out.
func (c *Client) VerifyEmail(ctx context.Context, acct model.AccountType, email, code string) (*model.Account, error) {
	req := struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}{Email: email, Code: code}

	var resp struct {
		statusEnvelope
		User  json.RawMessage `json:"user"`
		Store json.RawMessage `json:"store"`
	}
	if err := c.post(ctx, typedPath(acct, "/verify-email"), req, &resp, false); err != nil {
		return nil, err
	}
	return decodeAccount(resp.User, resp.Store)
}

// ResendVerification asks the backend to mail a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, acct model.AccountType, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.post(ctx, typedPath(acct, "/resend-verification"), req, nil, false)
}

// typedPath prefixes a path with the collection for the account type.
func typedPath(acct model.AccountType, suffix string) string {
	if acct == model.AccountTypeStore {
		return "/stores" + suffix
	}
	return "/users" + suffix
}

func decodeAccount(user, store json.RawMessage) (*model.Account, error) {
	raw := user
	if len(raw) == 0 {
		raw = store
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("response carried no account record")
	}
	var acct model.Account
	if err := json.Unmarshal(raw, &acct); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &acct, nil
}
