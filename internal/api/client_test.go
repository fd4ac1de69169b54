package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithTokenSource(staticToken("tok-test"))}, opts...)
	return NewClient(srv.URL, opts...), srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Login(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login is unauthenticated")

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req["email"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"type":    "user",
			"token":   "tok-login",
			"user": map[string]any{
				"id":       "u1",
				"fullName": "Ana García",
				"email":    "ana@example.com",
				"balance":  "10.00",
				"currency": "USD",
			},
		})
	})

	result, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", result.Token)
	assert.Equal(t, model.AccountTypeUser, result.AccountType)
	assert.Equal(t, "Ana García", result.Account.FullName)
	assert.True(t, result.Account.Balance.Equal(decimal.RequireFromString("10.00")))
}

func TestClient_LoginStoreVariant(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"type":    "store",
			"token":   "tok-store",
			"store": map[string]any{
				"id":           "s1",
				"businessName": "Kiosco Central",
				"email":        "k@example.com",
				"balance":      250.75,
			},
		})
	})

	result, err := client.Login(context.Background(), "k@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, model.AccountTypeStore, result.AccountType)
	assert.Equal(t, "Kiosco Central", result.Account.BusinessName)
}

func TestClient_BackendMessageSurfacedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{
			"success": false,
			"message": "Saldo insuficiente",
		})
	})

	_, err := client.SendMoney(context.Background(), "1234567890123456789012",
		decimal.NewFromInt(50), "test")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Saldo insuficiente", apiErr.Message)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Saldo insuficiente", common.Message(err, GenericErrorMessage))
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	cleared := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"success": false, "message": "invalid token"})
	}, WithUnauthorizedHook(func() { cleared = true }))

	_, err := client.Me(context.Background(), model.AccountTypeUser)
	assert.ErrorIs(t, err, common.ErrSessionExpired)
	assert.True(t, cleared, "401 must trigger the session-clear hook")
}

func TestClient_AuthedCallWithoutTokenFailsLocally(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}, WithTokenSource(staticToken("")))

	_, err := client.Me(context.Background(), model.AccountTypeUser)
	assert.ErrorIs(t, err, common.ErrNotLoggedIn)
	assert.False(t, called, "no request should be made without a token")
}

func TestClient_MalformedErrorGetsGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := client.Me(context.Background(), model.AccountTypeUser)
	require.Error(t, err)
	assert.Equal(t, GenericErrorMessage, common.Message(err, GenericErrorMessage))
}

func TestClient_VerifyCBU(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/verify-cbu", r.URL.Path)
		assert.Equal(t, "Bearer tok-test", r.Header.Get("Authorization"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "1234567890123456789012", req["cbu"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"user": map[string]any{
				"id": "u2", "fullName": "Ana", "cbu": req["cbu"], "balance": "10.00",
			},
		})
	})

	acct, err := client.VerifyCBU(context.Background(), model.AccountTypeUser, "1234567890123456789012")
	require.NoError(t, err)
	assert.Equal(t, "Ana", acct.FullName)
}

func TestClient_SendMoneyEncodesAmountAsNumber(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "50.25", string(raw["amount"]), "amount must be a bare JSON number")

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success":     true,
			"sender":      map[string]any{"balance": "49.75"},
			"recipient":   map[string]any{"fullName": "Ana"},
			"transaction": map[string]any{"id": "t1", "amount": 50.25, "currency": "USD", "status": "completed", "createdAt": "2025-06-01T12:00:00Z"},
		})
	})

	result, err := client.SendMoney(context.Background(), "1234567890123456789012",
		decimal.RequireFromString("50.25"), "Pago")
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.Equal(t, "t1", result.Transaction.ID)
	assert.True(t, result.SenderBalance.Equal(decimal.RequireFromString("49.75")))
}

func TestClient_HistoryPagination(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stores/transactions", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		assert.Equal(t, "50", r.URL.Query().Get("offset"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"transactions": []map[string]any{
				{"id": "t1", "amount": "12.00", "direction": "incoming", "currency": "USD", "status": "completed", "createdAt": "2025-06-01T12:00:00Z"},
			},
			"pagination": map[string]any{"total": 120, "limit": 25, "offset": 50},
		})
	})

	txns, page, err := client.History(context.Background(), model.AccountTypeStore, 25, 50)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 120, page.Total)
	assert.True(t, page.HasMore())
}

func TestClient_WithdrawalLifecycle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/withdrawals/generate":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"withdrawalCode": map[string]any{
					"code": "482915", "amount": "75.00", "currency": "USD",
					"expiresAt": "2025-06-01T12:15:00Z",
				},
			})
		case "/withdrawals/info":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success": true,
				"withdrawalCode": map[string]any{
					"code": "482915", "amount": "75.00", "currency": "USD",
					"status": "PENDING", "expiresAt": "2025-06-01T12:15:00Z",
					"user": map[string]any{"fullName": "Ana"},
				},
			})
		case "/withdrawals/process":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success":     true,
				"store":       map[string]any{"newBalance": "320.00"},
				"transaction": map[string]any{"id": "t9", "amount": "75.00", "currency": "USD", "status": "completed", "createdAt": "2025-06-01T12:10:00Z"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	ctx := context.Background()

	code, err := client.GenerateWithdrawal(ctx, decimal.NewFromInt(75))
	require.NoError(t, err)
	assert.Equal(t, "482915", code.Code)

	info, err := client.WithdrawalInfo(ctx, "482915")
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalStatusPending, info.Status)
	require.NotNil(t, info.User)
	assert.Equal(t, "Ana", info.User.FullName)

	result, err := client.ProcessWithdrawal(ctx, "482915")
	require.NoError(t, err)
	assert.True(t, result.StoreBalance.Equal(decimal.RequireFromString("320.00")))
}

func TestClient_SearchMergesSingularAndPlural(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ana", r.URL.Query().Get("query"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"users": []map[string]any{
				{"id": "u1", "fullName": "Ana García"},
				{"id": "u2", "fullName": "Ana López"},
			},
		})
	})

	results, err := client.Search(context.Background(), model.AccountTypeUser, "ana", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestClient_RetriesTransientReadFailures(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"user": map[string]any{
				"id":       "u1",
				"fullName": "Ana García",
				"email":    "ana@example.com",
				"balance":  "10.00",
				"currency": "USD",
			},
		})
	})

	account, err := client.Me(context.Background(), model.AccountTypeUser)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "transient failures should be retried")
	assert.Equal(t, "Ana García", account.FullName)
}

func TestClient_DoesNotRetryBackendRejections(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		writeJSON(t, w, http.StatusNotFound, map[string]any{"success": false, "message": "Cuenta no encontrada"})
	})

	_, err := client.Me(context.Background(), model.AccountTypeUser)
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "a definitive rejection must not be retried")
	assert.Equal(t, "Cuenta no encontrada", common.Message(err, GenericErrorMessage))
}

func TestClient_TooManyRequestsMapsToRateLimit(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		writeJSON(t, w, http.StatusTooManyRequests, map[string]any{"success": false, "message": "slow down"})
	})

	_, err := client.SendMoney(context.Background(), "1234567890123456789012",
		decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, common.ErrRateLimit)
	assert.Equal(t, 1, attempts, "writes are never retried")
}

func TestClient_SuccessFalseInOKBodyIsAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": false,
			"message": "Operación rechazada",
		})
	})

	_, err := client.SendMoney(context.Background(), "1234567890123456789012",
		decimal.NewFromInt(10), "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Operación rechazada", apiErr.Message)
	assert.Equal(t, "Operación rechazada", common.Message(err, GenericErrorMessage))
}
