package flows

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

const testCBU = "1234567890123456789012"

type staticToken string

func (s staticToken) Token() string { return string(s) }

// paymentsBackend is a scripted stand-in for the remote API.
type paymentsBackend struct {
	verifyCBUCalls int
	sendCalls      int
	failSend       string
}

func (b *paymentsBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond := func(status int, body any) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			require.NoError(t, json.NewEncoder(w).Encode(body))
		}

		switch r.URL.Path {
		case "/users/verify-cbu", "/stores/verify-cbu":
			b.verifyCBUCalls++
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req["cbu"] != testCBU {
				respond(http.StatusNotFound, map[string]any{"success": false, "message": "CBU no encontrado"})
				return
			}
			respond(http.StatusOK, map[string]any{
				"success": true,
				"user":    map[string]any{"id": "u2", "fullName": "Ana", "cbu": testCBU, "balance": "10.00"},
			})
		case "/transactions/send":
			b.sendCalls++
			if b.failSend != "" {
				respond(http.StatusConflict, map[string]any{"success": false, "message": b.failSend})
				return
			}
			respond(http.StatusOK, map[string]any{
				"success":     true,
				"sender":      map[string]any{"balance": "49.00"},
				"recipient":   map[string]any{"fullName": "Ana"},
				"transaction": map[string]any{"id": "t1", "amount": "50", "currency": "USD", "status": "completed", "createdAt": "2025-06-01T12:00:00Z"},
			})
		case "/withdrawals/generate":
			respond(http.StatusOK, map[string]any{
				"success": true,
				"withdrawalCode": map[string]any{
					"code": "482915", "amount": "75.00", "currency": "USD",
					"expiresAt": "2025-06-01T12:15:00Z",
				},
			})
		case "/withdrawals/info":
			respond(http.StatusOK, map[string]any{
				"success": true,
				"withdrawalCode": map[string]any{
					"code": "482915", "amount": "75.00", "currency": "USD",
					"status": "PENDING", "expiresAt": "2025-06-01T12:15:00Z",
					"user": map[string]any{"fullName": "Ana"},
				},
			})
		case "/withdrawals/process":
			respond(http.StatusOK, map[string]any{
				"success":     true,
				"store":       map[string]any{"newBalance": "320.00"},
				"transaction": map[string]any{"id": "t9", "amount": "75.00", "currency": "USD", "status": "completed", "createdAt": "2025-06-01T12:10:00Z"},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}
}

func newFlowClient(t *testing.T, backend *paymentsBackend) *api.Client {
	t.Helper()
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, api.WithTokenSource(staticToken("tok")))
}

func runVerify(t *testing.T, m *wizard.Machine) {
	t.Helper()
	gen, err := m.Submit()
	require.NoError(t, err)
	quote, verr := m.Flow().Verify(context.Background(), m.Input())
	m.ResolveVerify(gen, quote, verr)
}

func TestSend_QuoteScenario(t *testing.T) {
	backend := &paymentsBackend{}
	m := wizard.New(NewSend(newFlowClient(t, backend)))

	m.SetField(FieldCBU, testCBU)
	m.SetField(FieldAmount, "50")
	runVerify(t, m)

	require.Equal(t, wizard.StepConfirm, m.Step())
	quote := m.Quote()
	require.NotNil(t, quote)
	assert.Equal(t, "Ana", quote.Counterpart.FullName)
	assert.Equal(t, "1.00", quote.Fee.StringFixed(2))
	assert.Equal(t, "51.00", quote.Total.StringFixed(2))
	assert.Equal(t, 1, backend.verifyCBUCalls)
}

func TestSend_MalformedCBUMakesNoCall(t *testing.T) {
	backend := &paymentsBackend{}
	m := wizard.New(NewSend(newFlowClient(t, backend)))

	m.SetField(FieldCBU, "123456789012345678901") // 21 digits
	m.SetField(FieldAmount, "50")
	_, err := m.Submit()

	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, "El CBU debe tener 22 dígitos", m.ErrorMessage())
	assert.Zero(t, backend.verifyCBUCalls)
}

func TestSend_InsufficientBalanceReturnsToInput(t *testing.T) {
	backend := &paymentsBackend{failSend: "Saldo insuficiente"}
	m := wizard.New(NewSend(newFlowClient(t, backend)))
	ctx := context.Background()

	m.SetField(FieldCBU, testCBU)
	m.SetField(FieldAmount, "50")
	runVerify(t, m)

	gen, err := m.Confirm()
	require.NoError(t, err)
	receipt, execErr := m.Flow().Execute(ctx, m.Input(), *m.Quote())
	m.ResolveExecute(gen, receipt, execErr)

	assert.Equal(t, wizard.StepInput, m.Step())
	assert.Equal(t, "Saldo insuficiente", m.ErrorMessage())
	assert.Equal(t, "50", m.Field(FieldAmount), "entered amount preserved")
}

func TestSend_ExecuteUsesQuotedDescription(t *testing.T) {
	backend := &paymentsBackend{}
	m := wizard.New(NewSend(newFlowClient(t, backend)))
	ctx := context.Background()

	m.SetField(FieldCBU, testCBU)
	m.SetField(FieldAmount, "50")
	runVerify(t, m)

	assert.Equal(t, "Pago a Ana", m.Quote().Description, "default note names the recipient")

	gen, err := m.Confirm()
	require.NoError(t, err)
	receipt, execErr := m.Flow().Execute(ctx, m.Input(), *m.Quote())
	m.ResolveExecute(gen, receipt, execErr)

	require.Equal(t, wizard.StepDone, m.Step())
	assert.Equal(t, "t1", m.Receipt().Transaction.ID)
	assert.Equal(t, 1, backend.sendCalls)
}

func TestGenerateWithdrawal_LocalBalanceCheck(t *testing.T) {
	client := newFlowClient(t, &paymentsBackend{})
	flow := NewGenerateWithdrawal(client, decimal.RequireFromString("50.00"))
	m := wizard.New(flow)

	m.SetField(FieldAmount, "50") // 50 + 1.00 fee > 50.00 available
	_, err := m.Submit()

	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Contains(t, m.ErrorMessage(), "Saldo insuficiente")
	assert.Contains(t, m.ErrorMessage(), "51.00")
}

func TestGenerateWithdrawal_IssuesCode(t *testing.T) {
	client := newFlowClient(t, &paymentsBackend{})
	flow := NewGenerateWithdrawal(client, decimal.RequireFromString("100.00"))
	m := wizard.New(flow)
	ctx := context.Background()

	m.SetField(FieldAmount, "75")
	runVerify(t, m)
	require.Equal(t, wizard.StepConfirm, m.Step())
	assert.Equal(t, "76.00", m.Quote().Total.StringFixed(2))

	gen, err := m.Confirm()
	require.NoError(t, err)
	receipt, execErr := m.Flow().Execute(ctx, m.Input(), *m.Quote())
	m.ResolveExecute(gen, receipt, execErr)

	require.Equal(t, wizard.StepDone, m.Step())
	require.NotNil(t, m.Receipt().Code)
	assert.Equal(t, "482915", m.Receipt().Code.Code)
}

func TestProcessWithdrawal_QuoteCarriesCodeInfo(t *testing.T) {
	m := wizard.New(NewProcessWithdrawal(newFlowClient(t, &paymentsBackend{})))
	ctx := context.Background()

	m.SetField(FieldCode, "482915")
	runVerify(t, m)

	require.Equal(t, wizard.StepConfirm, m.Step())
	quote := m.Quote()
	require.NotNil(t, quote.Code)
	assert.Equal(t, model.WithdrawalStatusPending, quote.Code.Status)
	assert.Equal(t, "Ana", quote.Counterpart.FullName)
	assert.Equal(t, "75.00", quote.Amount.StringFixed(2))

	gen, err := m.Confirm()
	require.NoError(t, err)
	receipt, execErr := m.Flow().Execute(ctx, m.Input(), *m.Quote())
	m.ResolveExecute(gen, receipt, execErr)

	require.Equal(t, wizard.StepDone, m.Step())
	assert.True(t, m.Receipt().NewBalance.Equal(decimal.RequireFromString("320.00")))
}

func TestProcessWithdrawal_ValidatesCodeShape(t *testing.T) {
	m := wizard.New(NewProcessWithdrawal(newFlowClient(t, &paymentsBackend{})))

	m.SetField(FieldCode, "12345")
	_, err := m.Submit()
	require.Error(t, err)
	assert.Equal(t, "El código debe tener 6 dígitos", m.ErrorMessage())
}

func TestProcessWithdrawal_ScannedCodeAutoSubmits(t *testing.T) {
	backend := &paymentsBackend{}
	m := wizard.New(NewProcessWithdrawal(newFlowClient(t, backend)))

	// A QR decode feeds the code and triggers verify without a manual
	// submit action.
	gen, err := m.FillAndSubmit(wizard.Fields{FieldCode: "482915"})
	require.NoError(t, err)
	assert.Equal(t, wizard.StepVerifying, m.Step())

	quote, verr := m.Flow().Verify(context.Background(), m.Input())
	m.ResolveVerify(gen, quote, verr)
	assert.Equal(t, wizard.StepConfirm, m.Step())
}

func TestPayLink_FixedCBU(t *testing.T) {
	backend := &paymentsBackend{}
	flow, err := NewPayLink(newFlowClient(t, backend), testCBU)
	require.NoError(t, err)

	m := wizard.New(flow)
	m.SetField(FieldAmount, "25.50")
	runVerify(t, m)

	require.Equal(t, wizard.StepConfirm, m.Step())
	assert.Equal(t, "Ana", m.Quote().Counterpart.FullName)
	assert.Equal(t, "26.50", m.Quote().Total.StringFixed(2))
}

func TestPayLink_RejectsInvalidCBU(t *testing.T) {
	_, err := NewPayLink(newFlowClient(t, &paymentsBackend{}), "123")
	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
}
