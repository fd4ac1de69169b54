package wizard

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
)

var cbuPattern = regexp.MustCompile(`^\d{22}$`)

// fakeFlow mimics a send-money flow against a scripted backend.
type fakeFlow struct {
	verifyErr    error
	executeErr   error
	verifyCalls  int
	executeCalls int
}

func (f *fakeFlow) Title() string { return "Enviar Dinero" }

func (f *fakeFlow) FieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Key: "cbu", Label: "CBU"},
		{Key: "amount", Label: "Monto"},
		{Key: "description", Label: "Descripción"},
	}
}

func (f *fakeFlow) Validate(in Fields) error {
	if !cbuPattern.MatchString(in["cbu"]) {
		return common.NewValidationError("cbu", "El CBU debe tener 22 dígitos")
	}
	amount, err := decimal.NewFromString(in["amount"])
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return common.NewValidationError("amount", "El monto debe ser un número positivo")
	}
	return nil
}

func (f *fakeFlow) Verify(_ context.Context, in Fields) (model.Quote, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return model.Quote{}, f.verifyErr
	}
	amount := decimal.RequireFromString(in["amount"])
	fee := decimal.RequireFromString("1.00")
	return model.Quote{
		Counterpart: model.Party{FullName: "Ana", CBU: in["cbu"]},
		Amount:      amount,
		Fee:         fee,
		Total:       amount.Add(fee),
		Currency:    "USD",
	}, nil
}

func (f *fakeFlow) Execute(_ context.Context, _ Fields, q model.Quote) (model.Receipt, error) {
	f.executeCalls++
	if f.executeErr != nil {
		return model.Receipt{}, f.executeErr
	}
	return model.Receipt{
		Transaction: &model.Transaction{ID: "t1", Amount: q.Amount, Currency: q.Currency},
		NewBalance:  decimal.RequireFromString("8.75"),
	}, nil
}

func validInput() Fields {
	return Fields{"cbu": "1234567890123456789012", "amount": "50", "description": ""}
}

func submitValid(t *testing.T, m *Machine) uint64 {
	t.Helper()
	for k, v := range validInput() {
		m.SetField(k, v)
	}
	gen, err := m.Submit()
	require.NoError(t, err)
	return gen
}

func TestMachine_HappyPath(t *testing.T) {
	flow := &fakeFlow{}
	m := New(flow)
	ctx := context.Background()

	assert.Equal(t, StepInput, m.Step())
	assert.Nil(t, m.Quote())

	gen := submitValid(t, m)
	assert.Equal(t, StepVerifying, m.Step())
	assert.True(t, m.Busy())

	quote, err := flow.Verify(ctx, m.Input())
	m.ResolveVerify(gen, quote, err)
	require.Equal(t, StepConfirm, m.Step())
	require.NotNil(t, m.Quote())
	assert.Equal(t, "Ana", m.Quote().Counterpart.FullName)
	assert.Equal(t, "1.00", m.Quote().Fee.StringFixed(2))
	assert.Equal(t, "51.00", m.Quote().Total.StringFixed(2))

	gen, err = m.Confirm()
	require.NoError(t, err)
	assert.Equal(t, StepExecuting, m.Step())

	receipt, err := flow.Execute(ctx, m.Input(), *m.Quote())
	m.ResolveExecute(gen, receipt, err)
	require.Equal(t, StepDone, m.Step())
	require.NotNil(t, m.Receipt())
	assert.Equal(t, "t1", m.Receipt().Transaction.ID)
}

func TestMachine_ConfirmUnreachableWithoutVerify(t *testing.T) {
	m := New(&fakeFlow{})

	_, err := m.Confirm()
	assert.Error(t, err, "confirm must be rejected before any verify")

	submitValid(t, m)
	_, err = m.Confirm()
	assert.Error(t, err, "confirm must be rejected while verifying")
	assert.Equal(t, StepVerifying, m.Step())
}

func TestMachine_LocalValidationMakesNoNetworkCall(t *testing.T) {
	flow := &fakeFlow{}
	m := New(flow)

	m.SetField("cbu", "123456789012345678901") // 21 digits
	m.SetField("amount", "50")
	_, err := m.Submit()

	require.Error(t, err)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, StepInput, m.Step())
	assert.Equal(t, "El CBU debe tener 22 dígitos", m.ErrorMessage())
	assert.Zero(t, flow.verifyCalls, "no verify call for locally invalid input")
}

func TestMachine_VerifyRejectionPreservesInput(t *testing.T) {
	flow := &fakeFlow{verifyErr: errors.New("cbu not found")}
	m := New(flow)

	gen := submitValid(t, m)
	_, err := flow.Verify(context.Background(), m.Input())
	m.ResolveVerify(gen, model.Quote{}, err)

	assert.Equal(t, StepInput, m.Step())
	assert.Equal(t, "1234567890123456789012", m.Field("cbu"), "input preserved")
	assert.Equal(t, "50", m.Field("amount"))
	assert.NotEmpty(t, m.ErrorMessage())
	assert.Nil(t, m.Quote())
}

func TestMachine_ExecuteFailureReturnsToInputWithBackendMessage(t *testing.T) {
	flow := &fakeFlow{}
	m := New(flow)
	ctx := context.Background()

	gen := submitValid(t, m)
	quote, _ := flow.Verify(ctx, m.Input())
	m.ResolveVerify(gen, quote, nil)

	gen, err := m.Confirm()
	require.NoError(t, err)

	backendErr := common.NewUserError("Saldo insuficiente", errors.New("402"))
	m.ResolveExecute(gen, model.Receipt{}, backendErr)

	assert.Equal(t, StepInput, m.Step())
	assert.Equal(t, "Saldo insuficiente", m.ErrorMessage())
	assert.Equal(t, "50", m.Field("amount"), "entered amount preserved")
	assert.Nil(t, m.Quote(), "quote discarded, a fresh verify is required")
}

func TestMachine_BackKeepsValuesAndDropsQuote(t *testing.T) {
	flow := &fakeFlow{}
	m := New(flow)
	ctx := context.Background()

	gen := submitValid(t, m)
	quote, _ := flow.Verify(ctx, m.Input())
	m.ResolveVerify(gen, quote, nil)
	require.Equal(t, StepConfirm, m.Step())

	m.Back()
	assert.Equal(t, StepInput, m.Step())
	assert.Equal(t, "1234567890123456789012", m.Field("cbu"))
	assert.Nil(t, m.Quote())

	// A second verify round is required before confirming again.
	gen = submitValid(t, m)
	quote, _ = flow.Verify(ctx, m.Input())
	m.ResolveVerify(gen, quote, nil)
	assert.Equal(t, StepConfirm, m.Step())
	assert.Equal(t, 2, flow.verifyCalls)
}

func TestMachine_ResetFromEveryStepClearsState(t *testing.T) {
	flow := &fakeFlow{}
	ctx := context.Background()

	reach := map[string]func(*Machine){
		"input": func(_ *Machine) {},
		"verifying": func(m *Machine) {
			submitValid(t, m)
		},
		"confirm": func(m *Machine) {
			gen := submitValid(t, m)
			quote, _ := flow.Verify(ctx, m.Input())
			m.ResolveVerify(gen, quote, nil)
		},
		"executing": func(m *Machine) {
			gen := submitValid(t, m)
			quote, _ := flow.Verify(ctx, m.Input())
			m.ResolveVerify(gen, quote, nil)
			_, err := m.Confirm()
			require.NoError(t, err)
		},
		"done": func(m *Machine) {
			gen := submitValid(t, m)
			quote, _ := flow.Verify(ctx, m.Input())
			m.ResolveVerify(gen, quote, nil)
			gen, err := m.Confirm()
			require.NoError(t, err)
			receipt, _ := flow.Execute(ctx, m.Input(), *m.Quote())
			m.ResolveExecute(gen, receipt, nil)
		},
	}

	for name, setup := range reach {
		t.Run(name, func(t *testing.T) {
			m := New(flow)
			setup(m)

			m.Reset()
			assert.Equal(t, StepInput, m.Step())
			assert.Empty(t, m.Field("cbu"), "no residual values after reset")
			assert.Empty(t, m.Field("amount"))
			assert.Nil(t, m.Quote())
			assert.Nil(t, m.Receipt())
			assert.Empty(t, m.ErrorMessage())
		})
	}
}

func TestMachine_StaleCompletionsAreDiscarded(t *testing.T) {
	flow := &fakeFlow{}
	m := New(flow)
	ctx := context.Background()

	gen := submitValid(t, m)
	quote, _ := flow.Verify(ctx, m.Input())

	// The wizard closes before the verify resolves.
	m.Reset()
	m.ResolveVerify(gen, quote, nil)
	assert.Equal(t, StepInput, m.Step(), "completion after reset applies nothing")
	assert.Nil(t, m.Quote())

	// A stale execute completion is equally ignored.
	gen = submitValid(t, m)
	m.ResolveVerify(gen, quote, nil)
	execGen, err := m.Confirm()
	require.NoError(t, err)
	m.Reset()
	m.ResolveExecute(execGen, model.Receipt{}, nil)
	assert.Nil(t, m.Receipt())
}

func TestMachine_QuoteIsVerbatimEcho(t *testing.T) {
	// Two identical verifies must yield identical quotes; the machine
	// itself performs no arithmetic on them.
	flow := &fakeFlow{}
	ctx := context.Background()

	quotes := make([]model.Quote, 0, 2)
	for i := 0; i < 2; i++ {
		m := New(flow)
		gen := submitValid(t, m)
		quote, err := flow.Verify(ctx, m.Input())
		require.NoError(t, err)
		m.ResolveVerify(gen, quote, err)
		quotes = append(quotes, *m.Quote())
	}

	assert.True(t, quotes[0].Amount.Equal(quotes[1].Amount))
	assert.True(t, quotes[0].Fee.Equal(quotes[1].Fee))
	assert.True(t, quotes[0].Total.Equal(quotes[1].Total))
}

func TestMachine_FillAndSubmitBridgesScannedInput(t *testing.T) {
	// A decoded QR value feeds the same machine and triggers the same
	// verify transition as a manual submit.
	flow := &fakeFlow{}
	m := New(flow)

	gen, err := m.FillAndSubmit(Fields{"cbu": "1234567890123456789012", "amount": "50"})
	require.NoError(t, err)
	assert.Equal(t, StepVerifying, m.Step())

	quote, verifyErr := flow.Verify(context.Background(), m.Input())
	m.ResolveVerify(gen, quote, verifyErr)
	assert.Equal(t, StepConfirm, m.Step())
}

func TestMachine_SetFieldIgnoredWhileBusy(t *testing.T) {
	m := New(&fakeFlow{})
	submitValid(t, m)

	m.SetField("amount", "9999")
	assert.Equal(t, "50", m.Field("amount"), "input is frozen while a call is in flight")

	_, err := m.Submit()
	assert.Error(t, err, "duplicate submit rejected while verifying")
}
