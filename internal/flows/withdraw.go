package flows

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

// GenerateWithdrawal is the user flow that issues a one-time withdrawal
// code. There is no verify endpoint; the quote is assembled locally from
// the entered amount plus the preview fee, and execution asks the
// backend to mint the code.
type GenerateWithdrawal struct {
	client    *api.Client
	available decimal.Decimal
}

// NewGenerateWithdrawal creates the flow. available is the balance shown
// on the dashboard, used only for the early insufficient-funds check;
// the backend re-checks authoritatively at execute time.
func NewGenerateWithdrawal(client *api.Client, available decimal.Decimal) *GenerateWithdrawal {
	return &GenerateWithdrawal{client: client, available: available}
}

// Title implements wizard.Flow.
func (g *GenerateWithdrawal) Title() string { return "Retirar Dinero" }

// FieldSpecs implements wizard.Flow.
func (g *GenerateWithdrawal) FieldSpecs() []wizard.FieldSpec {
	return []wizard.FieldSpec{
		{Key: FieldAmount, Label: "Monto a retirar (USD)", Placeholder: "0.00", CharLimit: 12},
	}
}

// Validate implements wizard.Flow.
func (g *GenerateWithdrawal) Validate(in wizard.Fields) error {
	amount, err := parseAmount(in[FieldAmount])
	if err != nil {
		return err
	}
	required := amount.Add(previewFee)
	if g.available.LessThan(required) {
		return common.NewValidationError(FieldAmount,
			fmt.Sprintf("Saldo insuficiente. Se requiere %s USD (%s + %s de comisión)",
				required.StringFixed(2), amount.StringFixed(2), previewFee.StringFixed(2)))
	}
	return nil
}

// Verify implements wizard.Flow.
func (g *GenerateWithdrawal) Verify(_ context.Context, in wizard.Fields) (model.Quote, error) {
	amount, err := parseAmount(in[FieldAmount])
	if err != nil {
		return model.Quote{}, err
	}
	return model.Quote{
		Amount:   amount,
		Fee:      previewFee,
		Total:    amount.Add(previewFee),
		Currency: "USD",
	}, nil
}

// Execute implements wizard.Flow.
func (g *GenerateWithdrawal) Execute(ctx context.Context, _ wizard.Fields, quote model.Quote) (model.Receipt, error) {
	code, err := g.client.GenerateWithdrawal(ctx, quote.Amount)
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{
		Code:    code,
		Message: fmt.Sprintf("Código de retiro generado por $%s", code.Amount.StringFixed(2)),
	}, nil
}

// ProcessWithdrawal is the store flow that redeems a customer's
// withdrawal code: look the code up (quote), confirm, process. The code
// may be typed or come from a scanned QR; the flow cannot tell.
type ProcessWithdrawal struct {
	client *api.Client
}

// NewProcessWithdrawal creates the flow.
func NewProcessWithdrawal(client *api.Client) *ProcessWithdrawal {
	return &ProcessWithdrawal{client: client}
}

// Title implements wizard.Flow.
func (p *ProcessWithdrawal) Title() string { return "Procesar Retiro" }

// FieldSpecs implements wizard.Flow.
func (p *ProcessWithdrawal) FieldSpecs() []wizard.FieldSpec {
	return []wizard.FieldSpec{
		{Key: FieldCode, Label: "Código de retiro", Placeholder: "6 dígitos", CharLimit: 6},
	}
}

// Validate implements wizard.Flow.
func (p *ProcessWithdrawal) Validate(in wizard.Fields) error {
	return validateCode(in[FieldCode])
}

// Verify implements wizard.Flow.
func (p *ProcessWithdrawal) Verify(ctx context.Context, in wizard.Fields) (model.Quote, error) {
	info, err := p.client.WithdrawalInfo(ctx, trimmed(in, FieldCode))
	if err != nil {
		return model.Quote{}, err
	}

	quote := model.Quote{
		Amount:   info.Amount,
		Currency: info.Currency,
		Code:     info,
	}
	if info.User != nil {
		quote.Counterpart = *info.User
	}
	return quote, nil
}

// Execute implements wizard.Flow.
func (p *ProcessWithdrawal) Execute(ctx context.Context, in wizard.Fields, quote model.Quote) (model.Receipt, error) {
	result, err := p.client.ProcessWithdrawal(ctx, trimmed(in, FieldCode))
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{
		Transaction: result.Transaction,
		NewBalance:  result.StoreBalance,
		Message:     fmt.Sprintf("Retiro procesado por $%s", quote.Amount.StringFixed(2)),
	}, nil
}
