package flows

import (
	"context"
	"fmt"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

// PayLink is the pay-by-link flow: the target CBU arrives already fixed
// from a scanned or shared /pay link, so the wizard only collects amount
// and note. Verification and execution are the same calls the manual
// send flow makes.
type PayLink struct {
	client *api.Client
	cbu    string
}

// NewPayLink creates the flow for a CBU extracted from a payment link.
func NewPayLink(client *api.Client, cbu string) (*PayLink, error) {
	if err := validateCBU(cbu); err != nil {
		return nil, err
	}
	return &PayLink{client: client, cbu: cbu}, nil
}

// CBU returns the fixed target account.
func (p *PayLink) CBU() string { return p.cbu }

// Title implements wizard.Flow.
func (p *PayLink) Title() string { return "Pagar" }

// FieldSpecs implements wizard.Flow.
func (p *PayLink) FieldSpecs() []wizard.FieldSpec {
	return []wizard.FieldSpec{
		{Key: FieldAmount, Label: "Monto (USD)", Placeholder: "0.00", CharLimit: 12},
		{Key: FieldDescription, Label: "Descripción (opcional)", CharLimit: 100},
	}
}

// Validate implements wizard.Flow.
func (p *PayLink) Validate(in wizard.Fields) error {
	_, err := parseAmount(in[FieldAmount])
	return err
}

// Verify implements wizard.Flow.
func (p *PayLink) Verify(ctx context.Context, in wizard.Fields) (model.Quote, error) {
	acct, err := p.client.VerifyCBU(ctx, model.AccountTypeUser, p.cbu)
	if err != nil {
		return model.Quote{}, err
	}

	amount, err := parseAmount(in[FieldAmount])
	if err != nil {
		return model.Quote{}, err
	}

	description := trimmed(in, FieldDescription)
	if description == "" {
		description = fmt.Sprintf("Pago a %s", acct.DisplayName())
	}

	return model.Quote{
		Counterpart: model.Party{
			ID:       acct.ID,
			FullName: acct.FullName,
			CBU:      acct.CBU,
		},
		Amount:      amount,
		Fee:         previewFee,
		Total:       amount.Add(previewFee),
		Currency:    acct.CurrencyOrDefault(),
		Description: description,
	}, nil
}

// Execute implements wizard.Flow.
func (p *PayLink) Execute(ctx context.Context, _ wizard.Fields, quote model.Quote) (model.Receipt, error) {
	result, err := p.client.SendMoney(ctx, p.cbu, quote.Amount, quote.Description)
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{
		Transaction: result.Transaction,
		NewBalance:  result.SenderBalance,
		Message:     fmt.Sprintf("Pagaste $%s a %s", quote.Amount.StringFixed(2), quote.Counterpart.DisplayName()),
	}, nil
}
