package flows

import (
	"context"
	"fmt"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

// AddMoney is the store cash-in flow: a store verifies a customer's CBU
// and deposits cash handed over the counter into that account.
type AddMoney struct {
	client *api.Client
}

// NewAddMoney creates the store add-money flow.
func NewAddMoney(client *api.Client) *AddMoney {
	return &AddMoney{client: client}
}

// Title implements wizard.Flow.
func (a *AddMoney) Title() string { return "Agregar Dinero" }

// FieldSpecs implements wizard.Flow.
func (a *AddMoney) FieldSpecs() []wizard.FieldSpec {
	return []wizard.FieldSpec{
		{Key: FieldCBU, Label: "CBU del cliente", Placeholder: "22 dígitos", CharLimit: 22},
		{Key: FieldAmount, Label: "Monto (USD)", Placeholder: "0.00", CharLimit: 12},
		{Key: FieldDescription, Label: "Descripción (opcional)", CharLimit: 100},
	}
}

// Validate implements wizard.Flow.
func (a *AddMoney) Validate(in wizard.Fields) error {
	if err := validateCBU(in[FieldCBU]); err != nil {
		return err
	}
	_, err := parseAmount(in[FieldAmount])
	return err
}

// Verify implements wizard.Flow.
func (a *AddMoney) Verify(ctx context.Context, in wizard.Fields) (model.Quote, error) {
	acct, err := a.client.VerifyCBU(ctx, model.AccountTypeStore, trimmed(in, FieldCBU))
	if err != nil {
		return model.Quote{}, err
	}

	amount, err := parseAmount(in[FieldAmount])
	if err != nil {
		return model.Quote{}, err
	}

	description := trimmed(in, FieldDescription)
	if description == "" {
		description = fmt.Sprintf("Depósito de %s USD", amount.StringFixed(2))
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
func (a *AddMoney) Execute(ctx context.Context, in wizard.Fields, quote model.Quote) (model.Receipt, error) {
	result, err := a.client.AddMoney(ctx, trimmed(in, FieldCBU), quote.Amount, quote.Description)
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{
		Transaction: result.Transaction,
		NewBalance:  result.StoreBalance,
		Message:     fmt.Sprintf("Depositaste $%s en la cuenta de %s", quote.Amount.StringFixed(2), quote.Counterpart.DisplayName()),
	}, nil
}
