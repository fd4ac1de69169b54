package flows

import (
	"context"
	"fmt"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

// Send is the user-to-user transfer flow: verify the target CBU, show
// the quote, execute the transfer.
type Send struct {
	client *api.Client
}

// NewSend creates the send-money flow.
func NewSend(client *api.Client) *Send {
	return &Send{client: client}
}

// Title implements wizard.Flow.
func (s *Send) Title() string { return "Enviar Dinero" }

// FieldSpecs implements wizard.Flow.
func (s *Send) FieldSpecs() []wizard.FieldSpec {
	return []wizard.FieldSpec{
		{Key: FieldCBU, Label: "CBU del destinatario", Placeholder: "22 dígitos", CharLimit: 22},
		{Key: FieldAmount, Label: "Monto (USD)", Placeholder: "0.00", CharLimit: 12},
		{Key: FieldDescription, Label: "Descripción (opcional)", CharLimit: 100},
	}
}

// Validate implements wizard.Flow.
func (s *Send) Validate(in wizard.Fields) error {
	if err := validateCBU(in[FieldCBU]); err != nil {
		return err
	}
	_, err := parseAmount(in[FieldAmount])
	return err
}

// Verify implements wizard.Flow.
func (s *Send) Verify(ctx context.Context, in wizard.Fields) (model.Quote, error) {
	acct, err := s.client.VerifyCBU(ctx, model.AccountTypeUser, trimmed(in, FieldCBU))
	if err != nil {
		return model.Quote{}, err
	}

	amount, err := parseAmount(in[FieldAmount])
	if err != nil {
		return model.Quote{}, err
	}

	return model.Quote{
		Counterpart: model.Party{
			ID:       acct.ID,
			FullName: acct.FullName,
			CBU:      acct.CBU,
			Email:    acct.Email,
		},
		Amount:      amount,
		Fee:         previewFee,
		Total:       amount.Add(previewFee),
		Currency:    acct.CurrencyOrDefault(),
		Description: s.description(in, acct),
	}, nil
}

// Execute implements wizard.Flow.
func (s *Send) Execute(ctx context.Context, in wizard.Fields, quote model.Quote) (model.Receipt, error) {
	result, err := s.client.SendMoney(ctx, trimmed(in, FieldCBU), quote.Amount, quote.Description)
	if err != nil {
		return model.Receipt{}, err
	}
	return model.Receipt{
		Transaction: result.Transaction,
		NewBalance:  result.SenderBalance,
		Message:     fmt.Sprintf("Enviaste $%s a %s", quote.Amount.StringFixed(2), quote.Counterpart.DisplayName()),
	}, nil
}

func (s *Send) description(in wizard.Fields, acct *model.Account) string {
	if desc := trimmed(in, FieldDescription); desc != "" {
		return desc
	}
	return fmt.Sprintf("Pago a %s", acct.DisplayName())
}
