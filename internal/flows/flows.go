// Package flows binds the generic wizard to the concrete money-moving
// operations: sending money, store deposits, withdrawal-code issuance
// and redemption, and pay-by-link. Each flow supplies only its field
// set, local format checks, and the verify/execute API calls.
package flows

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/wizard"
)

// Wizard field keys shared by the flows.
const (
	FieldCBU         = "cbu"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldCode        = "code"
)

// previewFee is the flat commission shown in quote previews for flows
// whose verify endpoint reports no fee. It is display-only: the
// authoritative commission always comes back on the executed
// transaction's commissionAmount, and balances are re-fetched from the
// profile afterwards.
var previewFee = decimal.NewFromInt(1)

var (
	cbuPattern  = regexp.MustCompile(`^\d{22}$`)
	codePattern = regexp.MustCompile(`^\d{6}$`)
)

func validateCBU(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return common.NewValidationError(FieldCBU, "El CBU es requerido")
	}
	if !cbuPattern.MatchString(strings.TrimSpace(raw)) {
		return common.NewValidationError(FieldCBU, "El CBU debe tener 22 dígitos")
	}
	return nil
}

func validateCode(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return common.NewValidationError(FieldCode, "Por favor ingresa un código")
	}
	if !codePattern.MatchString(strings.TrimSpace(raw)) {
		return common.NewValidationError(FieldCode, "El código debe tener 6 dígitos")
	}
	return nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, common.NewValidationError(FieldAmount,
			"El monto debe ser un número positivo")
	}
	return amount, nil
}

func trimmed(in wizard.Fields, key string) string {
	return strings.TrimSpace(in[key])
}
