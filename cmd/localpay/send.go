package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/flows"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/qr"
	"github.com/localpay/localpay/internal/wizard"
)

func sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send money to another account by CBU",
		Long: `Transfer money to a user or store identified by its 22-digit CBU.
The recipient is verified and the operation quoted before anything
moves; nothing executes without your confirmation.`,
		RunE: runSend,
	}

	cmd.Flags().String("cbu", "", "recipient's 22-digit CBU")
	cmd.Flags().String("amount", "", "amount to send")
	cmd.Flags().String("description", "", "optional note")
	cmd.Flags().String("from-image", "", "read the recipient from a QR image instead of --cbu")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runSend(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, sessions, _, err := initClient()
	if err != nil {
		return err
	}
	sess, err := requireSession(sessions)
	if err != nil {
		return err
	}
	if sess.AccountType != model.AccountTypeUser {
		return fmt.Errorf("%s", cli.FormatError("Solo las cuentas de usuario pueden enviar dinero"))
	}

	cbu, _ := cmd.Flags().GetString("cbu")
	amount, _ := cmd.Flags().GetString("amount")
	description, _ := cmd.Flags().GetString("description")

	if image, _ := cmd.Flags().GetString("from-image"); image != "" {
		cbu, err = cbuFromImage(image)
		if err != nil {
			return err
		}
	}
	if cbu == "" {
		return fmt.Errorf("either --cbu or --from-image is required")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = runFlow(ctx, flows.NewSend(client), wizard.Fields{
		flows.FieldCBU:         cbu,
		flows.FieldAmount:      amount,
		flows.FieldDescription: description,
	}, store)
	return err
}

// cbuFromImage decodes a QR image and extracts a CBU, accepting both
// payment links and bare CBUs.
func cbuFromImage(path string) (string, error) {
	result, err := qr.DecodeFile(path)
	if err != nil {
		return "", fmt.Errorf("%s", cli.FormatError("No se pudo leer el código QR"))
	}

	switch result.Kind {
	case qr.ScanPayLink, qr.ScanCBU:
		return result.Value, nil
	default:
		return "", fmt.Errorf("%s", cli.FormatError("El QR no contiene un CBU válido"))
	}
}
