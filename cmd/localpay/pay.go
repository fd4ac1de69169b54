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

func payCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay [link-or-cbu]",
		Short: "Pay through a shared payment link or scanned QR",
		Long: `Pay a recipient identified by a LocalPay payment link, a bare CBU,
or a QR image of either. The target account is fixed by the link; you
only choose the amount.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPay,
	}

	cmd.Flags().String("amount", "", "amount to pay")
	cmd.Flags().String("description", "", "optional note")
	cmd.Flags().String("from-image", "", "read the payment link from a QR image")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPay(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("%s", cli.FormatError("Solo las cuentas de usuario pueden pagar"))
	}

	var scan qr.ScanResult
	if len(args) == 1 {
		scan = qr.Classify(args[0])
	}
	if image, _ := cmd.Flags().GetString("from-image"); image != "" {
		scan, err = qr.DecodeFile(image)
		if err != nil {
			return err
		}
	}
	if scan.Value == "" {
		return fmt.Errorf("a payment link, CBU or --from-image is required")
	}

	if scan.Kind != qr.ScanPayLink && scan.Kind != qr.ScanCBU {
		return fmt.Errorf("%s", cli.FormatError("El enlace no contiene un CBU válido"))
	}

	flow, err := flows.NewPayLink(client, scan.Value)
	if err != nil {
		return err
	}

	amount, _ := cmd.Flags().GetString("amount")
	description, _ := cmd.Flags().GetString("description")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = runFlow(ctx, flow, wizard.Fields{
		flows.FieldAmount:      amount,
		flows.FieldDescription: description,
	}, store)
	return err
}
