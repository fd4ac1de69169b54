package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/flows"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/wizard"
)

func depositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit cash into a user account (stores only)",
		Long: `Credit a user's account with the cash they handed over at the
counter. The user is identified by CBU and verified before the
deposit is quoted.`,
		RunE: runDeposit,
	}

	cmd.Flags().String("cbu", "", "user's 22-digit CBU")
	cmd.Flags().String("amount", "", "amount to deposit")
	cmd.Flags().String("description", "", "optional note")
	cmd.Flags().String("from-image", "", "read the user's CBU from a QR image")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runDeposit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, sessions, _, err := initClient()
	if err != nil {
		return err
	}
	sess, err := requireSession(sessions)
	if err != nil {
		return err
	}
	if sess.AccountType != model.AccountTypeStore {
		return fmt.Errorf("%s", cli.FormatError("Solo los comercios pueden cargar depósitos"))
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

	_, err = runFlow(ctx, flows.NewAddMoney(client), wizard.Fields{
		flows.FieldCBU:         cbu,
		flows.FieldAmount:      amount,
		flows.FieldDescription: description,
	}, store)
	return err
}
