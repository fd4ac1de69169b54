package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/flows"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/qr"
	"github.com/localpay/localpay/internal/wizard"
)

func withdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Cash out money at a store",
		Long: `Cash withdrawals happen in two halves. A user generates a one-time
6-digit code for an amount; a store scans or types that code to hand
over the cash and debit the user's account.`,
	}

	cmd.AddCommand(withdrawGenerateCmd(), withdrawProcessCmd())
	return cmd
}

func withdrawGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a withdrawal code for an amount",
		RunE:  runWithdrawGenerate,
	}

	cmd.Flags().String("amount", "", "amount to withdraw")
	cmd.Flags().String("png", "", "also write the code's QR to a PNG file")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runWithdrawGenerate(cmd *cobra.Command, _ []string) error {
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
		return fmt.Errorf("%s", cli.FormatError("Solo las cuentas de usuario pueden generar códigos de retiro"))
	}

	amount, _ := cmd.Flags().GetString("amount")
	pngPath, _ := cmd.Flags().GetString("png")

	// The balance check happens locally at quote time, so fetch it
	// fresh instead of trusting the cached session copy.
	account, err := client.Me(ctx, sess.AccountType)
	if err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	receipt, err := runFlow(ctx, flows.NewGenerateWithdrawal(client, account.Balance), wizard.Fields{
		flows.FieldAmount: amount,
	}, store)
	if err != nil || receipt == nil {
		return err
	}
	if receipt.Code == nil {
		return fmt.Errorf("%s", cli.FormatError("El servidor no devolvió un código de retiro"))
	}

	fmt.Println(renderWithdrawalCode(*receipt.Code))

	if pngPath != "" {
		if err := qr.WritePNG(receipt.Code.Code, pngPath, 0); err != nil {
			return err
		}
		fmt.Println(cli.FormatSubtle("QR guardado en " + pngPath))
	}
	return nil
}

// renderWithdrawalCode prints the code box the store will scan: spaced
// digits, the expiry countdown and a terminal QR.
func renderWithdrawalCode(code model.WithdrawalCode) string {
	var b strings.Builder
	b.WriteString(cli.CodeIcon + " Código: " + spacedCode(code.Code) + "\n")
	b.WriteString("Monto:  $" + code.Amount.StringFixed(2) + " USD\n")
	b.WriteString("Expira en " + code.CountdownLabel(time.Now()) + "\n")
	if ascii, err := qr.Render(code.Code); err == nil {
		b.WriteString("\n" + ascii)
	}
	return cli.RenderBox("Código de Retiro", strings.TrimRight(b.String(), "\n"))
}

func spacedCode(code string) string {
	return strings.Join(strings.Split(code, ""), " ")
}

func withdrawProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [code]",
		Short: "Process a customer's withdrawal code",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWithdrawProcess,
	}

	cmd.Flags().String("from-image", "", "read the code from a QR image")

	return cmd
}

func runWithdrawProcess(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("%s", cli.FormatError("Solo los comercios pueden procesar retiros"))
	}

	var code string
	if len(args) == 1 {
		code = args[0]
	}
	if image, _ := cmd.Flags().GetString("from-image"); image != "" {
		code, err = codeFromImage(image)
		if err != nil {
			return err
		}
	}
	if code == "" {
		return fmt.Errorf("a withdrawal code or --from-image is required")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = runFlow(ctx, flows.NewProcessWithdrawal(client), wizard.Fields{
		flows.FieldCode: code,
	}, store)
	return err
}

func codeFromImage(path string) (string, error) {
	scan, err := qr.DecodeFile(path)
	if err != nil {
		return "", err
	}
	if scan.Kind != qr.ScanWithdrawalCode {
		return "", fmt.Errorf("%s", cli.FormatError("El QR no contiene un código de retiro válido"))
	}
	return scan.Value, nil
}
