package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/session"
)

const exportPageSize = 50

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transactions",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 20, "number of transactions to show")
	cmd.Flags().Int("offset", 0, "number of transactions to skip")
	cmd.Flags().String("export", "", "export the full history to a CSV file")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, sessions, _, err := initClient()
	if err != nil {
		return err
	}
	sess, err := requireSession(sessions)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("export"); path != "" {
		return exportHistory(ctx, client, sess, path)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	txns, page, err := client.History(ctx, sess.AccountType, limit, offset)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println(cli.FormatSubtle("No hay transacciones registradas"))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Historial (%d-%d de %d)",
		page.Offset+1, page.Offset+len(txns), page.Total)))
	for _, txn := range txns {
		printTransactionLine(txn)
	}
	if page.HasMore() {
		fmt.Println(cli.FormatSubtle(fmt.Sprintf(
			"Hay más resultados. Usá --offset %d para la página siguiente.",
			page.Offset+page.Limit)))
	}
	return nil
}

func printTransactionLine(txn model.Transaction) {
	amount := txn.SignedAmount()
	if txn.Direction == model.DirectionIncoming {
		amount = cli.SuccessStyle.Render(amount)
	} else {
		amount = cli.ErrorStyle.Render(amount)
	}

	counterpart := "N/A"
	if txn.OtherParty != nil {
		counterpart = txn.OtherParty.DisplayName()
	}

	fmt.Printf("%s  %-12s %-25s %12s  %s\n",
		txn.CreatedAt.Local().Format("02/01/2006 15:04"),
		transactionTypeLabel(txn.Type),
		counterpart,
		amount,
		cli.SubtleStyle.Render(txn.Status),
	)
}

func transactionTypeLabel(kind string) string {
	switch kind {
	case model.TypeTransfer:
		return "Transferencia"
	case model.TypeDeposit:
		return "Depósito"
	case model.TypeWithdrawal:
		return "Retiro"
	default:
		return kind
	}
}

// exportHistory pages through the complete history and writes one CSV
// row per transaction.
func exportHistory(ctx context.Context, client *api.Client, sess *session.Session, path string) error {
	txns, page, err := client.History(ctx, sess.AccountType, exportPageSize, 0)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(page.Total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Exportando historial...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	header := []string{"id", "fecha", "tipo", "direccion", "contraparte",
		"cbu", "monto", "comision", "neto", "moneda", "estado", "descripcion"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	for {
		for _, txn := range txns {
			if err := w.Write(csvRow(txn)); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			_ = bar.Add(1)
		}
		if !page.HasMore() {
			break
		}
		txns, page, err = client.History(ctx, sess.AccountType, exportPageSize, page.Offset+page.Limit)
		if err != nil {
			return err
		}
		if len(txns) == 0 {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Historial exportado a " + path))
	return nil
}

func csvRow(txn model.Transaction) []string {
	counterpart, cbu := "", ""
	if txn.OtherParty != nil {
		counterpart = txn.OtherParty.DisplayName()
		cbu = txn.OtherParty.CBU
	}
	return []string{
		txn.ID,
		txn.CreatedAt.UTC().Format(time.RFC3339),
		txn.Type,
		txn.Direction,
		counterpart,
		cbu,
		txn.Amount.StringFixed(2),
		txn.CommissionAmount.StringFixed(2),
		txn.NetAmount.StringFixed(2),
		txn.Currency,
		txn.Status,
		txn.Description,
	}
}
