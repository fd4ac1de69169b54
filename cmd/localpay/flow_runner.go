package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/storage"
	"github.com/localpay/localpay/internal/wizard"
)

// runFlow drives one money-moving flow to completion from the command
// line: verify, show the quote, ask for confirmation, execute. The
// same machine the dashboard uses keeps the semantics identical; only
// the surface differs.
func runFlow(ctx context.Context, flow wizard.Flow, fields wizard.Fields, store *storage.SQLiteStorage) (*model.Receipt, error) {
	machine := wizard.New(flow)

	gen, err := machine.FillAndSubmit(fields)
	if err != nil {
		return nil, fmt.Errorf("%s", cli.FormatError(machine.ErrorMessage()))
	}

	quote, verifyErr := flow.Verify(ctx, machine.Input())
	machine.ResolveVerify(gen, quote, verifyErr)
	if machine.Step() != wizard.StepConfirm {
		return nil, fmt.Errorf("%s", cli.FormatError(machine.ErrorMessage()))
	}

	fmt.Println(cli.RenderBox(flow.Title(), formatQuote(quote)))

	answer, err := cli.NewLineReader(os.Stdin).Prompt(ctx, "¿Confirmar? (s/n)")
	if err != nil {
		return nil, err
	}
	if answer != "s" && answer != "si" && answer != "y" {
		fmt.Println(cli.FormatSubtle("Operación cancelada"))
		return nil, nil
	}

	gen, err = machine.Confirm()
	if err != nil {
		return nil, err
	}
	receipt, execErr := flow.Execute(ctx, machine.Input(), *machine.Quote())
	machine.ResolveExecute(gen, receipt, execErr)
	if machine.Step() != wizard.StepDone {
		return nil, fmt.Errorf("%s", cli.FormatError(machine.ErrorMessage()))
	}

	printReceipt(receipt)

	if store != nil {
		recordFlowResult(ctx, store, flow.Title(), quote, receipt)
	}
	return &receipt, nil
}

func formatQuote(quote model.Quote) string {
	currency := quote.Currency
	if currency == "" {
		currency = "USD"
	}

	lines := []string{
		fmt.Sprintf("Destinatario: %s", quote.Counterpart.DisplayName()),
	}
	if quote.Counterpart.CBU != "" {
		lines = append(lines, fmt.Sprintf("CBU:          %s", quote.Counterpart.CBU))
	}
	lines = append(lines,
		fmt.Sprintf("Monto:        $%s %s", quote.Amount.StringFixed(2), currency),
		fmt.Sprintf("Comisión:     $%s", quote.Fee.StringFixed(2)),
		fmt.Sprintf("Total:        $%s %s", quote.Total.StringFixed(2), currency),
	)
	if quote.Description != "" {
		lines = append(lines, fmt.Sprintf("Descripción:  %s", quote.Description))
	}
	if quote.Code != nil {
		lines = append(lines,
			fmt.Sprintf("Código:       %s", quote.Code.Code),
			fmt.Sprintf("Expira en:    %s", quote.Code.CountdownLabel(time.Now())),
		)
	}
	return strings.Join(lines, "\n")
}

func printReceipt(receipt model.Receipt) {
	fmt.Println(cli.FormatSuccess(receipt.Message))
	if txn := receipt.Transaction; txn != nil {
		fmt.Println(cli.FormatSubtle("Operación " + txn.ID))
	}
}

// recordFlowResult appends a local notification and remembers the
// counterpart. Storage failures are logged, never fatal: the backend
// operation already committed.
func recordFlowResult(ctx context.Context, store *storage.SQLiteStorage, title string, quote model.Quote, receipt model.Receipt) {
	if _, err := store.AppendNotification(ctx, model.Notification{
		Title:   title,
		Message: receipt.Message,
		Type:    model.NotificationSuccess,
	}); err != nil {
		common.LogError(err, "failed to record local notification", common.Fields{"title": title})
		fmt.Println(cli.FormatWarning("No se pudo guardar la notificación local"))
	}

	if quote.Counterpart.CBU == "" {
		return
	}
	if err := store.SaveContact(ctx, model.Contact{
		Name:     quote.Counterpart.DisplayName(),
		CBU:      quote.Counterpart.CBU,
		Email:    quote.Counterpart.Email,
		LastUsed: time.Now().UTC(),
	}); err != nil {
		common.LogError(err, "failed to save contact", common.Fields{"cbu": quote.Counterpart.CBU})
		fmt.Println(cli.FormatWarning("No se pudo guardar el contacto"))
	}
}
