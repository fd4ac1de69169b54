package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

// TransactionDetailModel renders one transaction in full.
type TransactionDetailModel struct {
	theme       themes.Theme
	transaction model.Transaction
	width       int
	height      int
}

// NewTransactionDetail creates the detail view.
func NewTransactionDetail(txn model.Transaction, theme themes.Theme) TransactionDetailModel {
	return TransactionDetailModel{theme: theme, transaction: txn}
}

// Update handles messages.
func (m TransactionDetailModel) Update(msg tea.Msg) (TransactionDetailModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the detail card.
func (m TransactionDetailModel) View() string {
	txn := m.transaction

	amountStyle := m.theme.AmountOut
	if txn.Direction == model.DirectionIncoming {
		amountStyle = m.theme.AmountIn
	}

	rows := []string{
		m.theme.Title.Render(typeLabel(txn.Type)),
		amountStyle.Render(fmt.Sprintf("%s %s", txn.SignedAmount(), txn.Currency)),
		"",
		m.row("Fecha", formatDate(txn.CreatedAt)),
		m.row("Estado", txn.Status),
		m.row("Contraparte", counterpartLabel(txn)),
	}

	if txn.OtherParty != nil && txn.OtherParty.CBU != "" {
		rows = append(rows, m.row("CBU", txn.OtherParty.CBU))
	}
	if txn.Description != "" {
		rows = append(rows, m.row("Descripción", txn.Description))
	}
	if !txn.CommissionAmount.IsZero() {
		rows = append(rows,
			m.row("Comisión", "$"+txn.CommissionAmount.StringFixed(2)),
			m.row("Neto", "$"+txn.NetAmount.StringFixed(2)),
		)
	}
	rows = append(rows, m.row("ID", txn.ID))

	rows = append(rows, "", m.theme.Muted.Render("[Esc] Volver"))

	return m.theme.RoundedBox.Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m TransactionDetailModel) row(label, value string) string {
	return m.theme.Muted.Render(label+": ") + m.theme.Normal.Render(value)
}

// Resize updates the component size.
func (m *TransactionDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
