package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

// TransactionListModel manages the transaction history view: a paged
// table with an inline text filter over type, counterpart and
// description.
type TransactionListModel struct {
	theme        themes.Theme
	transactions []model.Transaction
	filtered     []model.Transaction
	pagination   model.Pagination
	filterInput  textinput.Model
	table        table.Model
	filtering    bool
	width        int
	height       int
}

// NewTransactionList creates the history table.
func NewTransactionList(transactions []model.Transaction, pagination model.Pagination, theme themes.Theme) TransactionListModel {
	columns := []table.Column{
		{Title: "Fecha", Width: 16},
		{Title: "Tipo", Width: 12},
		{Title: "Contraparte", Width: 24},
		{Title: "Monto", Width: 12},
		{Title: "Estado", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	filterInput := textinput.New()
	filterInput.Placeholder = "Buscar en movimientos..."
	filterInput.CharLimit = 50

	m := TransactionListModel{
		theme:        theme,
		transactions: transactions,
		filtered:     transactions,
		pagination:   pagination,
		filterInput:  filterInput,
		table:        t,
	}
	m.refreshRows()
	return m
}

// SetTransactions replaces the backing data, e.g. after a page load.
func (m *TransactionListModel) SetTransactions(transactions []model.Transaction, pagination model.Pagination) {
	m.transactions = transactions
	m.pagination = pagination
	m.applyFilter()
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKey(msg)
		}
		switch msg.String() {
		case "/":
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink

		case "enter":
			if txn, ok := m.selectedTransaction(); ok {
				return m, func() tea.Msg {
					return TransactionSelectedMsg{Transaction: txn, Index: m.table.Cursor()}
				}
			}
			return m, nil

		case "m":
			if m.pagination.HasMore() {
				offset := m.pagination.Offset + m.pagination.Limit
				return m, func() tea.Msg { return LoadMoreMsg{Offset: offset} }
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TransactionListModel) handleFilterKey(msg tea.KeyMsg) (TransactionListModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filterInput.SetValue("")
		}
		m.filtering = false
		m.filterInput.Blur()
		m.applyFilter()
		return m, nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter()
		return m, cmd
	}
}

func (m *TransactionListModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if query == "" {
		m.filtered = m.transactions
		m.refreshRows()
		return
	}

	var filtered []model.Transaction
	for _, txn := range m.transactions {
		if transactionMatches(txn, query) {
			filtered = append(filtered, txn)
		}
	}
	m.filtered = filtered
	m.refreshRows()
}

func transactionMatches(txn model.Transaction, query string) bool {
	haystack := []string{txn.Type, txn.Description, txn.Status}
	if txn.OtherParty != nil {
		haystack = append(haystack, txn.OtherParty.DisplayName(), txn.OtherParty.CBU)
	}
	for _, field := range haystack {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (m *TransactionListModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.filtered))
	for _, txn := range m.filtered {
		rows = append(rows, table.Row{
			formatDate(txn.CreatedAt),
			typeLabel(txn.Type),
			counterpartLabel(txn),
			m.amountCell(txn),
			txn.Status,
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func (m TransactionListModel) amountCell(txn model.Transaction) string {
	return txn.SignedAmount()
}

// typeLabel maps a transaction type to its display name.
func typeLabel(t string) string {
	switch t {
	case model.TypeTransfer:
		return "Transferencia"
	case model.TypeDeposit:
		return "Depósito"
	case model.TypeWithdrawal:
		return "Retiro"
	default:
		return t
	}
}

func counterpartLabel(txn model.Transaction) string {
	if txn.OtherParty == nil {
		return "N/A"
	}
	return txn.OtherParty.DisplayName()
}

// formatDate renders a timestamp as a short local date.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}

func (m TransactionListModel) selectedTransaction() (model.Transaction, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return model.Transaction{}, false
	}
	return m.filtered[cursor], true
}

// View renders the list.
func (m TransactionListModel) View() string {
	title := m.theme.Title.Render("Movimientos")

	sections := []string{title}
	if m.filtering || m.filterInput.Value() != "" {
		sections = append(sections, m.filterInput.View())
	}
	sections = append(sections, m.table.View())

	if len(m.filtered) == 0 {
		sections = append(sections, m.theme.Muted.Render("Sin movimientos"))
	}

	footer := "[Enter] Detalle  [/] Buscar  [Esc] Volver"
	if m.pagination.HasMore() {
		footer = "[m] Más movimientos  " + footer
	}
	sections = append(sections, m.theme.Muted.Render(footer))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	if height > 8 {
		m.table.SetHeight(height - 8)
	}
}
