package components

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/qr"
	"github.com/localpay/localpay/internal/tui/themes"
)

// WithdrawalCodeModel shows a generated withdrawal code: the digits, a
// scannable QR and a live countdown to expiry. The countdown is
// advisory; the backend remains the authority on whether the code is
// still redeemable.
type WithdrawalCodeModel struct {
	code    model.WithdrawalCode
	theme   themes.Theme
	qrText  string
	now     func() time.Time
	expired bool
	width   int
	height  int
}

// NewWithdrawalCode creates the code view. The QR encodes the bare
// six digits so a store can scan it straight into its process flow.
func NewWithdrawalCode(code model.WithdrawalCode, theme themes.Theme) WithdrawalCodeModel {
	qrText, err := qr.Render(code.Code)
	if err != nil {
		qrText = ""
	}
	return WithdrawalCodeModel{
		code:   code,
		theme:  theme,
		qrText: qrText,
		now:    time.Now,
	}
}

// Init starts the countdown ticker.
func (m WithdrawalCodeModel) Init() tea.Cmd {
	return tickCountdown()
}

func tickCountdown() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return CodeTickMsg(t)
	})
}

// Update handles countdown ticks. Ticking stops once expired.
func (m WithdrawalCodeModel) Update(msg tea.Msg) (WithdrawalCodeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case CodeTickMsg:
		if m.code.Remaining(m.now()) <= 0 {
			m.expired = true
			return m, nil
		}
		return m, tickCountdown()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// Expired reports whether the countdown has reached zero.
func (m WithdrawalCodeModel) Expired() bool {
	return m.expired || m.code.Remaining(m.now()) <= 0
}

// CountdownLabel returns the current countdown text.
func (m WithdrawalCodeModel) CountdownLabel() string {
	return m.code.CountdownLabel(m.now())
}

// View renders the code card.
func (m WithdrawalCodeModel) View() string {
	title := m.theme.Title.Render("Código de Retiro")

	digits := m.theme.CodeDigits.Render(spaceDigits(m.code.Code))

	currency := m.code.Currency
	if currency == "" {
		currency = "USD"
	}
	amount := m.theme.Normal.Render(fmt.Sprintf("Monto: $%s %s", m.code.Amount.StringFixed(2), currency))

	var status string
	if m.Expired() {
		status = m.theme.StatusError.Render(model.CountdownExpired)
	} else {
		status = m.theme.StatusWarning.Render("Expira en " + m.CountdownLabel())
	}

	sections := []string{title, digits, amount, status}
	if m.qrText != "" {
		sections = append(sections, "", m.qrText)
	}
	sections = append(sections, "", m.theme.Muted.Render("Mostrá este código en el comercio  [Esc] Cerrar"))

	return m.theme.RoundedBox.Render(
		lipgloss.JoinVertical(lipgloss.Center, sections...),
	)
}

// Resize updates the component size.
func (m *WithdrawalCodeModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
