package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/qr"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateHome:
		body = m.renderHome()
	case StateWizard:
		body = m.wizardView.View()
	case StateCode:
		body = m.codeView.View()
	case StateHistory:
		body = m.txnList.View()
	case StateDetail:
		body = m.txnDetail.View()
	case StateSearch:
		body = m.searchView.View()
	case StateNotifications:
		body = m.notifView.View()
	case StateProfile:
		body = m.renderProfile()
	case StateMyQR:
		body = m.renderMyQR()
	case StateHelp:
		body = m.renderHelp()
	}

	sections := []string{m.renderHeader(), body}
	if m.lastError != "" {
		sections = append(sections, m.theme.StatusError.Render(m.lastError))
	}

	return m.theme.Box.Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m Model) renderHeader() string {
	name := m.account.DisplayName()
	badge := "Usuario"
	if m.acctType == model.AccountTypeStore {
		badge = "Comercio"
	}

	left := m.theme.Bold.Render("LocalPay") + "  " + m.theme.Muted.Render(badge)
	right := m.theme.Normal.Render(name)
	if m.unread > 0 {
		right += "  " + m.theme.StatusWarning.Render(fmt.Sprintf("(%d sin leer)", m.unread))
	}
	return left + "   " + right
}

func (m Model) renderHome() string {
	balance := m.theme.BalanceCard.Render(
		lipgloss.JoinVertical(
			lipgloss.Center,
			m.theme.Subtitle.Render("Saldo disponible"),
			m.theme.Title.Render(fmt.Sprintf("$%s %s", m.account.Balance.StringFixed(2), m.account.CurrencyOrDefault())),
		),
	)

	var menu []string
	if m.acctType == model.AccountTypeUser {
		menu = []string{
			m.menuItem("s", "Enviar Dinero"),
			m.menuItem("w", "Retirar Dinero"),
			m.menuItem("i", "Mi QR"),
		}
	} else {
		menu = []string{
			m.menuItem("d", "Agregar Dinero"),
			m.menuItem("w", "Procesar Retiro"),
		}
	}
	menu = append(menu,
		m.menuItem("h", "Movimientos"),
		m.menuItem("b", "Buscar Cuentas"),
		m.menuItem("n", "Notificaciones"),
		m.menuItem("p", "Perfil"),
	)

	extra := ""
	if m.acctType == model.AccountTypeStore && !m.account.Commissions.IsZero() {
		extra = m.theme.Muted.Render(
			fmt.Sprintf("Comisiones acumuladas: $%s", m.account.Commissions.StringFixed(2)),
		)
	}

	footer := m.theme.Muted.Render("[r] Actualizar  [?] Ayuda  [q] Salir")

	sections := []string{balance, "", strings.Join(menu, "\n")}
	if extra != "" {
		sections = append(sections, "", extra)
	}
	sections = append(sections, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) menuItem(keyLabel, label string) string {
	return m.theme.Bold.Render("["+keyLabel+"] ") + m.theme.Normal.Render(label)
}

func (m Model) renderProfile() string {
	a := m.account

	rows := []string{
		m.theme.Title.Render("Perfil"),
		m.profileRow("Nombre", a.DisplayName()),
		m.profileRow("Email", a.Email),
	}
	if a.Phone != "" {
		rows = append(rows, m.profileRow("Teléfono", a.Phone))
	}
	if a.CBU != "" {
		rows = append(rows, m.profileRow("CBU", a.CBU))
	}
	if a.City != "" {
		rows = append(rows, m.profileRow("Ciudad", a.City))
	}
	if a.BusinessType != "" {
		rows = append(rows, m.profileRow("Rubro", a.BusinessType))
	}

	if a.Privacy != nil {
		rows = append(rows,
			"",
			m.theme.Subtitle.Render("Privacidad"),
			m.profileRow("Mostrar email", boolLabel(a.Privacy.ShowEmail)),
			m.profileRow("Mostrar teléfono", boolLabel(a.Privacy.ShowPhone)),
		)
	}

	rows = append(rows, "", m.theme.Muted.Render("Editá tu perfil con 'localpay profile'  [Esc] Volver"))
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) profileRow(label, value string) string {
	return m.theme.Muted.Render(label+": ") + m.theme.Normal.Render(value)
}

func boolLabel(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func (m Model) renderMyQR() string {
	link, err := qr.PayLink(m.config.PayHost, m.account.CBU)
	if err != nil {
		return m.theme.StatusError.Render("Tu cuenta no tiene un CBU válido")
	}
	code, err := qr.Render(link)
	if err != nil {
		return m.theme.StatusError.Render("No se pudo generar el código QR")
	}

	return lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Mi QR"),
		code,
		m.theme.Muted.Render(link),
		"",
		m.theme.Muted.Render("Compartí este código para recibir pagos  [Esc] Volver"),
	)
}

func (m Model) renderHelp() string {
	var sections []string
	sections = append(sections, m.theme.Title.Render("Atajos de teclado"))

	for _, group := range m.keymap.FullHelp() {
		var lines []string
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines, fmt.Sprintf("%-12s %s", h.Key, h.Desc))
		}
		sections = append(sections, m.theme.Normal.Render(strings.Join(lines, "\n")), "")
	}

	sections = append(sections, m.theme.Muted.Render("[Esc] Volver"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
