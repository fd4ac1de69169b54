package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

// SearchModel finds accounts to pay. With an empty query it lists the
// saved contacts; otherwise it shows backend search results. Picking
// either kind emits AccountSelectedMsg so the parent can open a send
// wizard prefilled with the CBU.
type SearchModel struct {
	theme    themes.Theme
	input    textinput.Model
	results  []model.Account
	contacts []model.Contact
	lastQry  string
	typing   bool
	loading  bool
	cursor   int
	width    int
	height   int
}

// NewSearch creates the search view.
func NewSearch(contacts []model.Contact, theme themes.Theme) SearchModel {
	input := textinput.New()
	input.Placeholder = "Nombre, email o CBU..."
	input.CharLimit = 60
	input.Focus()

	return SearchModel{
		theme:    theme,
		input:    input,
		contacts: contacts,
		typing:   true,
	}
}

// Init returns initial commands.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetResults installs backend results for the last submitted query.
func (m *SearchModel) SetResults(query string, results []model.Account) {
	if query != m.lastQry {
		return
	}
	m.loading = false
	m.results = results
	m.cursor = 0
}

// SetContacts refreshes the saved contact list.
func (m *SearchModel) SetContacts(contacts []model.Contact) {
	m.contacts = contacts
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.typing {
			return m.handleTypingKey(msg)
		}
		return m.handleListKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m SearchModel) handleTypingKey(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.typing = false
			return m, nil
		}
		m.lastQry = query
		m.loading = true
		m.typing = false
		return m, func() tea.Msg { return SearchQueryMsg{Query: query} }

	case "down", "tab":
		m.typing = false
		m.input.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m SearchModel) handleListKey(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	items := m.itemCount()

	switch msg.String() {
	case "j", "down":
		if m.cursor < items-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.typing = true
			m.input.Focus()
			return m, textinput.Blink
		}

	case "/":
		m.typing = true
		m.input.Focus()
		return m, textinput.Blink

	case "enter":
		if cbu, name, ok := m.selected(); ok {
			return m, func() tea.Msg {
				return AccountSelectedMsg{CBU: cbu, Name: name}
			}
		}

	case "x":
		if m.showingContacts() {
			if cbu, _, ok := m.selected(); ok {
				if m.cursor >= len(m.contacts)-1 && m.cursor > 0 {
					m.cursor--
				}
				return m, func() tea.Msg {
					return ContactDeletedMsg{CBU: cbu}
				}
			}
		}
	}
	return m, nil
}

func (m SearchModel) showingContacts() bool {
	return strings.TrimSpace(m.input.Value()) == ""
}

func (m SearchModel) itemCount() int {
	if m.showingContacts() {
		return len(m.contacts)
	}
	return len(m.results)
}

func (m SearchModel) selected() (cbu, name string, ok bool) {
	if m.showingContacts() {
		if m.cursor >= len(m.contacts) {
			return "", "", false
		}
		c := m.contacts[m.cursor]
		return c.CBU, c.Name, true
	}
	if m.cursor >= len(m.results) {
		return "", "", false
	}
	acct := m.results[m.cursor]
	return acct.CBU, acct.DisplayName(), true
}

// View renders the search screen.
func (m SearchModel) View() string {
	title := m.theme.Title.Render("Buscar Cuentas")

	sections := []string{title, m.input.View(), ""}

	switch {
	case m.loading:
		sections = append(sections, m.theme.StatusPending.Render("Buscando..."))
	case m.showingContacts():
		sections = append(sections, m.renderContacts())
	default:
		sections = append(sections, m.renderResults())
	}

	footer := "[Enter] Seleccionar  [/] Buscar  [Esc] Volver"
	if m.showingContacts() && len(m.contacts) > 0 {
		footer = "[x] Eliminar contacto  " + footer
	}
	sections = append(sections, "", m.theme.Muted.Render(footer))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m SearchModel) renderContacts() string {
	if len(m.contacts) == 0 {
		return m.theme.Muted.Render("Sin contactos guardados. Escribí para buscar cuentas.")
	}

	lines := []string{m.theme.Subtitle.Render("Contactos recientes:")}
	for i, c := range m.contacts {
		line := fmt.Sprintf("%s  %s", c.Name, m.theme.Muted.Render(c.CBU))
		lines = append(lines, m.renderItem(i, line))
	}
	return strings.Join(lines, "\n")
}

func (m SearchModel) renderResults() string {
	if len(m.results) == 0 {
		return m.theme.Muted.Render("Sin resultados")
	}

	var lines []string
	for i, acct := range m.results {
		detail := acct.CBU
		if acct.Email != "" {
			detail = acct.Email + "  " + detail
		}
		line := fmt.Sprintf("%s  %s", acct.DisplayName(), m.theme.Muted.Render(detail))
		lines = append(lines, m.renderItem(i, line))
	}
	return strings.Join(lines, "\n")
}

func (m SearchModel) renderItem(index int, line string) string {
	if !m.typing && index == m.cursor {
		return m.theme.Selected.Render("> " + line)
	}
	return "  " + line
}

// Resize updates the component size.
func (m *SearchModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
