package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
	"github.com/localpay/localpay/internal/wizard"
)

// WizardFormModel renders one wizard.Machine: the input form, the
// in-flight spinner, the quote confirmation and the receipt. All state
// transitions live in the machine; this component only translates key
// presses into machine calls and emits request messages the parent
// turns into API commands.
type WizardFormModel struct {
	machine    *wizard.Machine
	theme      themes.Theme
	inputs     []textinput.Model
	specs      []wizard.FieldSpec
	spinner    spinner.Model
	now        func() time.Time
	focusIndex int
	width      int
	height     int
}

// doneDisplayDelay is how long a successful receipt stays on screen
// before the wizard closes on its own.
const doneDisplayDelay = 1500 * time.Millisecond

// doneTimeoutMsg fires the automatic close of a finished wizard. The
// generation tag keeps a stale timer from closing a newer wizard.
type doneTimeoutMsg struct {
	gen uint64
}

// NewWizardForm creates the form for a machine at StepInput.
func NewWizardForm(machine *wizard.Machine, theme themes.Theme) WizardFormModel {
	specs := machine.Flow().FieldSpecs()
	inputs := make([]textinput.Model, len(specs))
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.Placeholder
		in.CharLimit = spec.CharLimit
		in.SetValue(machine.Field(spec.Key))
		if spec.Secret {
			in.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return WizardFormModel{
		machine: machine,
		theme:   theme,
		inputs:  inputs,
		specs:   specs,
		spinner: s,
		now:     time.Now,
	}
}

// Init returns initial commands.
func (m WizardFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Machine exposes the underlying machine for the parent's commands.
func (m WizardFormModel) Machine() *wizard.Machine { return m.machine }

// AutoClose schedules the wizard's dismissal after the receipt has been
// displayed for a short delay. The parent calls this when the machine
// reaches StepDone.
func (m WizardFormModel) AutoClose() tea.Cmd {
	gen := m.machine.Generation()
	return tea.Tick(doneDisplayDelay, func(time.Time) tea.Msg {
		return doneTimeoutMsg{gen: gen}
	})
}

// Sync copies the machine's draft values back into the text inputs.
// Called by the parent after a Resolve* returned the machine to
// StepInput, so a failed verify or execute shows the preserved input.
func (m *WizardFormModel) Sync() {
	for i, spec := range m.specs {
		m.inputs[i].SetValue(m.machine.Field(spec.Key))
	}
	if m.machine.Step() == wizard.StepInput {
		m.focus(m.focusIndex)
	}
}

// Update handles messages.
func (m WizardFormModel) Update(msg tea.Msg) (WizardFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.machine.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.machine.Step() {
		case wizard.StepInput:
			return m.handleInputKey(msg)
		case wizard.StepConfirm:
			return m.handleConfirmKey(msg)
		case wizard.StepDone:
			switch msg.String() {
			case "enter", "esc", "q":
				return m, func() tea.Msg { return WizardDismissedMsg{} }
			}
		}
		return m, nil

	case doneTimeoutMsg:
		if m.machine.Step() == wizard.StepDone && msg.gen == m.machine.Generation() {
			return m, func() tea.Msg { return WizardDismissedMsg{} }
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m WizardFormModel) handleInputKey(msg tea.KeyMsg) (WizardFormModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return WizardDismissedMsg{} }

	case "tab", "down":
		m.focus((m.focusIndex + 1) % len(m.inputs))
		return m, textinput.Blink

	case "shift+tab", "up":
		m.focus((m.focusIndex - 1 + len(m.inputs)) % len(m.inputs))
		return m, textinput.Blink

	case "enter":
		if m.focusIndex < len(m.inputs)-1 {
			m.focus(m.focusIndex + 1)
			return m, textinput.Blink
		}
		gen, err := m.machine.Submit()
		if err != nil {
			return m, nil
		}
		m.blurAll()
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg { return VerifyRequestedMsg{Generation: gen} },
		)

	default:
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		m.machine.SetField(m.specs[m.focusIndex].Key, m.inputs[m.focusIndex].Value())
		return m, cmd
	}
}

func (m WizardFormModel) handleConfirmKey(msg tea.KeyMsg) (WizardFormModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		gen, err := m.machine.Confirm()
		if err != nil {
			return m, nil
		}
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg { return ExecuteRequestedMsg{Generation: gen} },
		)

	case "esc", "b", "n":
		m.machine.Back()
		m.Sync()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *WizardFormModel) focus(index int) {
	m.focusIndex = index
	for i := range m.inputs {
		if i == index {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *WizardFormModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// FocusedField returns the key of the focused field, for tests.
func (m WizardFormModel) FocusedField() string {
	return m.specs[m.focusIndex].Key
}

// View renders the wizard for its current step.
func (m WizardFormModel) View() string {
	title := m.theme.Title.Render(m.machine.Flow().Title())

	var body string
	switch m.machine.Step() {
	case wizard.StepInput:
		body = m.renderInput()
	case wizard.StepVerifying:
		body = m.renderBusy("Verificando...")
	case wizard.StepConfirm:
		body = m.renderConfirm()
	case wizard.StepExecuting:
		body = m.renderBusy("Procesando...")
	case wizard.StepDone:
		body = m.renderDone()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body)
}

func (m WizardFormModel) renderInput() string {
	var rows []string
	for i, spec := range m.specs {
		label := m.theme.Subtitle.Render(spec.Label)
		if i == m.focusIndex {
			label = m.theme.Bold.Render(spec.Label)
		}
		rows = append(rows, label, m.inputs[i].View())
	}

	if errMsg := m.machine.ErrorMessage(); errMsg != "" {
		rows = append(rows, "", m.theme.StatusError.Render(errMsg))
	}

	rows = append(rows, "", m.theme.Muted.Render("[Enter] Continuar  [Tab] Siguiente campo  [Esc] Cancelar"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m WizardFormModel) renderBusy(label string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		m.spinner.View()+" "+m.theme.Subtitle.Render(label),
	)
}

func (m WizardFormModel) renderConfirm() string {
	quote := m.machine.Quote()
	if quote == nil {
		return ""
	}

	currency := quote.Currency
	if currency == "" {
		currency = "USD"
	}

	lines := []string{
		fmt.Sprintf("Destinatario: %s", quote.Counterpart.DisplayName()),
	}
	if quote.Counterpart.CBU != "" {
		lines = append(lines, fmt.Sprintf("CBU: %s", quote.Counterpart.CBU))
	}
	lines = append(lines,
		fmt.Sprintf("Monto: $%s %s", quote.Amount.StringFixed(2), currency),
		fmt.Sprintf("Comisión: $%s", quote.Fee.StringFixed(2)),
		fmt.Sprintf("Total: $%s %s", quote.Total.StringFixed(2), currency),
	)
	if quote.Description != "" {
		lines = append(lines, fmt.Sprintf("Descripción: %s", quote.Description))
	}
	if quote.Code != nil {
		lines = append(lines,
			fmt.Sprintf("Código: %s", quote.Code.Code),
			fmt.Sprintf("Expira en: %s", quote.Code.CountdownLabel(m.now())),
		)
	}

	box := m.theme.RoundedBox.Render(m.theme.Normal.Render(strings.Join(lines, "\n")))
	help := m.theme.Muted.Render("[Enter] Confirmar  [Esc] Volver")
	return lipgloss.JoinVertical(lipgloss.Left, box, "", help)
}

func (m WizardFormModel) renderDone() string {
	receipt := m.machine.Receipt()
	if receipt == nil {
		return ""
	}

	rows := []string{m.theme.StatusSuccess.Render("✓ " + receipt.Message)}

	if txn := receipt.Transaction; txn != nil {
		detail := []string{fmt.Sprintf("Operación: %s", txn.ID)}
		if !txn.Amount.IsZero() {
			detail = append(detail, fmt.Sprintf("Monto: $%s", txn.Amount.StringFixed(2)))
		}
		rows = append(rows, m.theme.Muted.Render(strings.Join(detail, "\n")))
	}
	if code := receipt.Code; code != nil {
		rows = append(rows, m.renderCodeSummary(code))
	}

	rows = append(rows, "", m.theme.Muted.Render("[Enter] Cerrar"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m WizardFormModel) renderCodeSummary(code *model.WithdrawalCode) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.CodeDigits.Render(spaceDigits(code.Code)),
		m.theme.Subtitle.Render(fmt.Sprintf("Válido por %s", code.CountdownLabel(m.now()))),
	)
}

// spaceDigits renders "482915" as "4 8 2 9 1 5" for readability.
func spaceDigits(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

// Resize updates the component size.
func (m *WizardFormModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
