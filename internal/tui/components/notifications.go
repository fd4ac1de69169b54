package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

// NotificationsModel lists locally stored notifications with an
// unread-only toggle. Opening an item marks it read through the parent.
type NotificationsModel struct {
	theme         themes.Theme
	notifications []model.Notification
	unreadOnly    bool
	cursor        int
	width         int
	height        int
}

// NewNotifications creates the notifications view.
func NewNotifications(notifications []model.Notification, theme themes.Theme) NotificationsModel {
	return NotificationsModel{theme: theme, notifications: notifications}
}

// SetNotifications replaces the backing data after a reload.
func (m *NotificationsModel) SetNotifications(notifications []model.Notification) {
	m.notifications = notifications
	if m.cursor >= len(m.visible()) {
		m.cursor = 0
	}
}

func (m NotificationsModel) visible() []model.Notification {
	if !m.unreadOnly {
		return m.notifications
	}
	var unread []model.Notification
	for _, n := range m.notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread
}

// Update handles messages.
func (m NotificationsModel) Update(msg tea.Msg) (NotificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		items := m.visible()
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(items)-1 {
				m.cursor++
			}

		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "u":
			m.unreadOnly = !m.unreadOnly
			m.cursor = 0

		case "enter":
			if m.cursor < len(items) && !items[m.cursor].Read {
				id := items[m.cursor].ID
				return m, func() tea.Msg { return NotificationReadMsg{ID: id} }
			}

		case "C":
			return m, func() tea.Msg { return NotificationsClearedMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the list.
func (m NotificationsModel) View() string {
	title := m.theme.Title.Render("Notificaciones")

	items := m.visible()
	var lines []string
	if len(items) == 0 {
		lines = append(lines, m.theme.Muted.Render("Sin notificaciones"))
	}
	for i, n := range items {
		lines = append(lines, m.renderNotification(i, n))
	}

	filter := "todas"
	if m.unreadOnly {
		filter = "no leídas"
	}
	footer := m.theme.Muted.Render("Mostrando: " + filter + "  [Enter] Marcar leída  [u] Filtrar  [C] Borrar todas  [Esc] Volver")

	sections := []string{title}
	sections = append(sections, lines...)
	sections = append(sections, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m NotificationsModel) renderNotification(index int, n model.Notification) string {
	marker := " "
	if !n.Read {
		marker = "●"
	}

	var status lipgloss.Style
	switch n.Type {
	case model.NotificationSuccess:
		status = m.theme.StatusSuccess
	case model.NotificationError:
		status = m.theme.StatusError
	default:
		status = m.theme.StatusPending
	}

	line := status.Render(marker) + " " + m.theme.Bold.Render(n.Title) + "  " + m.theme.Normal.Render(n.Message)
	if index == m.cursor {
		return m.theme.Selected.Render("> ") + line
	}
	return "  " + line
}

// Resize updates the component size.
func (m *NotificationsModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
