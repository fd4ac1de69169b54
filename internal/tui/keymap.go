package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	// Home actions
	Send          key.Binding
	Deposit       key.Binding
	Withdraw      key.Binding
	Process       key.Binding
	History       key.Binding
	Search        key.Binding
	Notifications key.Binding
	Profile       key.Binding
	MyQR          key.Binding

	// Application
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "bajar"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "seleccionar"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "volver"),
		),

		Send: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "enviar dinero"),
		),
		Deposit: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "agregar dinero"),
		),
		Withdraw: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "retirar dinero"),
		),
		Process: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "procesar retiro"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "movimientos"),
		),
		Search: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buscar cuentas"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notificaciones"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "perfil"),
		),
		MyQR: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "mi QR"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "actualizar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "salir"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "forzar salida"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "limpiar pantalla"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Select, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Send, k.Withdraw, k.History, k.Search},
		{k.Notifications, k.Profile, k.MyQR, k.Refresh},
		{k.Help, k.Quit},
	}
}
