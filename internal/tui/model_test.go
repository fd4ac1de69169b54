package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

func testModel(acct model.AccountType) Model {
	return newModel(Config{
		Account:     model.Account{FullName: "Ana García", Currency: "USD"},
		AccountType: acct,
		Theme:       themes.Default,
	})
}

func press(m Model, keys string) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return next.(Model), cmd
}

func TestModel_HomeKeysFollowKeymapBindings(t *testing.T) {
	m := testModel(model.AccountTypeUser)

	m, _ = press(m, "?")
	assert.Equal(t, StateHelp, m.state)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.Equal(t, StateHome, m.state)

	m, _ = press(m, "h")
	assert.Equal(t, StateHistory, m.state)
}

func TestModel_WithdrawKeyOpensWizardPerAccountType(t *testing.T) {
	user := testModel(model.AccountTypeUser)
	user, _ = press(user, "w")
	require.Equal(t, StateWizard, user.state)
	require.NotNil(t, user.machine)
	assert.Equal(t, "Retirar Dinero", user.machine.Flow().Title())

	store := testModel(model.AccountTypeStore)
	store, _ = press(store, "w")
	require.Equal(t, StateWizard, store.state)
	require.NotNil(t, store.machine)
	assert.Equal(t, "Procesar Retiro", store.machine.Flow().Title())
}

func TestModel_StoreCannotOpenUserOnlyScreens(t *testing.T) {
	store := testModel(model.AccountTypeStore)

	store, _ = press(store, "s")
	assert.Equal(t, StateHome, store.state, "stores do not send money")

	store, _ = press(store, "i")
	assert.Equal(t, StateHome, store.state, "stores have no receiving QR screen")
}

func TestModel_ForceQuitWorksEverywhere(t *testing.T) {
	m := testModel(model.AccountTypeUser)
	m, _ = press(m, "h")
	require.Equal(t, StateHistory, m.state)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
