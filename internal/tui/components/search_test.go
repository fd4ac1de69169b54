package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/tui/themes"
)

func sampleContacts() []model.Contact {
	return []model.Contact{
		{ID: "c-1", Name: "Ana García", CBU: "1234567890123456789012"},
		{ID: "c-2", Name: "Bruno Díaz", CBU: "2222222222222222222222"},
	}
}

func TestSearch_EnterOnContactEmitsSelection(t *testing.T) {
	m := NewSearch(sampleContacts(), themes.Default)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(AccountSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "1234567890123456789012", msg.CBU)
	assert.Equal(t, "Ana García", msg.Name)
}

func TestSearch_DeleteKeyRemovesSelectedContact(t *testing.T) {
	m := NewSearch(sampleContacts(), themes.Default)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ContactDeletedMsg)
	require.True(t, ok)
	assert.Equal(t, "2222222222222222222222", msg.CBU, "deletes the contact under the cursor")
}

func TestSearch_DeleteKeyIgnoredOnBackendResults(t *testing.T) {
	m := NewSearch(sampleContacts(), themes.Default)
	m.input.SetValue("ana")
	m.lastQry = "ana"
	m.SetResults("ana", []model.Account{
		{CBU: "3333333333333333333333", FullName: "Ana García"},
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd, "backend results cannot be deleted locally")
}
