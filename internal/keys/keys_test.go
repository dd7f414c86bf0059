package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	k := DefaultKeyMap()

	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, k.NextPane))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, k.PrevPane))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")}, k.Open))
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, k.Quit))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, k.Quit))
}

func TestFullHelp_CoversShortHelp(t *testing.T) {
	k := DefaultKeyMap()

	var all []key.Binding
	for _, group := range k.FullHelp() {
		all = append(all, group...)
	}
	for _, b := range k.ShortHelp() {
		assert.Contains(t, all, b, b.Help().Key)
	}
}
