package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		panic("unknown key " + s)
	}
}

func pickerItems() []PickerItem {
	return []PickerItem{
		{Label: "one", Value: "1"},
		{Label: "two", Value: "2"},
		{Label: "three", Value: "3"},
	}
}

func TestPicker_MoveAndSelect(t *testing.T) {
	m := NewPicker("Pick one", pickerItems())

	updated, _ := m.Update(key("down"))
	updated, _ = updated.Update(key("down"))
	updated, cmd := updated.Update(key("enter"))

	result, ok := updated.(PickerModel)
	require.True(t, ok)
	require.NotNil(t, result.Choice)
	assert.Equal(t, "3", result.Choice.Value)
	assert.NotNil(t, cmd)
}

func TestPicker_CursorStaysInBounds(t *testing.T) {
	m := NewPicker("Pick one", pickerItems())

	var updated tea.Model = m
	for range 10 {
		updated, _ = updated.Update(key("j"))
	}
	updated, _ = updated.Update(key("enter"))

	result := updated.(PickerModel)
	require.NotNil(t, result.Choice)
	assert.Equal(t, "3", result.Choice.Value)
}

func TestPicker_UpFromTopIsNoop(t *testing.T) {
	m := NewPicker("Pick one", pickerItems())

	updated, _ := m.Update(key("up"))
	updated, _ = updated.Update(key("enter"))

	result := updated.(PickerModel)
	require.NotNil(t, result.Choice)
	assert.Equal(t, "1", result.Choice.Value)
}

func TestPicker_Cancel(t *testing.T) {
	m := NewPicker("Pick one", pickerItems())

	updated, cmd := m.Update(key("esc"))

	result := updated.(PickerModel)
	assert.True(t, result.Canceled)
	assert.Nil(t, result.Choice)
	assert.NotNil(t, cmd)
}

func TestPicker_EnterOnEmptyListQuits(t *testing.T) {
	m := NewPicker("Pick one", nil)

	updated, cmd := m.Update(key("enter"))

	result := updated.(PickerModel)
	assert.Nil(t, result.Choice)
	assert.NotNil(t, cmd)
}

func TestPicker_ViewMarksSelection(t *testing.T) {
	m := NewPicker("Pick one", pickerItems())

	view := m.View()

	assert.Contains(t, view, "Pick one")
	assert.Contains(t, view, "one")
	assert.Contains(t, view, ">")
}
