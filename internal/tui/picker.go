package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PickerItem is one selectable row.
type PickerItem struct {
	Label  string
	Detail string
	Value  string
}

// PickerModel is a minimal up/down/enter selection list. Cancelling
// leaves Choice empty.
type PickerModel struct {
	Title    string
	Items    []PickerItem
	Choice   *PickerItem
	styles   Styles
	cursor   int
	Canceled bool
	quitting bool
}

// NewPicker creates a picker over the given items.
func NewPicker(title string, items []PickerItem) PickerModel {
	return PickerModel{
		Title:  title,
		Items:  items,
		styles: DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.Items)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.Items) > 0 {
			item := m.Items[m.cursor]
			m.Choice = &item
		}
		m.quitting = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.Canceled = true
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.Title))
	b.WriteString("\n")

	for i, item := range m.Items {
		cursor := "  "
		label := m.styles.Item.Render(item.Label)
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
			label = m.styles.Selected.Render(item.Label)
		}
		b.WriteString(fmt.Sprintf("%s%s", cursor, label))
		if item.Detail != "" {
			b.WriteString(" " + m.styles.Detail.Render(item.Detail))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · enter select · esc cancel"))
	return b.String()
}

// RunPicker runs the picker and returns the selected value.
// ok is false when the user cancelled or there was nothing to pick.
func RunPicker(title string, items []PickerItem) (value string, ok bool, err error) {
	final, err := tea.NewProgram(NewPicker(title, items)).Run()
	if err != nil {
		return "", false, fmt.Errorf("run picker: %w", err)
	}
	model, isPicker := final.(PickerModel)
	if !isPicker || model.Choice == nil {
		return "", false, nil
	}
	return model.Choice.Value, true, nil
}
