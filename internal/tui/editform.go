package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormField is one editable line in the form.
type FormField struct {
	Key     string
	Label   string
	Initial string
}

// FormResult holds the values the user changed, keyed by FormField.Key.
type FormResult map[string]string

// EditFormModel is a vertical stack of text inputs. Fields keep their
// initial value unless edited, and only edited fields end up in the
// result.
type EditFormModel struct {
	Title    string
	fields   []FormField
	inputs   []textinput.Model
	styles   Styles
	focus    int
	Done     bool
	Canceled bool
}

// NewEditForm creates a form prefilled with the current field values.
func NewEditForm(title string, fields []FormField) EditFormModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.SetValue(f.Initial)
		in.Prompt = ""
		in.CharLimit = 256
		if i == 0 {
			in.Focus()
		}
		inputs[i] = in
	}
	return EditFormModel{
		Title:  title,
		fields: fields,
		inputs: inputs,
		styles: DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m EditFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m EditFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "ctrl+c":
			m.Canceled = true
			return m, tea.Quit
		case "enter":
			if m.focus == len(m.inputs)-1 {
				m.Done = true
				return m, tea.Quit
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *EditFormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// View implements tea.Model.
func (m EditFormModel) View() string {
	if m.Done || m.Canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.Title))
	b.WriteString("\n")
	for i, f := range m.fields {
		b.WriteString(fmt.Sprintf("%s %s\n", m.styles.Label.Render(f.Label), m.inputs[i].View()))
	}
	b.WriteString(m.styles.Help.Render("tab next field · enter on last field saves · esc cancel"))
	return b.String()
}

// Changes returns the fields whose value differs from the initial one.
func (m EditFormModel) Changes() FormResult {
	result := FormResult{}
	for i, f := range m.fields {
		if v := m.inputs[i].Value(); v != f.Initial {
			result[f.Key] = v
		}
	}
	return result
}

// RunEditForm runs the form and returns the changed fields.
// ok is false when the user cancelled.
func RunEditForm(title string, fields []FormField) (FormResult, bool, error) {
	final, err := tea.NewProgram(NewEditForm(title, fields)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("run edit form: %w", err)
	}
	model, isForm := final.(EditFormModel)
	if !isForm || model.Canceled {
		return nil, false, nil
	}
	return model.Changes(), true, nil
}
