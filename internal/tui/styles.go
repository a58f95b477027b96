// Package tui implements the interactive pickers and the edit form.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the interactive widgets.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Selected lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"), // Purple
	Muted:    lipgloss.Color("#636E72"), // Gray
	Error:    lipgloss.Color("#D63031"), // Red
	Success:  lipgloss.Color("#00B894"), // Green
	Warning:  lipgloss.Color("#FDCB6E"), // Yellow
	Selected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
}

// Styles contains the lipgloss styles shared by picker and form.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Detail   lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Label    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary).MarginBottom(1),
		Item:     lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(Colors.Selected).Bold(true),
		Cursor:   lipgloss.NewStyle().Foreground(Colors.Primary),
		Detail:   lipgloss.NewStyle().Foreground(Colors.Muted),
		Help:     lipgloss.NewStyle().Foreground(Colors.Muted).MarginTop(1),
		Error:    lipgloss.NewStyle().Foreground(Colors.Error),
		Label:    lipgloss.NewStyle().Foreground(Colors.Muted).Width(12),
	}
}
