package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Text            *lipgloss.Style
	Selection       *lipgloss.Style
	Cursor          *lipgloss.Style
	LineNumber      *lipgloss.Style
	Menu            *lipgloss.Style
	MenuItem        *lipgloss.Style
	MenuShortcut    *lipgloss.Style
	MenuFocused     *lipgloss.Style
	MenuExpanded    *lipgloss.Style
	MenuDisabled    *lipgloss.Style
	MenuSeparator   *lipgloss.Style
	Fading          *lipgloss.Style
	SelectionMenu   *lipgloss.Style
	SelectionAction *lipgloss.Style
	Status          *lipgloss.Style
	StatusDirty     *lipgloss.Style
	Info            *lipgloss.Style
	Error           *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Selection: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	LineNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	),
	Menu: ptr(
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Background(lipgloss.Color("235")),
	),
	MenuItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235")),
	),
	MenuShortcut: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("235")),
	),
	MenuFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	MenuExpanded: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	MenuDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("235")),
	),
	MenuSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Background(lipgloss.Color("235")),
	),
	Fading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Faint(true),
	),
	SelectionMenu: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("237")),
	),
	SelectionAction: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("237")).Bold(true),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	StatusDirty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(s lipgloss.Style) *lipgloss.Style {
	return &s
}
