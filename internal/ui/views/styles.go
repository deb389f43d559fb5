package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style
	PanelTitle  lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Warning     lipgloss.Style
	Checked     lipgloss.Style
	Negated     lipgloss.Style
	Grouped     lipgloss.Style
	Marked      lipgloss.Style
	Cursor      lipgloss.Style
	QueryBar    lipgloss.Style
	QueryEmpty  lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style
	Confirm     lipgloss.Style
	PopupBox    lipgloss.Style
	Help        lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpSection lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ActivePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:        lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Checked:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Negated:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Grouped:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Marked:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:      lipgloss.NewStyle().Background(lipgloss.Color("238")),
		QueryBar:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		QueryEmpty:  lipgloss.NewStyle().Faint(true).Italic(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Confirm:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		HelpKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		HelpDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HelpSection: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
	}
}
