package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the widget
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	Placeholder   lipgloss.Style
	SearchBox     lipgloss.Style
	SearchLabel   lipgloss.Style
	SearchHint    lipgloss.Style
	Footer        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim:         lipgloss.NewStyle().Faint(true),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchLabel:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		SearchHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Footer:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:          lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main:          lipgloss.NewStyle().Padding(1, 2),
	}
}
