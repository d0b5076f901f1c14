package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	inputtypes "selectsearch/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys inputtypes.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys inputtypes.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates the full key reference shown in the pager
func (r *HelpRenderer) RenderHelpContent(hasSearch, multiple bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(b key.Binding) string {
		h := b.Help()
		return fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc))
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("SelectSearch Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	for _, b := range []key.Binding{r.keys.Up, r.keys.Down, r.keys.PageUp, r.keys.PageDown, r.keys.Home, r.keys.End} {
		help.WriteString(line(b))
	}

	help.WriteString(sectionStyle.Render("Selection"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Select))
	if multiple {
		help.WriteString(line(r.keys.Toggle))
	}

	help.WriteString(sectionStyle.Render("Pages"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.NextPage))
	help.WriteString(line(r.keys.PrevPage))

	if hasSearch {
		help.WriteString(sectionStyle.Render("Search"))
		help.WriteString("\n")
		help.WriteString(line(r.keys.Search))
		help.WriteString(line(r.keys.Apply))
		help.WriteString(line(r.keys.Cancel))
	}

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Help))
	help.WriteString(strings.TrimSuffix(line(r.keys.Quit), "\n"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
