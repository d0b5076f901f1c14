package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"selectsearch/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Title          string
	Options        []domain.Option
	SelectedValues []string
	DefaultValue   string // empty when no default option is configured
	Multiple       bool
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	HasSearch      bool
	SearchFocused  bool
	AutoApply      bool
	SearchInput    string // rendered text input
	PageMeta       *domain.PageMeta
	IsFetching     bool
	Spinner        string
	Err            error
	StatusMessage  string
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.HasSearch {
		content.WriteString(r.RenderSearch(state))
		content.WriteString("\n")
	}

	content.WriteString(r.RenderOptions(state))

	if footer := r.renderFooter(state); footer != "" {
		content.WriteString("\n")
		content.WriteString(footer)
	}

	if state.Err != nil {
		content.WriteString("\n")
		content.WriteString(r.styles.StatusError.Render(fmt.Sprintf("Failed to load options: %v", state.Err)))
	}
	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}
	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	title := state.Title
	if title == "" {
		title = "Select"
	}
	logo := r.styles.Title.Render(title)
	if !state.IsFetching {
		return logo
	}

	loading := r.styles.StatusLoading.Render(strings.TrimSpace(state.Spinner + " Loading"))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(loading)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + loading
}

// RenderSearch renders the search box and its apply hint
func (r *Renderer) RenderSearch(state ViewState) string {
	label := r.styles.SearchLabel.Render("Search")
	if !state.SearchFocused {
		label = r.styles.Dim.Render("Search (/)")
	}
	line := label + " " + state.SearchInput
	if !state.AutoApply {
		line += "  " + r.styles.SearchHint.Render("[enter: apply]")
	}
	return r.styles.SearchBox.Render(line)
}

// RenderOptions renders the visible slice of the option list
func (r *Renderer) RenderOptions(state ViewState) string {
	if len(state.Options) == 0 {
		if state.IsFetching {
			return r.styles.Dim.Render("Loading options...")
		}
		return r.styles.Dim.Render("No options")
	}

	selected := make(map[string]bool, len(state.SelectedValues))
	for _, v := range state.SelectedValues {
		selected[v] = true
	}

	start, end := visibleRange(len(state.Options), state.ViewportOffset, state.ViewportHeight)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderOption(state, state.Options[i], i == state.Cursor, selected[state.Options[i].Value]))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderOption(state ViewState, opt domain.Option, isCursor, isSelected bool) string {
	pointer := "  "
	if isCursor {
		pointer = r.styles.Cursor.Render("> ")
	}

	var mark string
	switch {
	case state.Multiple && isSelected:
		mark = "[x] "
	case state.Multiple:
		mark = "[ ] "
	case isSelected:
		mark = "(•) "
	default:
		mark = "( ) "
	}

	name := opt.Name
	if name == "" {
		name = opt.Value
	}
	switch {
	case state.DefaultValue != "" && opt.Value == state.DefaultValue:
		name = r.styles.Placeholder.Render(name)
	case isSelected:
		name = r.styles.Selected.Render(name)
	}
	return pointer + mark + name
}

func (r *Renderer) renderFooter(state ViewState) string {
	if state.PageMeta == nil {
		return ""
	}
	meta := state.PageMeta
	page := meta.Page + 1
	if meta.Pages == 0 {
		page = 0
	}
	text := fmt.Sprintf("Page %d/%d · %d total", page, meta.Pages, meta.Total)
	if meta.Query != "" {
		text += fmt.Sprintf(" · %q", meta.Query)
	}
	return r.styles.Footer.Render(text)
}

func visibleRange(count, offset, height int) (int, int) {
	if height <= 0 || height > count {
		height = count
	}
	if offset < 0 {
		offset = 0
	}
	if offset > count-height {
		offset = count - height
	}
	return offset, offset + height
}
