package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"selectsearch/internal/ui/input/types"
)

// SearchMode edits the search query. The input keeps the draft between visits.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(keys types.KeyMap, ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", keys, ti),
	}
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.SetValue(ctx.DraftQuery())
		m.textInput.CursorEnd()
	}
	return m.TextInputMode.Enter(ctx)
}
