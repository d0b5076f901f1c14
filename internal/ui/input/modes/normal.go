package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Select):
		if ctx.OptionCount() == 0 {
			return nil, false
		}
		return []types.Action{types.ConfirmAction{}}, true
	case key.Matches(msg, m.keys.Toggle):
		if ctx.OptionCount() == 0 {
			return nil, false
		}
		return []types.Action{types.ToggleAction{}}, true

	case key.Matches(msg, m.keys.Search):
		if !ctx.HasSearch() {
			return nil, false
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case key.Matches(msg, m.keys.NextPage):
		return []types.Action{types.PageAction{Delta: 1}}, true
	case key.Matches(msg, m.keys.PrevPage):
		return []types.Action{types.PageAction{Delta: -1}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
