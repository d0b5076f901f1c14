package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"selectsearch/internal/ui/input/modes"
	"selectsearch/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // search input, shared with the renderer
	keys        types.KeyMap
}

func New(keys types.KeyMap, placeholder string) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[types.ModeSearch] = modes.NewSearchMode(keys, h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
			}

			h.currentMode = changeMode.Mode

			if h.modes[h.currentMode] != nil {
				allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
			}

			if h.isTextMode(h.currentMode) {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	// Keys the text mode did not consume edit the input
	if h.isTextMode(h.currentMode) && !consumed {
		before := h.textInput.Value()
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		if h.textInput.Value() != before {
			allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
		}
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}

// SetValue replaces the input text without emitting actions
func (h *Handler) SetValue(text string) {
	h.textInput.SetValue(text)
}
