package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the widget key bindings
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Select    key.Binding
	Toggle    key.Binding
	Search    key.Binding
	Apply     key.Binding
	Cancel    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "first")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "last")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply search")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search")),
		NextPage:  key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]/n", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[/p", "prev page")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Toggle, k.Search, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Select, k.Toggle},
		{k.Search, k.Apply, k.Cancel},
		{k.NextPage, k.PrevPage},
		{k.Help, k.Quit},
	}
}
