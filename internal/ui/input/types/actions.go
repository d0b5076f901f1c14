package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ConfirmAction selects the option under the cursor (toggles in multiple mode)
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

// ToggleAction flips the option under the cursor
type ToggleAction struct{}

func (a ToggleAction) Type() string { return "toggle" }

// PageAction moves through fetched pages
type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// UI actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
