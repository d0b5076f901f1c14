package state

import (
	"selectsearch/internal/domain"
)

// WidgetState is a read-only snapshot of a widget
type WidgetState struct {
	ID             string
	Options        []domain.Option  // merged option sequence
	SelectedValues []string
	Selected       []domain.Option
	PageMeta       *domain.PageMeta // nil until the first successful fetch
	IsFetching     bool
	Query          string // committed query
	DraftQuery     string
	LastError      error
	Cursor         int
	Closed         bool
}

// SelectedValue returns the single selected value, or "" when the selection
// is empty or holds more than one value
func (s WidgetState) SelectedValue() string {
	if len(s.SelectedValues) != 1 {
		return ""
	}
	return s.SelectedValues[0]
}

// CurrentPage returns the zero-based page shown, or -1 before any page loaded
func (s WidgetState) CurrentPage() int {
	if s.PageMeta == nil {
		return -1
	}
	return s.PageMeta.Page
}
