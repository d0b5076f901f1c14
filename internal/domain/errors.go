package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a reported selection does not match the current options
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidPage is returned for page requests outside the known page range
	ErrInvalidPage = errors.New("invalid page request")
	// ErrMissingOnSelect is returned when a widget is built without a selection callback
	ErrMissingOnSelect = errors.New("onSelect callback is required")
	// ErrClosed is returned for intents issued after the widget was closed
	ErrClosed = errors.New("widget closed")
)

// FetchError wraps a failed fetch together with the parameters it was issued with
type FetchError struct {
	Params FetchParams
	Err    error
}

func (e *FetchError) Error() string {
	if e.Params.Query != "" {
		return fmt.Sprintf("fetch page %d (query %q): %v", e.Params.Page, e.Params.Query, e.Err)
	}
	return fmt.Sprintf("fetch page %d: %v", e.Params.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
