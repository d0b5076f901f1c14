package ui

import (
	"selectsearch/internal/domain"
)

// fetchResultMsg carries the result of a fetch call back to Update
type fetchResultMsg struct {
	token  uint64
	params domain.FetchParams
	result domain.FetchResult
	err    error
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause rendering while the pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume rendering
type resumeRenderingMsg struct{}
