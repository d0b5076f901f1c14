package search

import "selectsearch/internal/domain"

// Phase is the coordinator's fetch state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
)

func (p Phase) String() string {
	if p == PhaseFetching {
		return "fetching"
	}
	return "idle"
}

// Request is a fetch call to dispatch, tagged with its token
type Request struct {
	Token  uint64
	Params domain.FetchParams
}

// State holds pagination and query state
type State struct {
	Phase      Phase
	Token      uint64              // token of the in-flight request
	Pending    *domain.FetchParams // coalesced trigger waiting for the in-flight call
	PageMeta   *domain.PageMeta
	Query      string // committed query, sent with page navigation
	DraftQuery string // what the user typed
	LastError  error
	Mounted    bool
	Closed     bool
}

// Outcome describes what a settled fetch did to the state
type Outcome struct {
	Applied bool // result or failure was applied
	Stale   bool // result was ignored
	Result  domain.FetchResult
	Err     error    // non-nil when a failure was applied
	Next    *Request // coalesced request to dispatch now
}
