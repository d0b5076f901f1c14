package search

import (
	"fmt"
	"log"

	"selectsearch/internal/domain"
)

// Service coordinates fetch calls, pagination and the search query.
// It never performs I/O; callers dispatch the Requests it hands out and
// report back through Settle.
type Service struct {
	state    *State
	config   *domain.SearchConfig
	canFetch bool
}

// NewService creates a coordinator. canFetch is false when no fetch function
// is configured; cfg may be nil when the widget has no search input.
func NewService(canFetch bool, cfg *domain.SearchConfig) *Service {
	s := &Service{
		state:    &State{},
		config:   cfg,
		canFetch: canFetch,
	}
	if cfg != nil {
		s.state.Query = cfg.Query
		s.state.DraftQuery = cfg.Query
	}
	return s
}

// Mount issues the one automatic fetch. It does nothing when static options
// are present, no fetch function is configured, or it already ran.
func (s *Service) Mount(hasStatic bool) (Request, bool) {
	if s.state.Mounted {
		return Request{}, false
	}
	s.state.Mounted = true
	if hasStatic {
		s.canFetch = false
		return Request{}, false
	}
	return s.Trigger(domain.FetchParams{Page: 0, Query: s.state.Query})
}

// Trigger requests a fetch. While another fetch is in flight the params are
// queued, replacing any earlier queued params, and false is returned.
func (s *Service) Trigger(params domain.FetchParams) (Request, bool) {
	if s.state.Closed || !s.canFetch {
		return Request{}, false
	}
	if s.state.Phase == PhaseFetching {
		p := params
		s.state.Pending = &p
		log.Printf("search: fetch in flight (token %d), queued page %d", s.state.Token, params.Page)
		return Request{}, false
	}
	return s.dispatch(params), true
}

func (s *Service) dispatch(params domain.FetchParams) Request {
	s.state.Token++
	s.state.Phase = PhaseFetching
	return Request{Token: s.state.Token, Params: params}
}

// Settle records the outcome of the request tagged with token
func (s *Service) Settle(token uint64, result domain.FetchResult, err error) Outcome {
	if s.state.Closed || s.state.Phase != PhaseFetching || token != s.state.Token {
		log.Printf("search: dropping stale result for token %d", token)
		return Outcome{Stale: true}
	}

	s.state.Phase = PhaseIdle
	if s.state.Pending != nil {
		// Superseded by a newer trigger
		params := *s.state.Pending
		s.state.Pending = nil
		next := s.dispatch(params)
		return Outcome{Stale: true, Next: &next}
	}

	if err != nil {
		s.state.LastError = err
		return Outcome{Applied: true, Err: err}
	}

	meta := result.Search
	s.state.PageMeta = &meta
	s.state.LastError = nil
	return Outcome{Applied: true, Result: result}
}

// SetQuery updates the draft query. With auto-apply the draft is committed
// and page 0 is fetched immediately.
func (s *Service) SetQuery(query string) (Request, bool) {
	s.state.DraftQuery = query
	if s.config == nil || !s.config.AutoApply {
		return Request{}, false
	}
	return s.Apply()
}

// Apply commits the draft query and fetches its first page
func (s *Service) Apply() (Request, bool) {
	s.state.Query = s.state.DraftQuery
	return s.Trigger(domain.FetchParams{Page: 0, Query: s.state.Query})
}

// GoToPage fetches the given page of the committed query
func (s *Service) GoToPage(page int) (Request, bool, error) {
	if s.state.Closed {
		return Request{}, false, domain.ErrClosed
	}
	if s.state.PageMeta == nil || !s.state.PageMeta.HasPage(page) {
		return Request{}, false, fmt.Errorf("%w: page %d", domain.ErrInvalidPage, page)
	}
	req, ok := s.Trigger(domain.FetchParams{Page: page, Query: s.state.Query})
	return req, ok, nil
}

// NextPage moves one page forward
func (s *Service) NextPage() (Request, bool, error) {
	return s.GoToPage(s.currentPage() + 1)
}

// PrevPage moves one page back
func (s *Service) PrevPage() (Request, bool, error) {
	return s.GoToPage(s.currentPage() - 1)
}

func (s *Service) currentPage() int {
	if s.state.PageMeta == nil {
		return 0
	}
	return s.state.PageMeta.Page
}

// Close stops the coordinator. Later triggers and settlements are ignored.
func (s *Service) Close() {
	s.state.Closed = true
	s.state.Pending = nil
	s.state.Phase = PhaseIdle
}

// IsFetching reports whether a fetch is in flight
func (s *Service) IsFetching() bool {
	return s.state.Phase == PhaseFetching
}

// PageMeta returns a copy of the latest page metadata, or nil
func (s *Service) PageMeta() *domain.PageMeta {
	if s.state.PageMeta == nil {
		return nil
	}
	meta := *s.state.PageMeta
	return &meta
}

// GetQuery returns the committed query
func (s *Service) GetQuery() string {
	return s.state.Query
}

// GetDraftQuery returns the query as typed
func (s *Service) GetDraftQuery() string {
	return s.state.DraftQuery
}

// LastError returns the failure of the latest applied fetch, if any
func (s *Service) LastError() error {
	return s.state.LastError
}

// HasSearch reports whether a search input is configured
func (s *Service) HasSearch() bool {
	return s.config != nil
}

// Config returns the search configuration, or nil
func (s *Service) Config() *domain.SearchConfig {
	return s.config
}
