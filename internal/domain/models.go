package domain

import "context"

// Option is a selectable (value, name) pair
type Option struct {
	Value string `json:"value" toml:"value" validate:"required"`
	Name  string `json:"name" toml:"name"`
}

// SearchConfig describes the search input of a widget
type SearchConfig struct {
	Placeholder string `json:"placeholder" toml:"placeholder"`
	AutoApply   bool   `json:"autoApply" toml:"auto_apply"` // re-fetch on every query edit
	Query       string `json:"query,omitempty" toml:"query"` // initial query
}

// PageMeta is the pagination metadata returned with a fetched page.
// Page is zero-based.
type PageMeta struct {
	Page    int    `json:"page"`
	Pages   int    `json:"pages"`
	PerPage int    `json:"perPage"`
	Query   string `json:"query"`
	Total   int    `json:"total"`
}

// HasPage reports whether page is a valid index under this metadata
func (p PageMeta) HasPage(page int) bool {
	return page >= 0 && page < p.Pages
}

// FetchParams are passed to a FetchFunc. An empty Query means no query.
type FetchParams struct {
	Page  int    `json:"page" schema:"page"`
	Query string `json:"query,omitempty" schema:"query,omitempty"`
}

// FetchResult is one page of options plus its pagination metadata
type FetchResult struct {
	Options []Option `json:"options"`
	Search  PageMeta `json:"search"`
}

// FetchFunc loads one page of options
type FetchFunc func(ctx context.Context, params FetchParams) (FetchResult, error)

// SelectFunc receives the full selection snapshot after every selection change
type SelectFunc func(selected []Option)

// ContainsValue reports whether opts holds an option with the given value
func ContainsValue(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
