// Package source provides fetch collaborators for the select widget: an
// in-memory catalog with fuzzy search and an HTTP client for remote lists.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"selectsearch/internal/domain"
)

// DefaultPerPage is used when a catalog is built without a page size
const DefaultPerPage = 10

type optionNames []domain.Option

func (o optionNames) String(i int) string { return o[i].Name }

func (o optionNames) Len() int { return len(o) }

// Catalog serves pages of a fixed option list. A query filters the list by
// fuzzy match on the option name, best matches first.
type Catalog struct {
	items   []domain.Option
	perPage int
	latency time.Duration
}

// NewCatalog creates a catalog over items
func NewCatalog(items []domain.Option, perPage int) *Catalog {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return &Catalog{
		items:   append([]domain.Option(nil), items...),
		perPage: perPage,
	}
}

// WithLatency delays every fetch by d, useful to exercise loading states
func (c *Catalog) WithLatency(d time.Duration) *Catalog {
	c.latency = d
	return c
}

// Fetch returns the requested page of the (filtered) catalog
func (c *Catalog) Fetch(ctx context.Context, params domain.FetchParams) (domain.FetchResult, error) {
	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return domain.FetchResult{}, ctx.Err()
		}
	}

	matched := c.filter(params.Query)
	total := len(matched)
	pages := (total + c.perPage - 1) / c.perPage

	if params.Page < 0 || (params.Page > 0 && params.Page >= pages) {
		return domain.FetchResult{}, fmt.Errorf("%w: page %d of %d", domain.ErrInvalidPage, params.Page, pages)
	}

	start := params.Page * c.perPage
	end := start + c.perPage
	if end > total {
		end = total
	}

	return domain.FetchResult{
		Options: append([]domain.Option(nil), matched[start:end]...),
		Search: domain.PageMeta{
			Page:    params.Page,
			Pages:   pages,
			PerPage: c.perPage,
			Query:   params.Query,
			Total:   total,
		},
	}, nil
}

func (c *Catalog) filter(query string) []domain.Option {
	if query == "" {
		return c.items
	}
	matches := fuzzy.FindFrom(query, optionNames(c.items))
	out := make([]domain.Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.items[m.Index])
	}
	return out
}
