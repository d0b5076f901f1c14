package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectsearch/internal/domain"
)

var countries = []domain.Option{
	{Value: "AR", Name: "Argentina"},
	{Value: "BR", Name: "Brazil"},
	{Value: "CL", Name: "Chile"},
	{Value: "PY", Name: "Paraguay"},
	{Value: "UY", Name: "Uruguay"},
}

func TestCatalogPaginates(t *testing.T) {
	t.Parallel()
	c := NewCatalog(countries, 2)

	res, err := c.Fetch(context.Background(), domain.FetchParams{Page: 0})
	require.NoError(t, err)
	assert.Equal(t, countries[:2], res.Options)
	assert.Equal(t, domain.PageMeta{Page: 0, Pages: 3, PerPage: 2, Total: 5}, res.Search)

	res, err = c.Fetch(context.Background(), domain.FetchParams{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, countries[4:], res.Options)

	_, err = c.Fetch(context.Background(), domain.FetchParams{Page: 3})
	require.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestCatalogFuzzyQuery(t *testing.T) {
	t.Parallel()
	c := NewCatalog(countries, 10)

	res, err := c.Fetch(context.Background(), domain.FetchParams{Query: "guay"})
	require.NoError(t, err)

	values := make([]string, 0, len(res.Options))
	for _, o := range res.Options {
		values = append(values, o.Value)
	}
	assert.ElementsMatch(t, []string{"PY", "UY"}, values)
	assert.Equal(t, "guay", res.Search.Query)
	assert.Equal(t, 2, res.Search.Total)
	assert.Equal(t, 1, res.Search.Pages)
}

func TestCatalogEmptyResult(t *testing.T) {
	t.Parallel()
	c := NewCatalog(countries, 0)

	res, err := c.Fetch(context.Background(), domain.FetchParams{Query: "zzzz"})
	require.NoError(t, err)
	assert.Empty(t, res.Options)
	assert.Equal(t, 0, res.Search.Pages)
	assert.Equal(t, DefaultPerPage, res.Search.PerPage)
}

func TestCatalogLatencyHonoursContext(t *testing.T) {
	t.Parallel()
	c := NewCatalog(countries, 2).WithLatency(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, domain.FetchParams{})
	require.ErrorIs(t, err, context.Canceled)
}
