package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectsearch/internal/domain"
)

func page(n, pages int, query string, values ...string) domain.FetchResult {
	opts := make([]domain.Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, domain.Option{Value: v, Name: v})
	}
	return domain.FetchResult{
		Options: opts,
		Search:  domain.PageMeta{Page: n, Pages: pages, PerPage: len(values), Query: query, Total: pages * len(values)},
	}
}

func TestMountFetchesFirstPageOnce(t *testing.T) {
	t.Parallel()
	s := NewService(true, nil)

	req, ok := s.Mount(false)
	require.True(t, ok)
	require.Equal(t, domain.FetchParams{Page: 0}, req.Params)
	require.True(t, s.IsFetching())

	_, ok = s.Mount(false)
	require.False(t, ok, "mount fetch is one-shot")
}

func TestMountUsesConfiguredQuery(t *testing.T) {
	t.Parallel()
	s := NewService(true, &domain.SearchConfig{Query: "uru"})

	req, ok := s.Mount(false)
	require.True(t, ok)
	require.Equal(t, domain.FetchParams{Page: 0, Query: "uru"}, req.Params)
}

func TestNoFetchWithStaticOptionsOrWithoutFetcher(t *testing.T) {
	t.Parallel()

	withStatic := NewService(true, &domain.SearchConfig{AutoApply: true})
	_, ok := withStatic.Mount(true)
	require.False(t, ok)
	_, ok = withStatic.SetQuery("x")
	require.False(t, ok, "static options never trigger a fetch")

	noFetcher := NewService(false, nil)
	_, ok = noFetcher.Mount(false)
	require.False(t, ok)
	require.False(t, noFetcher.IsFetching())
}

func TestSettleAppliesResult(t *testing.T) {
	t.Parallel()
	s := NewService(true, nil)
	req, _ := s.Mount(false)

	out := s.Settle(req.Token, page(2, 10, "", "UY"), nil)
	require.True(t, out.Applied)
	require.False(t, s.IsFetching())
	require.Equal(t, &domain.PageMeta{Page: 2, Pages: 10, PerPage: 1, Total: 10}, s.PageMeta())
}

func TestSettleFailureKeepsPageMeta(t *testing.T) {
	t.Parallel()
	s := NewService(true, nil)
	req, _ := s.Mount(false)
	s.Settle(req.Token, page(0, 3, "", "a"), nil)

	req, ok, err := s.NextPage()
	require.NoError(t, err)
	require.True(t, ok)

	boom := errors.New("boom")
	out := s.Settle(req.Token, domain.FetchResult{}, boom)
	require.True(t, out.Applied)
	require.ErrorIs(t, out.Err, boom)
	require.ErrorIs(t, s.LastError(), boom)
	require.False(t, s.IsFetching())
	require.Equal(t, 0, s.PageMeta().Page)

	req, _, err = s.NextPage()
	require.NoError(t, err)
	s.Settle(req.Token, page(1, 3, "", "b"), nil)
	require.NoError(t, s.LastError(), "a successful fetch clears the failure")
}

func TestTriggerWhileFetchingIsCoalesced(t *testing.T) {
	t.Parallel()
	s := NewService(true, &domain.SearchConfig{AutoApply: true})
	first, _ := s.Mount(false)

	_, ok := s.SetQuery("u")
	require.False(t, ok, "no second in-flight call")
	_, ok = s.SetQuery("ur")
	require.False(t, ok)

	out := s.Settle(first.Token, page(0, 1, "", "stale"), nil)
	require.True(t, out.Stale)
	require.False(t, out.Applied)
	require.NotNil(t, out.Next)
	assert.Equal(t, domain.FetchParams{Page: 0, Query: "ur"}, out.Next.Params)
	assert.Greater(t, out.Next.Token, first.Token)
	require.Nil(t, s.PageMeta(), "superseded result is not applied")

	out = s.Settle(out.Next.Token, page(0, 1, "ur", "uruguay"), nil)
	require.True(t, out.Applied)
	require.Equal(t, "ur", s.PageMeta().Query)
}

func TestStaleTokenIsDropped(t *testing.T) {
	t.Parallel()
	s := NewService(true, nil)
	req, _ := s.Mount(false)

	out := s.Settle(req.Token+7, page(0, 1, "", "x"), nil)
	require.True(t, out.Stale)
	require.True(t, s.IsFetching())
}

func TestDraftQueryNeedsApply(t *testing.T) {
	t.Parallel()
	s := NewService(true, &domain.SearchConfig{AutoApply: false})
	req, _ := s.Mount(false)
	s.Settle(req.Token, page(0, 1, "", "a"), nil)

	_, ok := s.SetQuery("bra")
	require.False(t, ok)
	require.Equal(t, "bra", s.GetDraftQuery())
	require.Equal(t, "", s.GetQuery())

	req, ok = s.Apply()
	require.True(t, ok)
	require.Equal(t, domain.FetchParams{Page: 0, Query: "bra"}, req.Params)
	require.Equal(t, "bra", s.GetQuery())
}

func TestQueryChangeResetsPage(t *testing.T) {
	t.Parallel()
	s := NewService(true, &domain.SearchConfig{AutoApply: true})
	req, _ := s.Mount(false)
	s.Settle(req.Token, page(0, 5, "", "a"), nil)
	req, _, _ = s.GoToPage(3)
	s.Settle(req.Token, page(3, 5, "", "d"), nil)

	req, ok := s.SetQuery("zz")
	require.True(t, ok)
	require.Equal(t, 0, req.Params.Page)
}

func TestGoToPageValidatesRange(t *testing.T) {
	t.Parallel()
	s := NewService(true, &domain.SearchConfig{Query: "q"})

	_, _, err := s.GoToPage(0)
	require.ErrorIs(t, err, domain.ErrInvalidPage, "no page meta yet")

	req, _ := s.Mount(false)
	s.Settle(req.Token, page(0, 2, "q", "a"), nil)

	_, _, err = s.GoToPage(2)
	require.ErrorIs(t, err, domain.ErrInvalidPage)
	_, _, err = s.PrevPage()
	require.ErrorIs(t, err, domain.ErrInvalidPage)

	req, ok, err := s.GoToPage(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.FetchParams{Page: 1, Query: "q"}, req.Params)
}

func TestCloseDropsLateResults(t *testing.T) {
	t.Parallel()
	s := NewService(true, nil)
	req, _ := s.Mount(false)

	s.Close()
	out := s.Settle(req.Token, page(0, 1, "", "late"), nil)
	require.True(t, out.Stale)
	require.Nil(t, s.PageMeta())

	_, ok := s.Trigger(domain.FetchParams{})
	require.False(t, ok)
	_, _, err := s.GoToPage(0)
	require.ErrorIs(t, err, domain.ErrClosed)
}
