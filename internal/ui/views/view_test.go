package views

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectsearch/internal/domain"
)

func TestRenderWithoutSearch(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	out := r.Render(ViewState{
		Options: []domain.Option{
			{Value: "__default__", Name: "select something dude"},
			{Value: "1", Name: "Uruguay"},
		},
		SelectedValues: []string{"__default__"},
		DefaultValue:   "__default__",
	})

	assert.Contains(t, out, "select something dude")
	assert.Contains(t, out, "Uruguay")
	assert.NotContains(t, out, "Search")
}

func TestRenderSearchBox(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	out := r.Render(ViewState{HasSearch: true, SearchInput: "Country name"})
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "Country name")
	assert.Contains(t, out, "[enter: apply]")
	assert.Contains(t, out, "No options")

	out = r.Render(ViewState{HasSearch: true, AutoApply: true})
	assert.NotContains(t, out, "[enter: apply]")
}

func TestRenderOptionsMarksSelection(t *testing.T) {
	t.Parallel()
	r := NewRenderer()
	opts := []domain.Option{{Value: "foo", Name: "Foo"}, {Value: "bar", Name: "Bar"}}

	out := r.RenderOptions(ViewState{Options: opts, Multiple: true, SelectedValues: []string{"bar"}, Cursor: 0})
	assert.Contains(t, out, "[ ] Foo")
	assert.Contains(t, out, "[x] ")

	out = r.RenderOptions(ViewState{Options: opts, SelectedValues: []string{"foo"}, Cursor: 1})
	assert.Contains(t, out, "(•) ")
	assert.Contains(t, out, "( ) Bar")
}

func TestRenderOptionsViewport(t *testing.T) {
	t.Parallel()
	r := NewRenderer()
	opts := []domain.Option{{Value: "a", Name: "A"}, {Value: "b", Name: "B"}, {Value: "c", Name: "C"}}

	out := r.RenderOptions(ViewState{Options: opts, ViewportOffset: 1, ViewportHeight: 2})
	assert.NotContains(t, out, "A")
	assert.Contains(t, out, "B")
	assert.Contains(t, out, "C")
}

func TestRenderFooterAndError(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	out := r.Render(ViewState{
		Options:  []domain.Option{{Value: "UY", Name: "Uruguay"}},
		PageMeta: &domain.PageMeta{Page: 2, Pages: 10, PerPage: 1, Total: 10},
		Err:      errors.New("boom"),
	})
	require.Contains(t, out, "Page 3/10 · 10 total")
	require.Contains(t, out, "Failed to load options: boom")
}

func TestRenderLoading(t *testing.T) {
	t.Parallel()
	r := NewRenderer()

	out := r.Render(ViewState{IsFetching: true, Spinner: "*"})
	assert.Contains(t, out, "Loading options...")
	assert.Contains(t, out, "* Loading")
}

func TestVisibleRange(t *testing.T) {
	t.Parallel()
	start, end := visibleRange(5, 4, 3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)

	start, end = visibleRange(2, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
}
