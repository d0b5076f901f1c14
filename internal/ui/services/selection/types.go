package selection

import "selectsearch/internal/domain"

// State holds the option set and the current selection
type State struct {
	Static         []domain.Option
	Fetched        []domain.Option
	Default        *domain.Option
	Options        []domain.Option // merged view, recomputed on every change
	SelectedValues []string        // kept in option order
	Multiple       bool
}
