package selection

import (
	"fmt"
	"log"

	"selectsearch/internal/domain"
)

// Merge builds the ordered option sequence the widget renders.
// Static options take precedence over fetched ones; the default option, when
// set, is always first. Later duplicates of a value are dropped.
func Merge(static, fetched []domain.Option, def *domain.Option) []domain.Option {
	source := fetched
	if len(static) > 0 {
		source = static
	}

	merged := make([]domain.Option, 0, len(source)+1)
	seen := make(map[string]bool, len(source)+1)
	if def != nil {
		merged = append(merged, *def)
		seen[def.Value] = true
	}
	for _, o := range source {
		if seen[o.Value] {
			continue
		}
		seen[o.Value] = true
		merged = append(merged, o)
	}
	return merged
}

// Service owns the option set and selection state
type Service struct {
	state *State
}

// NewService creates a selection service seeded from the static options and
// default option. The default option starts out selected.
func NewService(static []domain.Option, def *domain.Option, multiple bool) *Service {
	s := &Service{
		state: &State{
			Static:   append([]domain.Option(nil), static...),
			Multiple: multiple,
		},
	}
	if def != nil {
		d := *def
		s.state.Default = &d
		s.state.SelectedValues = []string{d.Value}
	}
	s.state.Options = Merge(s.state.Static, nil, s.state.Default)
	return s
}

// HasStatic reports whether static options were supplied
func (s *Service) HasStatic() bool {
	return len(s.state.Static) > 0
}

// Multiple reports whether more than one value may be selected
func (s *Service) Multiple() bool {
	return s.state.Multiple
}

// Default returns the default option, or nil
func (s *Service) Default() *domain.Option {
	return s.state.Default
}

// Options returns the merged option sequence
func (s *Service) Options() []domain.Option {
	out := make([]domain.Option, len(s.state.Options))
	copy(out, s.state.Options)
	return out
}

// SetFetched replaces the fetched page. Selected values that are no longer
// offered are dropped; in single mode an emptied selection falls back to the
// default option.
func (s *Service) SetFetched(opts []domain.Option) {
	s.state.Fetched = append([]domain.Option(nil), opts...)
	s.state.Options = Merge(s.state.Static, s.state.Fetched, s.state.Default)

	kept := s.state.SelectedValues[:0:0]
	for _, v := range s.state.SelectedValues {
		if domain.ContainsValue(s.state.Options, v) {
			kept = append(kept, v)
		}
	}
	if len(kept) != len(s.state.SelectedValues) {
		log.Printf("selection: pruned %d value(s) missing from the new page", len(s.state.SelectedValues)-len(kept))
	}
	if len(kept) == 0 && !s.state.Multiple && s.state.Default != nil {
		kept = []string{s.state.Default.Value}
	}
	s.state.SelectedValues = kept
}

// Select replaces the selection with exactly the given values and returns
// the selected options in option order. The values are a full snapshot, not
// a delta. On error the previous selection is kept.
func (s *Service) Select(values []string) ([]domain.Option, error) {
	if !s.state.Multiple && len(values) != 1 {
		return nil, fmt.Errorf("%w: single selection needs exactly one value, got %d", domain.ErrInvalidSelection, len(values))
	}

	if len(values) == 0 && s.state.Default != nil {
		// an emptied multiple selection falls back to the default
		values = []string{s.state.Default.Value}
	}

	wanted := make(map[string]bool, len(values))
	for _, v := range values {
		if !domain.ContainsValue(s.state.Options, v) {
			return nil, fmt.Errorf("%w: unknown value %q", domain.ErrInvalidSelection, v)
		}
		wanted[v] = true
	}

	selected := make([]domain.Option, 0, len(wanted))
	selectedValues := make([]string, 0, len(wanted))
	for _, o := range s.state.Options {
		if wanted[o.Value] {
			selected = append(selected, o)
			selectedValues = append(selectedValues, o.Value)
		}
	}
	s.state.SelectedValues = selectedValues
	return selected, nil
}

// Toggle builds the snapshot that results from flipping value in multiple
// mode. Toggling the default option selects only the default; toggling a
// real value drops the default from the snapshot. Turning off the last value
// falls back to the default when one is configured.
func (s *Service) Toggle(value string) []string {
	if s.state.Default != nil && value == s.state.Default.Value {
		return []string{value}
	}

	var next []string
	found := false
	for _, v := range s.state.SelectedValues {
		if v == value {
			found = true
			continue
		}
		if s.state.Default != nil && v == s.state.Default.Value {
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, value)
	}
	if len(next) == 0 && s.state.Default != nil {
		return []string{s.state.Default.Value}
	}
	return next
}

// SelectedValues returns the selected values in option order
func (s *Service) SelectedValues() []string {
	out := make([]string, len(s.state.SelectedValues))
	copy(out, s.state.SelectedValues)
	return out
}

// Selected returns the selected options in option order
func (s *Service) Selected() []domain.Option {
	var out []domain.Option
	for _, o := range s.state.Options {
		if s.IsSelected(o.Value) {
			out = append(out, o)
		}
	}
	return out
}

// IsSelected checks if a value is selected
func (s *Service) IsSelected(value string) bool {
	for _, v := range s.state.SelectedValues {
		if v == value {
			return true
		}
	}
	return false
}
