package navigation

// Service moves the cursor over the option list and keeps it inside the viewport
type Service struct {
	state *State
}

// NewService creates a new navigation service
func NewService(viewportHeight int) *Service {
	if viewportHeight < 1 {
		viewportHeight = 10
	}
	return &Service{
		state: &State{
			ViewportHeight: viewportHeight,
		},
	}
}

// GetCursor returns current cursor position
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates viewport height
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// SetCount updates the number of rows and clamps the cursor
func (s *Service) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	s.state.Count = count
	s.state.Cursor = s.clampIndex(s.state.Cursor)
	if s.state.ViewportOffset > s.maxIndex() {
		s.state.ViewportOffset = 0
	}
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	switch direction {
	case DirectionUp:
		s.MoveToIndex(s.state.Cursor - 1)
	case DirectionDown:
		s.MoveToIndex(s.state.Cursor + 1)
	case DirectionPageUp:
		s.MoveToIndex(s.state.Cursor - (s.state.ViewportHeight - 1))
	case DirectionPageDown:
		s.MoveToIndex(s.state.Cursor + (s.state.ViewportHeight - 1))
	case DirectionHome:
		s.MoveToIndex(0)
	case DirectionEnd:
		s.MoveToIndex(s.maxIndex())
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) maxIndex() int {
	if s.state.Count == 0 {
		return 0
	}
	return s.state.Count - 1
}

func (s *Service) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.maxIndex() {
		return s.maxIndex()
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
}
