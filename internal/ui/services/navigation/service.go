package navigation

// Service keeps a cyclic cursor over count matches
type Service struct {
	state *State
}

// NewService creates a navigation service with no matches
func NewService() *Service {
	return &Service{
		state: &State{Cursor: NoCursor},
	}
}

// Reset starts cycling over count matches from cursor.
// A cursor outside [0, count) is stored as NoCursor.
func (s *Service) Reset(count, cursor int) {
	if count < 0 {
		count = 0
	}
	if cursor < 0 || cursor >= count {
		cursor = NoCursor
	}
	s.state.Count = count
	s.state.Cursor = cursor
}

// Clear forgets the match set
func (s *Service) Clear() {
	s.Reset(0, NoCursor)
}

// GetCursor returns the current index or NoCursor
func (s *Service) GetCursor() int {
	return s.state.Cursor
}

// GetCount returns the number of matches
func (s *Service) GetCount() int {
	return s.state.Count
}

// Peek returns the cursor Navigate would move to, without moving
func (s *Service) Peek(direction Direction) int {
	n := s.state.Count
	if n == 0 {
		return NoCursor
	}
	cur := s.state.Cursor

	switch direction {
	case DirectionNext:
		if cur == NoCursor {
			return 0
		}
		return (cur + 1) % n
	case DirectionPrev:
		if cur <= 0 {
			return n - 1
		}
		return cur - 1
	}
	return cur
}

// Navigate moves the cursor one step and reports the move.
// With one match or fewer there is nothing to move between and the cursor stays put.
func (s *Service) Navigate(direction Direction) (CursorMovedEvent, bool) {
	if s.state.Count <= 1 {
		return CursorMovedEvent{}, false
	}
	ev := CursorMovedEvent{OldIndex: s.state.Cursor, NewIndex: s.Peek(direction)}
	s.state.Cursor = ev.NewIndex
	return ev, true
}
