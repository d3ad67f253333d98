package selection

import (
	"log/slog"

	"luminol/internal/domain"
	"luminol/internal/editor"
	"luminol/internal/logging"
)

var selLog = logging.ForComponent(logging.CompSelection)

// Service couples the editor selection to the match set
type Service struct {
	state *State
	view  editor.EditorView
}

// NewService creates a selection service for view
func NewService(view editor.EditorView) *Service {
	return &Service{
		state: &State{},
		view:  view,
	}
}

// Arm marks the next selection-change notification as engine-caused
func (s *Service) Arm() {
	s.state.Suppressed = true
}

// Consume is called once per selection-change notification. It reports
// whether the notification was suppressed and always resets the flag.
func (s *Service) Consume() bool {
	suppressed := s.state.Suppressed
	s.state.Suppressed = false
	return suppressed
}

// Armed reports whether the flag is currently set
func (s *Service) Armed() bool {
	return s.state.Suppressed
}

// SelectAll replaces the selection set with one selection per occurrence.
// It returns false and leaves the editor untouched when matches is empty.
func (s *Service) SelectAll(matches []domain.Occurrence) bool {
	if len(matches) == 0 {
		return false
	}

	buf := s.view.Buffer()
	sels := make([]domain.Selection, len(matches))
	for i, m := range matches {
		sels[i] = domain.NewSelection(buf.PositionAt(m.Start), buf.PositionAt(m.End))
	}

	s.Arm()
	s.view.SetSelections(sels)

	selLog.Debug("occurrences_selected", slog.Int("count", len(sels)))
	return true
}

// Focus selects occ alone and scrolls it into view
func (s *Service) Focus(occ domain.Occurrence) {
	buf := s.view.Buffer()
	start, end := buf.PositionAt(occ.Start), buf.PositionAt(occ.End)

	s.Arm()
	s.view.SetSelections([]domain.Selection{domain.NewSelection(start, end)})
	s.view.RevealRange(domain.Range{Start: start, End: end})
}

// Remember saves the current selection set for a later Restore
func (s *Service) Remember() {
	s.state.Saved = s.view.Selections()
	s.state.HasSaved = true
}

// Forget drops any saved selection set
func (s *Service) Forget() {
	s.state.Saved = nil
	s.state.HasSaved = false
}

// Restore puts back the selection set saved by Remember, if any
func (s *Service) Restore() bool {
	if !s.state.HasSaved {
		return false
	}
	saved := s.state.Saved
	s.Forget()

	s.Arm()
	s.view.SetSelections(saved)
	return true
}

// Primary returns the primary selection of the view
func (s *Service) Primary() domain.Selection {
	sels := s.view.Selections()
	if len(sels) == 0 {
		return domain.Caret(domain.Position{})
	}
	return sels[0]
}
