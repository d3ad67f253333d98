package search

import (
	"log/slog"

	"luminol/internal/editor"
	"luminol/internal/logging"
)

var searchLog = logging.ForComponent(logging.CompSearch)

// Service runs searches against a text buffer. Every search starts from scratch.
type Service struct {
	state *State
}

// NewService creates a new search service
func NewService() *Service {
	return &Service{state: &State{}}
}

// Search compiles literal and scans the whole buffer
func (s *Service) Search(buf editor.TextBuffer, literal string, wholeWord bool, caret int) Result {
	if literal == "" {
		s.state.Pattern = nil
		s.state.Result = Result{Cursor: NoCursor}
		return s.state.Result
	}

	p := Compile(literal, wholeWord)
	res := Scan(buf.Text(), p, caret)

	s.state.Pattern = p
	s.state.Result = res

	searchLog.Debug("search_completed",
		slog.String("pattern", p.String()),
		slog.Int("matches", len(res.Matches)),
		slog.Int("cursor", res.Cursor))

	return res
}

// Last returns the last compiled pattern (nil after Reset) and its result
func (s *Service) Last() (*Pattern, Result) {
	return s.state.Pattern, s.state.Result
}

// Reset forgets the last search
func (s *Service) Reset() {
	s.state.Pattern = nil
	s.state.Result = Result{Cursor: NoCursor}
}
