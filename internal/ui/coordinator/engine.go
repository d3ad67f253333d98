package coordinator

import (
	"fmt"
	"log/slog"
	"slices"

	"luminol/internal/config"
	"luminol/internal/domain"
	"luminol/internal/editor"
	"luminol/internal/eventbus"
	"luminol/internal/logging"
	"luminol/internal/ui/services/decoration"
	"luminol/internal/ui/services/navigation"
	"luminol/internal/ui/services/search"
	"luminol/internal/ui/services/selection"
)

var engineLog = logging.ForComponent(logging.CompEngine)

// Engine owns the highlight session of one editor view and wires the
// search, decoration, navigation and selection services together.
// All transitions run synchronously; an Engine is not safe for concurrent use.
type Engine struct {
	// Services
	Search     *search.Service
	Decoration *decoration.Service
	Navigation *navigation.Service
	Selection  *selection.Service

	// Dependencies
	view     editor.EditorView
	settings func() config.HighlightSettings
	bus      eventbus.EventBus

	session  Session
	snapshot config.HighlightSettings
	status   Status
}

// NewEngine creates an engine for view and subscribes it to the view's
// selection changes. settings is read once per session start.
func NewEngine(view editor.EditorView, settings func() config.HighlightSettings, bus eventbus.EventBus) *Engine {
	if settings == nil {
		settings = func() config.HighlightSettings { return config.DefaultConfig().Highlight }
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	e := &Engine{
		Search:     search.NewService(),
		Decoration: decoration.NewService(view),
		Navigation: navigation.NewService(),
		Selection:  selection.NewService(view),
		view:       view,
		settings:   settings,
		bus:        bus,
		session:    Session{Cursor: navigation.NoCursor},
	}

	view.OnSelectionChange(func() {
		e.Apply(SelectionChangedEvent{})
	})

	return e
}

// Apply runs the transition for ev
func (e *Engine) Apply(ev Event) {
	switch ev := ev.(type) {
	case CommandEvent:
		switch ev.Action {
		case ActionToggle:
			e.Toggle()
		case ActionHighlight:
			e.Highlight()
		case ActionClear:
			e.Clear()
		case ActionSelectAll:
			e.SelectAll()
		case ActionNext:
			e.Next()
		case ActionPrev:
			e.Prev()
		default:
			engineLog.Warn("unknown_action", slog.String("action", string(ev.Action)))
		}
	case SelectionChangedEvent:
		e.selectionChanged()
	case DocumentChangedEvent:
		e.clear(domain.ClearDocumentChange)
	}
}

// Toggle clears an active session, or starts one from the selection or word
func (e *Engine) Toggle() {
	if e.session.Active {
		e.clear(domain.ClearToggle)
		return
	}
	e.Highlight()
}

// Highlight replaces any session with one derived from the primary
// selection, or from the word under the caret when nothing is selected.
func (e *Engine) Highlight() {
	literal, wholeWord, caret, ok := e.resolveText()
	if !ok {
		engineLog.Debug("highlight_skipped", slog.String("reason", "no selection or word"))
		return
	}

	e.clear(domain.ClearRehighlight)

	e.snapshot = e.settings()
	buf := e.view.Buffer()
	res := e.Search.Search(buf, literal, wholeWord, caret)

	if len(res.Matches) == 0 {
		e.setStatus(statusText(buf, nil), true)
		engineLog.Info("highlight_empty", slog.String("pattern", literal), slog.Bool("whole_word", wholeWord))
		return
	}

	e.session = Session{
		Pattern:   literal,
		WholeWord: wholeWord,
		Matches:   res.Matches,
		Cursor:    res.Cursor,
		Active:    true,
	}
	e.Navigation.Reset(len(res.Matches), res.Cursor)

	plan := decoration.Build(buf, res.Matches, decoration.StylesFrom(e.snapshot), decoration.Options{
		OverviewMarkers: e.snapshot.OverviewMarkers,
	})
	e.Decoration.Apply(plan)
	e.setStatus(statusText(buf, res.Matches), true)

	engineLog.Info("highlight_started",
		slog.String("pattern", literal),
		slog.Bool("whole_word", wholeWord),
		slog.Int("matches", len(res.Matches)),
		slog.Int("cursor", res.Cursor))
	e.bus.Publish(eventbus.HighlightStartedEvent{
		Pattern:    literal,
		WholeWord:  wholeWord,
		MatchCount: len(res.Matches),
		Cursor:     res.Cursor,
	})

	if e.snapshot.SelectMatching {
		e.Selection.Remember()
		e.selectAll()
	}
}

// Clear tears down the session and hides the status
func (e *Engine) Clear() {
	e.clear(domain.ClearExplicit)
}

// SelectAll turns every occurrence into a selection, starting a session first if needed
func (e *Engine) SelectAll() {
	if !e.session.Active {
		e.Highlight()
	}
	e.selectAll()
}

// Next focuses the following occurrence, wrapping after the last
func (e *Engine) Next() {
	e.move(navigation.DirectionNext)
}

// Prev focuses the preceding occurrence, wrapping before the first
func (e *Engine) Prev() {
	e.move(navigation.DirectionPrev)
}

// Session returns a snapshot of the current session
func (e *Engine) Session() Session {
	s := e.session
	s.Matches = slices.Clone(s.Matches)
	return s
}

// Active reports whether a session is active
func (e *Engine) Active() bool {
	return e.session.Active
}

// Status returns the current status text
func (e *Engine) Status() Status {
	return e.status
}

func (e *Engine) resolveText() (literal string, wholeWord bool, caret int, ok bool) {
	buf := e.view.Buffer()
	primary := e.Selection.Primary()

	if !primary.IsEmpty() {
		r := primary.Range()
		literal = buf.TextInRange(r)
		if literal != "" {
			return literal, false, buf.OffsetAt(r.Start), true
		}
	}

	wr, found := buf.WordRangeAt(primary.Active)
	if !found {
		return "", false, 0, false
	}
	return buf.TextInRange(wr), true, buf.OffsetAt(primary.Active), true
}

func (e *Engine) selectAll() {
	if !e.session.Active {
		return
	}
	if e.Selection.SelectAll(e.session.Matches) {
		e.bus.Publish(eventbus.OccurrencesSelectedEvent{Count: len(e.session.Matches)})
	}
}

func (e *Engine) move(dir navigation.Direction) {
	if !e.session.Active {
		wasRange := !e.Selection.Primary().IsEmpty()
		e.Highlight()
		if e.session.Active && !wasRange && e.session.Cursor != navigation.NoCursor {
			e.focus(e.session.Cursor, e.session.Cursor)
		}
		return
	}

	ev, moved := e.Navigation.Navigate(dir)
	if !moved {
		return
	}
	e.session.Cursor = ev.NewIndex
	e.focus(ev.OldIndex, ev.NewIndex)
}

func (e *Engine) focus(oldIndex, newIndex int) {
	occ := e.session.Matches[newIndex]
	e.Selection.Focus(occ)
	e.bus.Publish(eventbus.MatchFocusedEvent{OldIndex: oldIndex, NewIndex: newIndex, Occurrence: occ})
}

func (e *Engine) selectionChanged() {
	if e.Selection.Consume() {
		return
	}
	e.clear(domain.ClearSelectionChange)
}

// clear is a total reset. The saved selection is put back only when the
// user asked to stop highlighting or a new highlight replaces the session.
func (e *Engine) clear(reason domain.ClearReason) {
	e.setStatus("", false)
	if !e.session.Active {
		return
	}

	restore := e.snapshot.SelectMatching &&
		(reason == domain.ClearExplicit || reason == domain.ClearToggle || reason == domain.ClearRehighlight)

	e.Decoration.Clear()
	e.Navigation.Clear()
	e.Search.Reset()
	e.session = Session{Cursor: navigation.NoCursor}

	if restore {
		e.Selection.Restore()
	} else {
		e.Selection.Forget()
	}

	engineLog.Info("highlight_cleared", slog.String("reason", string(reason)))
	e.bus.Publish(eventbus.HighlightClearedEvent{Reason: reason})
}

func (e *Engine) setStatus(text string, visible bool) {
	next := Status{Text: text, Visible: visible}
	if next == e.status {
		return
	}
	e.status = next
	e.bus.Publish(eventbus.StatusChangedEvent{Text: text, Visible: visible})
}

// statusText reports the match count and the number of lines from the first
// match to the last one.
func statusText(buf editor.TextBuffer, matches []domain.Occurrence) string {
	if len(matches) == 0 {
		return "0 matches, spanning 0 lines"
	}
	first := buf.PositionAt(matches[0].Start).Line
	last := buf.PositionAt(matches[len(matches)-1].End).Line
	return fmt.Sprintf("%d matches, spanning %d lines", len(matches), last-first+1)
}
