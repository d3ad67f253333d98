package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luminol/internal/config"
	"luminol/internal/domain"
	"luminol/internal/editor"
	"luminol/internal/eventbus"
	"luminol/internal/ui/services/navigation"
)

type fixture struct {
	view     *editor.View
	engine   *Engine
	bus      *eventbus.Recorder
	settings config.HighlightSettings
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	f := &fixture{
		view:     editor.NewView(editor.NewDocument(text)),
		bus:      eventbus.NewRecorder(),
		settings: config.DefaultConfig().Highlight,
	}
	f.engine = NewEngine(f.view, func() config.HighlightSettings { return f.settings }, f.bus)
	return f
}

func pos(col int) domain.Position {
	return domain.Position{Column: col}
}

func (f *fixture) selectCols(from, to int) {
	f.view.SetSelections([]domain.Selection{domain.NewSelection(pos(from), pos(to))})
}

func TestScenarioA(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.selectCols(0, 3)

	f.engine.Highlight()

	s := f.engine.Session()
	require.True(t, s.Active)
	assert.Equal(t, "foo", s.Pattern)
	assert.False(t, s.WholeWord)
	assert.Equal(t, []domain.Occurrence{{Start: 0, End: 3}, {Start: 8, End: 11}, {Start: 16, End: 19}}, s.Matches)
	assert.Equal(t, 0, s.Cursor)

	assert.Equal(t, []domain.Layer{domain.LayerDim, domain.LayerHighlight, domain.LayerOverview}, f.view.Layers())
	assert.Equal(t, Status{Text: "3 matches, spanning 1 lines", Visible: true}, f.engine.Status())

	started := f.bus.OfType(eventbus.EventHighlightStarted)
	require.Len(t, started, 1)
	assert.Equal(t, 3, started[0].(eventbus.HighlightStartedEvent).MatchCount)
}

func TestScenarioB(t *testing.T) {
	f := newFixture(t, "hello")
	f.view.MoveCaret(pos(2))

	f.engine.Highlight()

	s := f.engine.Session()
	require.True(t, s.Active)
	assert.Equal(t, "hello", s.Pattern)
	assert.True(t, s.WholeWord)
	assert.Len(t, s.Matches, 1)
	assert.Equal(t, []domain.Layer{domain.LayerDim, domain.LayerSole, domain.LayerOverview}, f.view.Layers())
	assert.Equal(t, "1 matches, spanning 1 lines", f.engine.Status().Text)
}

func TestScenarioC(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.selectCols(0, 3)
	f.engine.Highlight()

	var cursors []int
	for i := 0; i < 3; i++ {
		f.engine.Next()
		require.True(t, f.engine.Active(), "navigation must not end the session")
		cursors = append(cursors, f.engine.Session().Cursor)
	}
	assert.Equal(t, []int{1, 2, 0}, cursors)

	sel := f.view.Primary()
	assert.Equal(t, pos(0), sel.Anchor)
	assert.Equal(t, pos(3), sel.Active)
}

func TestScenarioD(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.settings.SelectMatching = true
	f.selectCols(8, 11)

	f.engine.Highlight()
	require.True(t, f.engine.Active())

	sels := f.view.Selections()
	require.Len(t, sels, 3)
	for i, m := range f.engine.Session().Matches {
		assert.Equal(t, domain.NewSelection(pos(m.Start), pos(m.End)), sels[i])
	}

	f.engine.Clear()
	assert.False(t, f.engine.Active())
	assert.Equal(t, []domain.Selection{domain.NewSelection(pos(8), pos(11))}, f.view.Selections())
}

func TestSelectionDrivenClearDoesNotRestore(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.settings.SelectMatching = true
	f.selectCols(0, 3)
	f.engine.Highlight()

	f.view.MoveCaret(pos(5))

	assert.False(t, f.engine.Active())
	assert.Equal(t, []domain.Selection{domain.Caret(pos(5))}, f.view.Selections())

	cleared := f.bus.OfType(eventbus.EventHighlightCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, domain.ClearSelectionChange, cleared[0].(eventbus.HighlightClearedEvent).Reason)
}

func TestSuppressionCorrectness(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.selectCols(0, 3)
	f.engine.Highlight()

	f.engine.Selection.Arm()
	f.selectCols(4, 7)
	assert.True(t, f.engine.Active(), "armed change leaves the session")

	f.selectCols(4, 6)
	assert.False(t, f.engine.Active(), "unarmed change clears")
}

func TestClearIsTotalReset(t *testing.T) {
	f := newFixture(t, "a b a b a")
	f.view.MoveCaret(pos(0))
	f.engine.Highlight()
	f.engine.Next()
	require.True(t, f.engine.Active())

	f.engine.Clear()

	s := f.engine.Session()
	assert.False(t, s.Active)
	assert.Empty(t, s.Matches)
	assert.Equal(t, navigation.NoCursor, s.Cursor)
	assert.Empty(t, f.view.Layers())
	assert.False(t, f.engine.Status().Visible)
	assert.Equal(t, 0, f.engine.Navigation.GetCount())

	f.bus.Reset()
	f.engine.Clear()
	assert.Empty(t, f.bus.OfType(eventbus.EventHighlightCleared), "clearing an inactive session is a no-op")
}

func TestToggle(t *testing.T) {
	f := newFixture(t, "x y x")
	f.view.MoveCaret(pos(0))

	f.engine.Toggle()
	require.True(t, f.engine.Active())
	assert.Equal(t, "2 matches, spanning 1 lines", f.engine.Status().Text)

	f.engine.Toggle()
	assert.False(t, f.engine.Active())
	assert.Empty(t, f.view.Layers())
}

func TestHighlightWithoutWordIsNoOp(t *testing.T) {
	f := newFixture(t, "foo   bar")
	f.view.MoveCaret(pos(4))

	f.engine.Highlight()

	assert.False(t, f.engine.Active())
	assert.Empty(t, f.view.Layers())
	assert.Empty(t, f.bus.Events())
}

func TestZeroMatchesStaysInactive(t *testing.T) {
	// \b is ASCII-only, so a word ending in a non-ASCII letter never matches whole-word
	f := newFixture(t, "café")
	f.view.MoveCaret(pos(1))

	f.engine.Highlight()

	assert.False(t, f.engine.Active())
	assert.Empty(t, f.view.Layers())
	assert.Equal(t, Status{Text: "0 matches, spanning 0 lines", Visible: true}, f.engine.Status())

	f.view.MoveCaret(pos(2))
	assert.False(t, f.engine.Status().Visible)
}

func TestRehighlightReplacesSession(t *testing.T) {
	f := newFixture(t, "foo bar foo bar")
	f.selectCols(0, 3)
	f.engine.Highlight()

	f.engine.Selection.Arm()
	f.selectCols(4, 7)
	f.engine.Highlight()

	s := f.engine.Session()
	assert.Equal(t, "bar", s.Pattern)
	assert.Equal(t, []domain.Occurrence{{Start: 4, End: 7}, {Start: 12, End: 15}}, s.Matches)

	cleared := f.bus.OfType(eventbus.EventHighlightCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, domain.ClearRehighlight, cleared[0].(eventbus.HighlightClearedEvent).Reason)
}

func TestNextWithoutSessionStartsOneAndFocuses(t *testing.T) {
	f := newFixture(t, "foo bar foo")
	f.view.MoveCaret(pos(9))

	f.engine.Next()

	s := f.engine.Session()
	require.True(t, s.Active)
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, domain.NewSelection(pos(8), pos(11)), f.view.Primary())

	focused := f.bus.OfType(eventbus.EventMatchFocused)
	require.Len(t, focused, 1)
	assert.Equal(t, 1, focused[0].(eventbus.MatchFocusedEvent).NewIndex)
}

func TestPrevWrapsAndSelectsMatch(t *testing.T) {
	f := newFixture(t, "foo bar foo baz foo")
	f.selectCols(0, 3)
	f.engine.Highlight()

	f.engine.Prev()

	assert.Equal(t, 2, f.engine.Session().Cursor)
	assert.Equal(t, domain.NewSelection(pos(16), pos(19)), f.view.Primary())
	assert.True(t, f.engine.Active())
}

func TestNavigationWithSingleMatchKeepsSelection(t *testing.T) {
	f := newFixture(t, "hello world")
	f.view.MoveCaret(pos(1))
	f.engine.Highlight()

	f.engine.Next()

	assert.True(t, f.engine.Active())
	assert.Equal(t, domain.Caret(pos(1)), f.view.Primary())
}

func TestSelectAllStartsSessionWhenInactive(t *testing.T) {
	f := newFixture(t, "ab cd ab")
	f.view.MoveCaret(pos(0))

	f.engine.SelectAll()

	require.True(t, f.engine.Active())
	assert.Len(t, f.view.Selections(), 2)
	require.Len(t, f.bus.OfType(eventbus.EventOccurrencesSelected), 1)
}

func TestSettingsSnapshotTakenAtSessionStart(t *testing.T) {
	f := newFixture(t, "ab ab")
	f.view.MoveCaret(pos(0))
	f.engine.Highlight()

	f.settings.SelectMatching = true
	f.engine.Clear()

	assert.Equal(t, []domain.Selection{domain.Caret(pos(0))}, f.view.Selections(), "no restore without select-matching at start")
}

func TestOverviewMarkersOff(t *testing.T) {
	f := newFixture(t, "ab\nab")
	f.settings.OverviewMarkers = false
	f.view.MoveCaret(pos(0))

	f.engine.Highlight()

	assert.Equal(t, []domain.Layer{domain.LayerDim, domain.LayerHighlight}, f.view.Layers())
	assert.Equal(t, "2 matches, spanning 2 lines", f.engine.Status().Text)
}

func TestDocumentChangeClearsWithoutRestore(t *testing.T) {
	f := newFixture(t, "foo foo")
	f.settings.SelectMatching = true
	f.selectCols(0, 3)
	f.engine.Highlight()

	f.engine.Apply(DocumentChangedEvent{Path: "x.txt"})

	assert.False(t, f.engine.Active())
	assert.Len(t, f.view.Selections(), 2, "selection is left as is")
}

func TestApplyDispatchesCommands(t *testing.T) {
	f := newFixture(t, "foo foo")
	f.view.MoveCaret(pos(0))

	f.engine.Apply(CommandEvent{Action: ActionToggle})
	assert.True(t, f.engine.Active())

	f.engine.Apply(CommandEvent{Action: ActionNext})
	assert.Equal(t, 1, f.engine.Session().Cursor)

	f.engine.Apply(CommandEvent{Action: "bogus"})
	assert.True(t, f.engine.Active())

	f.engine.Apply(CommandEvent{Action: ActionClear})
	assert.False(t, f.engine.Active())
}
