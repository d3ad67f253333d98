package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luminol/internal/config"
	"luminol/internal/domain"
	"luminol/internal/editor"
	"luminol/internal/eventbus"
	"luminol/internal/ui/commands"
	"luminol/internal/ui/input"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd runs cmd, unwrapping a batch of one
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		return runCmd(t, batch[0])
	}
	return msg
}

func newTestModel(t *testing.T, text string) (*Model, *eventbus.Recorder) {
	t.Helper()
	bus := eventbus.NewRecorder()
	m := NewModel(Options{Bus: bus, Document: editor.NewDocument(text)})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	return m, bus
}

func TestToggleKeyHighlightsWordUnderCaret(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo\nbaz foo")

	m.Update(keyRunes("t"))

	s := m.Engine().Session()
	require.True(t, s.Active)
	assert.True(t, s.WholeWord)
	assert.Len(t, s.Matches, 3)
	assert.Contains(t, m.View(), "3 matches, spanning 2 lines")

	m.Update(keyRunes("t"))
	assert.False(t, m.Engine().Active())
	assert.NotContains(t, m.View(), "matches")
}

func TestCaretMoveClearsSession(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo")
	m.Update(keyRunes("t"))
	require.True(t, m.Engine().Active())

	m.Update(keyRunes("l"))

	assert.False(t, m.Engine().Active())
	assert.Equal(t, domain.Caret(domain.Position{Column: 1}), m.EditorView().Primary())
}

func TestNextKeyFocusesFollowingMatch(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo")
	m.Update(keyRunes("t"))

	m.Update(keyRunes("n"))

	require.True(t, m.Engine().Active())
	assert.Equal(t, 1, m.Engine().Session().Cursor)
	assert.Equal(t, domain.NewSelection(domain.Position{Column: 8}, domain.Position{Column: 11}), m.EditorView().Primary())

	m.Update(keyRunes("N"))
	assert.Equal(t, 0, m.Engine().Session().Cursor)
}

func TestSelectAllKey(t *testing.T) {
	m, _ := newTestModel(t, "ab ab ab")

	m.Update(keyRunes("a"))

	assert.True(t, m.Engine().Active())
	assert.Len(t, m.EditorView().Selections(), 3)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Engine().Active())
}

func TestMouseDragThenHighlight(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo\nbaz foo")

	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Equal(t, domain.NewSelection(domain.Position{}, domain.Position{Column: 3}), m.EditorView().Primary())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	s := m.Engine().Session()
	require.True(t, s.Active)
	assert.Equal(t, "foo", s.Pattern)
	assert.False(t, s.WholeWord)
}

func TestMouseClickClearsSession(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo")
	m.Update(keyRunes("t"))

	m.Update(tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.False(t, m.Engine().Active())
	assert.Equal(t, domain.Position{Column: 5}, m.EditorView().Primary().Active)
}

func TestClickOnStatusRowIsIgnored(t *testing.T) {
	m, _ := newTestModel(t, "foo bar foo")
	m.Update(keyRunes("t"))

	m.Update(tea.MouseMsg{X: 1, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.True(t, m.Engine().Active())
}

func TestDocumentReloadEndsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo foo"), 0o644))
	doc, err := editor.LoadDocument(path)
	require.NoError(t, err)

	bus := eventbus.NewRecorder()
	m := NewModel(Options{Bus: bus, Path: path, Document: doc})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	m.Update(keyRunes("t"))
	require.True(t, m.Engine().Active())

	require.NoError(t, os.WriteFile(path, []byte("bar"), 0o644))
	m.Update(fileChangedMsg{path: path, kind: fileDocument, op: fsnotify.Write})

	assert.False(t, m.Engine().Active())
	assert.Equal(t, "bar", m.EditorView().Document().Text())
	assert.Len(t, bus.OfType(eventbus.EventDocumentChanged), 1)

	cleared := bus.OfType(eventbus.EventHighlightCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, domain.ClearDocumentChange, cleared[0].(eventbus.HighlightClearedEvent).Reason)
	assert.Contains(t, m.View(), "doc.txt")
}

func TestDocumentReloadFailureIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.txt")
	bus := eventbus.NewRecorder()
	m := NewModel(Options{Bus: bus, Path: path, Document: editor.NewDocument("x")})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 3})

	m.Update(fileChangedMsg{path: path, kind: fileDocument})

	require.Len(t, bus.OfType(eventbus.EventError), 1)
	assert.Contains(t, m.View(), "reload failed")
	assert.Equal(t, "x", m.EditorView().Document().Text())
}

func TestConfigReloadAppliesToNextSession(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[highlight]\nselect_matching = true\n"), 0o644))

	m := NewModel(Options{
		Config:        config.DefaultConfig(),
		ConfigService: config.NewConfigService(cfgPath, nil),
		Document:      editor.NewDocument("foo foo"),
	})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})

	m.Update(fileChangedMsg{path: cfgPath, kind: fileConfig})
	m.Update(keyRunes("t"))

	assert.Len(t, m.EditorView().Selections(), 2)

	m.Update(keyRunes("t"))
	assert.Equal(t, []domain.Selection{domain.Caret(domain.Position{})}, m.EditorView().Selections())
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t, "x")

	_, cmd := m.Update(keyRunes("q"))
	assert.Equal(t, tea.QuitMsg{}, runCmd(t, cmd))
}

func TestHelpWithoutProgramFailsQuietly(t *testing.T) {
	m, _ := newTestModel(t, "x")

	_, cmd := m.Update(keyRunes("?"))
	msg := runCmd(t, cmd)
	require.IsType(t, helpPagerMsg{}, msg)
	assert.ErrorIs(t, msg.(helpPagerMsg).err, errNoProgram)

	m.Update(msg)
	assert.NotContains(t, m.View(), "program not set")
}

func TestErrorEventShowsMessage(t *testing.T) {
	m, _ := newTestModel(t, "x")

	_, cmd := m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "command failed", Err: commands.ErrUnknownCommand}})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "command failed")

	m.Update(clearMessageMsg{})
	assert.NotContains(t, m.View(), "command failed")
}

func TestPagerModeBlanksView(t *testing.T) {
	m, _ := newTestModel(t, "hello")

	m.Update(pauseRenderingMsg{})
	assert.Empty(t, m.View())

	m.Update(resumeRenderingMsg{})
	assert.True(t, strings.HasPrefix(m.View(), "hello"))
}

func TestHelpContentListsCommands(t *testing.T) {
	m, _ := newTestModel(t, "x")

	content := NewHelpRenderer().RenderHelpContent(input.DefaultKeyMap(), m.registry.Commands())

	for _, id := range []commands.ID{commands.ToggleHighlight, commands.SelectHighlighted, commands.MovePrevMatch} {
		assert.Contains(t, content, string(id))
	}
	assert.Contains(t, content, "Luminol Help")
}

func TestViewBeforeResize(t *testing.T) {
	m := NewModel(Options{})
	assert.Equal(t, "Loading...", m.View())
}
