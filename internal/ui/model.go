package ui

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"luminol/internal/config"
	"luminol/internal/domain"
	"luminol/internal/editor"
	"luminol/internal/eventbus"
	"luminol/internal/logging"
	"luminol/internal/ui/commands"
	"luminol/internal/ui/coordinator"
	"luminol/internal/ui/input"
	inputtypes "luminol/internal/ui/input/types"
	"luminol/internal/ui/views"
)

var uiLog = logging.ForComponent(logging.CompUI)

const (
	wheelLines     = 3
	messageTimeout = 3 * time.Second
)

// Options configure a Model
type Options struct {
	Bus           eventbus.EventBus
	Config        *config.Config
	ConfigService config.ConfigService // optional; enables config reload
	Path          string               // file shown, used for reloads
	Document      *editor.Document
	Watcher       *Watcher // optional
}

// Model represents the UI state
type Model struct {
	bus           eventbus.EventBus
	config        *config.Config
	configService config.ConfigService
	path          string

	// UI-specific state
	width       int
	height      int
	help        help.Model
	message     string
	dragging    bool
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	view         *editor.View
	engine       *coordinator.Engine
	registry     *commands.Registry
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	watcher      *Watcher

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	doc := opts.Document
	if doc == nil {
		doc = editor.NewDocument("")
	}

	m := &Model{
		bus:           bus,
		config:        cfg,
		configService: opts.ConfigService,
		path:          opts.Path,
		help:          help.New(),
		view:          editor.NewView(doc),
		inputHandler:  input.New(),
		renderer:      views.NewRenderer(),
		helpRenderer:  NewHelpRenderer(),
		helpOps:       NewHelpOps(nil),
		watcher:       opts.Watcher,
	}

	// Settings are read at session start; a reload applies to the next highlight
	m.engine = coordinator.NewEngine(m.view, func() config.HighlightSettings {
		return m.config.Highlight
	}, bus)
	m.registry = commands.NewRegistry(m.engine, bus)
	m.cmdExecutor = commands.NewExecutor(m.registry)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Engine returns the highlight engine of the open document
func (m *Model) Engine() *coordinator.Engine {
	return m.engine
}

// EditorView returns the view showing the document
func (m *Model) EditorView() *editor.View {
	return m.view
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.Wait()
	}
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.view.SetHeight(max(1, msg.Height-1))
		return m, nil

	case tea.KeyMsg:
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleKey(msg) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	doc := m.view.Document()
	top, height := m.view.Viewport()
	lines := make([]string, 0, height)
	for i := top; i < top+height && i < doc.LineCount(); i++ {
		lines = append(lines, doc.Line(i))
	}

	var layers []views.LayerState
	for _, l := range m.view.Layers() {
		d, _ := m.view.Decoration(l)
		layers = append(layers, views.LayerState{Layer: l, Style: d.Style, Ranges: d.Ranges})
	}

	status := m.engine.Status()
	return m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		FileName:   m.fileName(),
		Top:        top,
		Lines:      lines,
		Layers:     layers,
		Selections: m.view.Selections(),
		Status:     status.Text,
		ShowStatus: status.Visible,
		Message:    m.message,
		HelpLine:   m.help.View(m.inputHandler.KeyMap()),
		TabWidth:   views.DefaultTabWidth,
	})
}

func (m *Model) fileName() string {
	if m.path == "" {
		return "[stdin]"
	}
	return filepath.Base(m.path)
}

// processAction executes one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.MoveCaretAction:
		m.moveCaret(a.Direction, a.Extend)
	case inputtypes.ScrollAction:
		m.view.Scroll(a.Lines)
	case inputtypes.CommandAction:
		return m.cmdExecutor.Execute(a.ID)
	case inputtypes.ShowHelpAction:
		content := m.helpRenderer.RenderHelpContent(m.inputHandler.KeyMap(), m.registry.Commands())
		return m.fetchHelpPager(content)
	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// moveCaret moves the active end of the primary selection. Every move is a
// user selection change, so an active highlight session ends.
func (m *Model) moveCaret(dir inputtypes.Direction, extend bool) {
	doc := m.view.Document()
	cur := m.view.Primary().Active
	_, height := m.view.Viewport()
	target := cur

	switch dir {
	case inputtypes.DirectionUp:
		target.Line--
	case inputtypes.DirectionDown:
		target.Line++
	case inputtypes.DirectionLeft:
		target = doc.PositionAt(doc.OffsetAt(cur) - 1)
	case inputtypes.DirectionRight:
		target = doc.PositionAt(doc.OffsetAt(cur) + 1)
	case inputtypes.DirectionHome:
		target.Column = 0
	case inputtypes.DirectionEnd:
		target.Column = doc.LineRange(cur.Line).End.Column
	case inputtypes.DirectionPageUp:
		target.Line -= height
	case inputtypes.DirectionPageDown:
		target.Line += height
	case inputtypes.DirectionTop:
		target = domain.Position{}
	case inputtypes.DirectionBottom:
		target = doc.PositionAt(doc.Len())
	}
	target.Line = min(max(target.Line, 0), doc.LineCount()-1)

	if extend {
		m.view.ExtendSelection(target)
	} else {
		m.view.MoveCaret(target)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.Scroll(-wheelLines)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.Scroll(wheelLines)
		return
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
		return
	}

	pos, ok := m.positionAt(msg.X, msg.Y)
	if !ok {
		return
	}
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.view.MoveCaret(pos)
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.view.ExtendSelection(pos)
	}
}

// positionAt maps a screen cell to a document position
func (m *Model) positionAt(x, y int) (domain.Position, bool) {
	top, height := m.view.Viewport()
	if y < 0 || y >= height || x < 0 || x >= m.width-1 {
		return domain.Position{}, false
	}
	doc := m.view.Document()
	line := min(top+y, doc.LineCount()-1)
	return domain.Position{Line: line, Column: views.ColumnAt(doc.Line(line), x, views.DefaultTabWidth)}, true
}

// fetchHelpPager runs the help pager, pausing rendering while it owns the terminal
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return helpPagerMsg{err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			return m, m.showMessage(errorText(e.Message, e.Err))
		}
		return m, nil

	case fileChangedMsg:
		switch msg.kind {
		case fileDocument:
			m.reloadDocument()
		case fileConfig:
			m.reloadConfig()
		}
		return m, tea.Batch(m.waitForFileEvent(), m.messageTimeout())

	case watchErrMsg:
		return m, tea.Batch(m.waitForFileEvent(), m.showMessage(errorText("watch failed", msg.err)))

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			uiLog.Warn("help_pager_failed", slog.String("error", msg.err.Error()))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearMessageMsg:
		m.message = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Wait()
}

// reloadDocument rereads the open file. Offsets of the old text are
// meaningless for the new one, so the session ends first.
func (m *Model) reloadDocument() {
	if m.path == "" {
		return
	}
	doc, err := editor.LoadDocument(m.path)
	if err != nil {
		m.reportError("reload failed", err)
		return
	}

	m.engine.Apply(coordinator.DocumentChangedEvent{Path: m.path})
	m.view.SetDocument(doc)

	uiLog.Info("document_reloaded", slog.String("path", m.path), slog.Int("lines", doc.LineCount()))
	m.bus.Publish(eventbus.DocumentChangedEvent{Path: m.path})
	m.message = "reloaded"
}

// reloadConfig rereads the config file; the next session uses it
func (m *Model) reloadConfig() {
	if m.configService == nil {
		return
	}
	cfg, err := m.configService.LoadFromPath(m.configService.Path())
	if err != nil {
		m.reportError("config reload failed", err)
		return
	}
	m.config = cfg
	m.bus.Publish(eventbus.ConfigLoadedEvent{Path: m.configService.Path()})
	m.message = "config reloaded"
}

func (m *Model) reportError(message string, err error) {
	uiLog.Error(message, slog.String("error", err.Error()))
	m.message = errorText(message, err)
	m.bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
}

func (m *Model) showMessage(text string) tea.Cmd {
	m.message = text
	return m.messageTimeout()
}

func (m *Model) messageTimeout() tea.Cmd {
	if m.message == "" {
		return nil
	}
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg { return clearMessageMsg{} })
}

func errorText(message string, err error) string {
	if err == nil {
		return message
	}
	return message + ": " + err.Error()
}
