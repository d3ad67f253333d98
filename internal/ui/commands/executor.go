package commands

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"luminol/internal/eventbus"
	"luminol/internal/logging"
)

var cmdLog = logging.ForComponent(logging.CompUI)

// Executor runs commands for the UI and reports failures on the bus
type Executor struct {
	registry *Registry
}

// NewExecutor creates a new command executor
func NewExecutor(registry *Registry) *Executor {
	return &Executor{registry: registry}
}

// Execute runs id. An unknown id is logged and published as an error event.
func (e *Executor) Execute(id ID) tea.Cmd {
	cmd, err := e.registry.Execute(id)
	if err != nil {
		cmdLog.Error("command_failed", slog.String("command", string(id)), slog.String("error", err.Error()))
		e.registry.ctx.Bus.Publish(eventbus.ErrorEvent{Message: "command failed", Err: err})
		return nil
	}
	cmdLog.Debug("command_executed", slog.String("command", string(id)))
	return cmd
}

// ExecuteToggle toggles highlighting
func (e *Executor) ExecuteToggle() tea.Cmd {
	return e.Execute(ToggleHighlight)
}

// ExecuteHighlight highlights the selection or the word under the caret
func (e *Executor) ExecuteHighlight() tea.Cmd {
	return e.Execute(HighlightSelection)
}

// ExecuteClear clears highlights
func (e *Executor) ExecuteClear() tea.Cmd {
	return e.Execute(ClearHighlights)
}

// ExecuteSelectAll selects every occurrence
func (e *Executor) ExecuteSelectAll() tea.Cmd {
	return e.Execute(SelectHighlighted)
}

// ExecuteNext moves to the next match
func (e *Executor) ExecuteNext() tea.Cmd {
	return e.Execute(MoveNextMatch)
}

// ExecutePrev moves to the previous match
func (e *Executor) ExecutePrev() tea.Cmd {
	return e.Execute(MovePrevMatch)
}

// Registry returns the registry the executor runs against
func (e *Executor) Registry() *Registry {
	return e.registry
}
