package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"luminol/internal/eventbus"
	"luminol/internal/ui/coordinator"
)

// ErrUnknownCommand is returned when an ID has no registered command
var ErrUnknownCommand = errors.New("unknown command")

// ID identifies a host command
type ID string

// Host command IDs
const (
	ToggleHighlight    ID = "toggle-highlight"
	HighlightSelection ID = "highlight-selection"
	ClearHighlights    ID = "clear-highlights"
	SelectHighlighted  ID = "select-highlighted"
	MoveNextMatch      ID = "move-next-match"
	MovePrevMatch      ID = "move-prev-match"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	Engine *coordinator.Engine
	Bus    eventbus.EventBus
}

// EngineCommand runs one engine action
type EngineCommand struct {
	ctx    *CommandContext
	action coordinator.Action
}

// NewEngineCommand creates a command for an engine action
func NewEngineCommand(ctx *CommandContext, action coordinator.Action) *EngineCommand {
	return &EngineCommand{
		ctx:    ctx,
		action: action,
	}
}

// Execute applies the action to the engine
func (c *EngineCommand) Execute() tea.Cmd {
	c.ctx.Engine.Apply(coordinator.CommandEvent{Action: c.action})
	return nil
}

// Info describes a registered command
type Info struct {
	ID    ID
	Title string
}

type entry struct {
	info   Info
	action coordinator.Action
}

// Registry maps command IDs to engine transitions
type Registry struct {
	ctx     *CommandContext
	entries map[ID]entry
	order   []ID
}

// NewRegistry creates a registry with every host command registered
func NewRegistry(engine *coordinator.Engine, bus eventbus.EventBus) *Registry {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	r := &Registry{
		ctx:     &CommandContext{Engine: engine, Bus: bus},
		entries: make(map[ID]entry),
	}

	r.register(ToggleHighlight, "Toggle highlighting", coordinator.ActionToggle)
	r.register(HighlightSelection, "Highlight selection or word", coordinator.ActionHighlight)
	r.register(ClearHighlights, "Clear highlights", coordinator.ActionClear)
	r.register(SelectHighlighted, "Select all occurrences", coordinator.ActionSelectAll)
	r.register(MoveNextMatch, "Move to next match", coordinator.ActionNext)
	r.register(MovePrevMatch, "Move to previous match", coordinator.ActionPrev)

	return r
}

func (r *Registry) register(id ID, title string, action coordinator.Action) {
	r.entries[id] = entry{info: Info{ID: id, Title: title}, action: action}
	r.order = append(r.order, id)
}

// Commands lists registered commands in registration order
func (r *Registry) Commands() []Info {
	out := make([]Info, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].info)
	}
	return out
}

// Lookup resolves id to a command
func (r *Registry) Lookup(id ID) (Command, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, id)
	}
	return NewEngineCommand(r.ctx, e.action), nil
}

// Execute resolves and runs id
func (r *Registry) Execute(id ID) (tea.Cmd, error) {
	cmd, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}
	return cmd.Execute(), nil
}
