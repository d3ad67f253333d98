package types

import "luminol/internal/ui/commands"

// Navigation actions
type MoveCaretAction struct {
	Direction Direction
	Extend    bool // extend the primary selection instead of collapsing it
}

func (a MoveCaretAction) Type() string { return "move_caret" }

type ScrollAction struct {
	Lines int
}

func (a ScrollAction) Type() string { return "scroll" }

// Highlight actions
type CommandAction struct {
	ID commands.ID
}

func (a CommandAction) Type() string { return "command" }

// UI actions
type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
