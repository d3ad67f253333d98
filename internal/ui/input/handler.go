package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"luminol/internal/ui/commands"
	"luminol/internal/ui/input/types"
)

type binding struct {
	keys   *key.Binding
	action types.Action
}

// Handler turns key messages into actions
type Handler struct {
	keys     KeyMap
	bindings []binding
}

// New creates a handler with the default key map
func New() *Handler {
	return NewWithKeyMap(DefaultKeyMap())
}

// NewWithKeyMap creates a handler for km
func NewWithKeyMap(km KeyMap) *Handler {
	h := &Handler{keys: km}

	h.bind(&h.keys.ExtendUp, types.MoveCaretAction{Direction: types.DirectionUp, Extend: true})
	h.bind(&h.keys.ExtendDown, types.MoveCaretAction{Direction: types.DirectionDown, Extend: true})
	h.bind(&h.keys.ExtendLeft, types.MoveCaretAction{Direction: types.DirectionLeft, Extend: true})
	h.bind(&h.keys.ExtendRight, types.MoveCaretAction{Direction: types.DirectionRight, Extend: true})
	h.bind(&h.keys.Up, types.MoveCaretAction{Direction: types.DirectionUp})
	h.bind(&h.keys.Down, types.MoveCaretAction{Direction: types.DirectionDown})
	h.bind(&h.keys.Left, types.MoveCaretAction{Direction: types.DirectionLeft})
	h.bind(&h.keys.Right, types.MoveCaretAction{Direction: types.DirectionRight})
	h.bind(&h.keys.Home, types.MoveCaretAction{Direction: types.DirectionHome})
	h.bind(&h.keys.End, types.MoveCaretAction{Direction: types.DirectionEnd})
	h.bind(&h.keys.PageUp, types.MoveCaretAction{Direction: types.DirectionPageUp})
	h.bind(&h.keys.PageDown, types.MoveCaretAction{Direction: types.DirectionPageDown})
	h.bind(&h.keys.Top, types.MoveCaretAction{Direction: types.DirectionTop})
	h.bind(&h.keys.Bottom, types.MoveCaretAction{Direction: types.DirectionBottom})

	h.bind(&h.keys.Toggle, types.CommandAction{ID: commands.ToggleHighlight})
	h.bind(&h.keys.Highlight, types.CommandAction{ID: commands.HighlightSelection})
	h.bind(&h.keys.Clear, types.CommandAction{ID: commands.ClearHighlights})
	h.bind(&h.keys.SelectAll, types.CommandAction{ID: commands.SelectHighlighted})
	h.bind(&h.keys.Next, types.CommandAction{ID: commands.MoveNextMatch})
	h.bind(&h.keys.Prev, types.CommandAction{ID: commands.MovePrevMatch})

	h.bind(&h.keys.Help, types.ShowHelpAction{})
	h.bind(&h.keys.Quit, types.QuitAction{})

	return h
}

func (h *Handler) bind(k *key.Binding, action types.Action) {
	h.bindings = append(h.bindings, binding{keys: k, action: action})
}

// HandleKey returns the actions bound to msg, or nil when nothing matches
func (h *Handler) HandleKey(msg tea.KeyMsg) []types.Action {
	for _, b := range h.bindings {
		if key.Matches(msg, *b.keys) {
			return []types.Action{b.action}
		}
	}
	return nil
}

// KeyMap returns the active key map
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}
