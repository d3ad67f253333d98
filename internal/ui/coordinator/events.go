package coordinator

import "luminol/internal/domain"

// Action names a user-facing engine action
type Action string

const (
	ActionToggle    Action = "toggle"
	ActionHighlight Action = "highlight"
	ActionClear     Action = "clear"
	ActionSelectAll Action = "select-all"
	ActionNext      Action = "next"
	ActionPrev      Action = "prev"
)

// Event is an inbound event for Engine.Apply
type Event interface {
	eventName() string
}

// CommandEvent is a user command
type CommandEvent struct {
	Action Action
}

// SelectionChangedEvent is a selection-change notification from the view
type SelectionChangedEvent struct{}

// DocumentChangedEvent reports that the document text is about to be replaced
type DocumentChangedEvent struct {
	Path string
}

func (CommandEvent) eventName() string          { return "command" }
func (SelectionChangedEvent) eventName() string { return "selection-changed" }
func (DocumentChangedEvent) eventName() string  { return "document-changed" }

// Session is a snapshot of the highlight session
type Session struct {
	Pattern   string
	WholeWord bool
	Matches   []domain.Occurrence
	Cursor    int
	Active    bool
}

// Status is the status-bar text and whether it is shown
type Status struct {
	Text    string
	Visible bool
}
