package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventHighlightStarted    EventType = "HighlightStarted"
	EventHighlightCleared    EventType = "HighlightCleared"
	EventMatchFocused        EventType = "MatchFocused"
	EventOccurrencesSelected EventType = "OccurrencesSelected"
	EventStatusChanged       EventType = "StatusChanged"
	EventDocumentLoaded      EventType = "DocumentLoaded"
	EventDocumentChanged     EventType = "DocumentChanged"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
	EventError               EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// HighlightStartedEvent is emitted when a highlight session is established
type HighlightStartedEvent struct {
	Pattern    string
	WholeWord  bool
	MatchCount int
	Cursor     int
}

func (e HighlightStartedEvent) Type() EventType { return EventHighlightStarted }

// ClearReason says what ended a highlight session
type ClearReason string

const (
	ClearExplicit        ClearReason = "explicit"
	ClearToggle          ClearReason = "toggle"
	ClearSelectionChange ClearReason = "selection-change"
	ClearRehighlight     ClearReason = "rehighlight"
	ClearDocumentChange  ClearReason = "document-change"
)

// HighlightClearedEvent is emitted when a highlight session is torn down
type HighlightClearedEvent struct {
	Reason ClearReason
}

func (e HighlightClearedEvent) Type() EventType { return EventHighlightCleared }

// MatchFocusedEvent is emitted when navigation moves the caret to a match
type MatchFocusedEvent struct {
	OldIndex   int
	NewIndex   int
	Occurrence Occurrence
}

func (e MatchFocusedEvent) Type() EventType { return EventMatchFocused }

// OccurrencesSelectedEvent is emitted when every occurrence is turned into a selection
type OccurrencesSelectedEvent struct {
	Count int
}

func (e OccurrencesSelectedEvent) Type() EventType { return EventOccurrencesSelected }

// StatusChangedEvent is emitted when the status text is shown or hidden
type StatusChangedEvent struct {
	Text    string
	Visible bool
}

func (e StatusChangedEvent) Type() EventType { return EventStatusChanged }

// DocumentLoadedEvent is emitted when a document is opened
type DocumentLoadedEvent struct {
	Path  string
	Lines int
}

func (e DocumentLoadedEvent) Type() EventType { return EventDocumentLoaded }

// DocumentChangedEvent is emitted when the open document changed on disk
type DocumentChangedEvent struct {
	Path string
}

func (e DocumentChangedEvent) Type() EventType { return EventDocumentChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
