package ui

import (
	"github.com/fsnotify/fsnotify"

	"luminol/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// fileChangedMsg reports a change to a watched file
type fileChangedMsg struct {
	path string
	kind fileKind
	op   fsnotify.Op
}

// watchErrMsg reports a watcher failure
type watchErrMsg struct {
	err error
}

// clearMessageMsg clears the status-bar message
type clearMessageMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
