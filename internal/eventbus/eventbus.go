package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"luminol/internal/domain"
	"luminol/internal/logging"
)

var busLog = logging.ForComponent(logging.CompBus)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventHighlightStarted    = domain.EventHighlightStarted
	EventHighlightCleared    = domain.EventHighlightCleared
	EventMatchFocused        = domain.EventMatchFocused
	EventOccurrencesSelected = domain.EventOccurrencesSelected
	EventStatusChanged       = domain.EventStatusChanged
	EventDocumentLoaded      = domain.EventDocumentLoaded
	EventDocumentChanged     = domain.EventDocumentChanged
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
	EventError               = domain.EventError
)

// Re-export domain event types
type HighlightStartedEvent = domain.HighlightStartedEvent
type HighlightClearedEvent = domain.HighlightClearedEvent
type MatchFocusedEvent = domain.MatchFocusedEvent
type OccurrencesSelectedEvent = domain.OccurrencesSelectedEvent
type StatusChangedEvent = domain.StatusChangedEvent
type DocumentLoadedEvent = domain.DocumentLoadedEvent
type DocumentChangedEvent = domain.DocumentChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete asynchronous implementation of EventBus.
// Events are delivered in publish order; each handler runs on its own goroutine.
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	inflight  sync.WaitGroup
}

// New creates a new event bus
func New() *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *Bus) Publish(event DomainEvent) {
	// Status flips on every keystroke, keep it out of the log
	if event.Type() != EventStatusChanged {
		busLog.Debug("publish", slog.String("event", string(event.Type())))
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		busLog.Warn("channel_full_dropping_event", slog.String("event", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after delivering queued events and waits for running handlers.
// Safe to call multiple times.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
	b.inflight.Wait()
}

// dispatch handles event distribution to subscribers
func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) deliver(event DomainEvent) {
	// Copy under lock so handlers may subscribe or unsubscribe
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.inflight.Add(1)
		go func(h EventHandler, eventType EventType) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					busLog.Error("handler_panic",
						slog.String("event", string(eventType)),
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())))
				}
			}()
			h(event)
		}(s.handler, event.Type())
	}
}

// NullBus is a no-op implementation of EventBus
type NullBus struct{}

func (NullBus) Publish(event DomainEvent) {}
func (NullBus) Subscribe(eventType EventType, handler EventHandler) func() {
	return func() {}
}

// Recorder is a synchronous EventBus that keeps every published event.
// Handlers run inline on Publish.
type Recorder struct {
	mu       sync.Mutex
	events   []DomainEvent
	handlers map[EventType][]EventHandler
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{handlers: make(map[EventType][]EventHandler)}
}

// Publish records the event and runs subscribed handlers
func (r *Recorder) Publish(event DomainEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	handlers := append([]EventHandler(nil), r.handlers[event.Type()]...)
	r.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// Subscribe registers a handler that runs inline
func (r *Recorder) Subscribe(eventType EventType, handler EventHandler) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
	return func() {}
}

// Events returns a copy of every recorded event
func (r *Recorder) Events() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DomainEvent(nil), r.events...)
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(eventType EventType) []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []DomainEvent
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
