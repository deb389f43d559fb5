package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"dorkdeck/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventFragmentAddRequested    = domain.EventFragmentAddRequested
	EventFragmentRemoveRequested = domain.EventFragmentRemoveRequested
	EventOrGroupRequested        = domain.EventOrGroupRequested
	EventNotToggleRequested      = domain.EventNotToggleRequested
	EventClearRequested          = domain.EventClearRequested
	EventVariableSetRequested    = domain.EventVariableSetRequested
	EventProfileApplyRequested   = domain.EventProfileApplyRequested
	EventQueryUpdated            = domain.EventQueryUpdated
	EventDuplicateFragment       = domain.EventDuplicateFragment
	EventFragmentNotFound        = domain.EventFragmentNotFound
	EventCatalogLoaded           = domain.EventCatalogLoaded
	EventCatalogSaved            = domain.EventCatalogSaved
	EventCategoryAdded           = domain.EventCategoryAdded
	EventCategoryRemoved         = domain.EventCategoryRemoved
	EventCategoryRenamed         = domain.EventCategoryRenamed
	EventDorkAdded               = domain.EventDorkAdded
	EventDorkRemoved             = domain.EventDorkRemoved
	EventDorkRenamed             = domain.EventDorkRenamed
	EventDorksMoved              = domain.EventDorksMoved
	EventProfileSaved            = domain.EventProfileSaved
	EventProfileDeleted          = domain.EventProfileDeleted
	EventError                   = domain.EventError
)

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// subscription wraps a handler so unsubscribing can match it by
// identity regardless of how the handler list has shifted
type subscription struct {
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]*subscription
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]*subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// QueryUpdated fires on every keystroke-driven change, don't log it
	if event.Type() != EventQueryUpdated {
		log.Printf("EventBus: publishing %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{handler: handler}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s == sub {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			subsCopy := make([]*subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, sub := range subsCopy {
				func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(sub.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}
