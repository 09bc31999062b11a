package events

import (
	"fmt"
	"sync"
)

// EventStore is the interface for storing and retrieving hand history.
type EventStore interface {
	Append(event Event) error
	LoadEvents(handID string) ([]Event, error)
}

// InMemoryEventStore is an in-memory implementation of the EventStore interface.
type InMemoryEventStore struct {
	events map[string][]Event
	mutex  sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{
		events: make(map[string][]Event),
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	handID := GetHandID(event)
	if handID == "" {
		return fmt.Errorf("event has no handID")
	}

	s.events[handID] = append(s.events[handID], event)
	return nil
}

// LoadEvents retrieves all events recorded for the given hand.
func (s *InMemoryEventStore) LoadEvents(handID string) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if events, exists := s.events[handID]; exists {
		// Make a copy to avoid potential race conditions
		result := make([]Event, len(events))
		copy(result, events)
		return result, nil
	}

	return []Event{}, nil
}
