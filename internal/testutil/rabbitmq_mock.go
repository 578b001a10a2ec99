package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"
)

// PublishedEvent represents an event captured by the mock publisher
type PublishedEvent struct {
	RoutingKey string
	EventData  interface{}
	Timestamp  time.Time
	RawJSON    []byte
}

// MockPublisher captures published events in memory instead of talking
// to RabbitMQ.
type MockPublisher struct {
	mu     sync.RWMutex
	events []PublishedEvent
}

// NewMockPublisher creates a new mock event publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{events: make([]PublishedEvent, 0)}
}

// Publish stores an event in memory (no real broker call)
func (m *MockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(eventData)
	if err != nil {
		return err
	}

	m.events = append(m.events, PublishedEvent{
		RoutingKey: routingKey,
		EventData:  eventData,
		Timestamp:  time.Now(),
		RawJSON:    jsonData,
	})
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockPublisher) Close() error {
	return nil
}

// EventsByKey returns all captured events with the given routing key
func (m *MockPublisher) EventsByKey(routingKey string) []PublishedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var filtered []PublishedEvent
	for _, e := range m.events {
		if e.RoutingKey == routingKey {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// AssertEventPublished asserts that at least one event with the given
// routing key was captured
func (m *MockPublisher) AssertEventPublished(t *testing.T, routingKey string) {
	t.Helper()

	if len(m.EventsByKey(routingKey)) == 0 {
		t.Errorf("Expected event with routing key '%s' to be published, but found none", routingKey)
	}
}
