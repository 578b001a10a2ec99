package messaging

import "context"

// PublisherInterface defines the contract for event publishing. Handlers
// depend on this rather than the concrete publisher so tests can capture
// events in memory.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

// Ensure Publisher implements PublisherInterface
var _ PublisherInterface = (*Publisher)(nil)
