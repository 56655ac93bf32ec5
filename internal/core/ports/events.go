package ports

import "context"

// EventPublisher pushes domain events to the message broker. Publishing is
// best-effort for the user service: a failed publish is logged, not returned
// to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
	Close() error
}
