package core

import "context"

// IBroker publishes staff notifications to the message broker.
type IBroker interface {
	PushMessage(ctx context.Context, message any) error
	Close() error
}
