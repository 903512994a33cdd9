package commands

import (
	"context"

	"dispatch/internal/core/ports"
	"dispatch/internal/realtime"
)

// EventPublisher delivers domain events to connected clients. Handlers call
// it strictly after their transaction has committed; a failed or rolled-back
// command never publishes.
type EventPublisher interface {
	Broadcast(event realtime.Event)
}

// TokenIssuer mints an opaque credential for validated identity claims. The
// JWT adapter provides the production implementation.
type TokenIssuer interface {
	IssueCredential(ctx context.Context, claims ports.Claims) (string, error)
}
