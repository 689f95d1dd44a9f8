package activity

import (
	"context"
	"time"
)

// Event is a domain activity notification emitted after a mutation commits.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives activity events. Implementations must be safe to call after
// the originating transaction has committed and must not fail the caller.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// NoOp discards all events.
type NoOp struct{}

func (NoOp) Notify(context.Context, Event) error { return nil }

// Multi fans an event out to several hooks, returning the first error.
type Multi []Hook

func (m Multi) Notify(ctx context.Context, event Event) error {
	for _, hook := range m {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
