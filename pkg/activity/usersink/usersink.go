package usersink

import (
	"context"
	"time"

	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/goomento/pagebuilder/pkg/activity"
	"github.com/google/uuid"
)

// Sink is the go-users activity sink contract.
type Sink interface {
	Log(ctx context.Context, record usertypes.ActivityRecord) error
}

// Hook bridges activity events into a go-users activity sink.
type Hook struct {
	Sink Sink
}

// Notify maps the event to a go-users ActivityRecord and logs it. Events
// without a verb or a sink are skipped silently.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil || event.Verb == "" {
		return nil
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	data := make(map[string]any, len(event.Metadata)+2)
	for key, value := range event.Metadata {
		data[key] = value
	}
	if event.DefinitionCode != "" {
		data["definition_code"] = event.DefinitionCode
	}
	if len(event.Recipients) > 0 {
		data["recipients"] = event.Recipients
	}

	record := usertypes.ActivityRecord{
		Verb:       event.Verb,
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: occurred,
		Data:       data,
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
