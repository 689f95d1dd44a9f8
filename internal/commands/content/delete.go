package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goomento/pagebuilder/internal/commands"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const deleteContentMessageType = "pagebuilder.content.delete"

// DeleteContentCommand removes content together with its revision history and
// derived artifacts.
type DeleteContentCommand struct {
	ContentID uuid.UUID `json:"content_id"`
}

// Type implements command.Message.
func (DeleteContentCommand) Type() string { return deleteContentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContentID == uuid.Nil {
		errs["content_id"] = validation.NewError("pagebuilder.content.delete.content_id_required", "content_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteContentHandler deletes content via the content service.
type DeleteContentHandler struct {
	inner *commands.Handler[DeleteContentCommand]
}

// NewDeleteContentHandler constructs a handler wired to the provided content service.
func NewDeleteContentHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteContentCommand]) *DeleteContentHandler {
	exec := func(ctx context.Context, msg DeleteContentCommand) error {
		return service.Delete(ctx, msg.ContentID)
	}

	handlerOpts := []commands.HandlerOption[DeleteContentCommand]{
		commands.WithLogger[DeleteContentCommand](logger),
		commands.WithOperation[DeleteContentCommand]("content.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteContentHandler{
		inner: commands.NewHandler[DeleteContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteContentCommand].Execute.
func (h *DeleteContentHandler) Execute(ctx context.Context, msg DeleteContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
