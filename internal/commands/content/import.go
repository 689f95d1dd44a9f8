package contentcmd

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goomento/pagebuilder/internal/commands"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

const importContentMessageType = "pagebuilder.content.import"

// ImportContentCommand materialises a portable document as new pending content.
type ImportContentCommand struct {
	Document json.RawMessage `json:"document"`
	AuthorID uuid.UUID       `json:"author_id"`
}

// Type implements command.Message.
func (ImportContentCommand) Type() string { return importContentMessageType }

// Validate ensures the command payload is well-formed. Document structure is
// validated against the export schema by the content service.
func (m ImportContentCommand) Validate() error {
	errs := validation.Errors{}
	if len(m.Document) == 0 {
		errs["document"] = validation.NewError("pagebuilder.content.import.document_required", "document payload is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportContentHandler imports documents via the content service.
type ImportContentHandler struct {
	inner *commands.Handler[ImportContentCommand]
}

// NewImportContentHandler constructs a handler wired to the provided content service.
func NewImportContentHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportContentCommand]) *ImportContentHandler {
	exec := func(ctx context.Context, msg ImportContentCommand) error {
		_, err := service.ImportJSON(ctx, msg.Document, msg.AuthorID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportContentCommand]{
		commands.WithLogger[ImportContentCommand](logger),
		commands.WithOperation[ImportContentCommand]("content.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportContentHandler{
		inner: commands.NewHandler[ImportContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportContentCommand].Execute.
func (h *ImportContentHandler) Execute(ctx context.Context, msg ImportContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
