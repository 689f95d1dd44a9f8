package contentcmd

import (
	"context"
	"encoding/json"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goomento/pagebuilder/internal/commands"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

const exportContentMessageType = "pagebuilder.content.export"

// ExportSink receives exported content documents.
type ExportSink interface {
	Write(ctx context.Context, doc *content.Document) error
}

// JSONWriterSink serialises documents as indented JSON onto an io.Writer.
type JSONWriterSink struct {
	Out io.Writer
}

// Write implements ExportSink.
func (s JSONWriterSink) Write(_ context.Context, doc *content.Document) error {
	enc := json.NewEncoder(s.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExportContentCommand exports content as a portable document.
type ExportContentCommand struct {
	ContentID uuid.UUID `json:"content_id"`
}

// Type implements command.Message.
func (ExportContentCommand) Type() string { return exportContentMessageType }

// Validate ensures the command payload is well-formed.
func (m ExportContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.ContentID == uuid.Nil {
		errs["content_id"] = validation.NewError("pagebuilder.content.export.content_id_required", "content_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportContentHandler builds the export document and hands it to the sink.
type ExportContentHandler struct {
	service content.Service
	sink    ExportSink
	logger  interfaces.Logger
	timeout time.Duration
}

// ExportHandlerOption customises the export handler.
type ExportHandlerOption func(*ExportContentHandler)

// ExportWithTimeout overrides the default execution timeout.
func ExportWithTimeout(timeout time.Duration) ExportHandlerOption {
	return func(h *ExportContentHandler) {
		h.timeout = timeout
	}
}

// NewExportContentHandler constructs a handler wired to the provided service and sink.
func NewExportContentHandler(service content.Service, sink ExportSink, logger interfaces.Logger, opts ...ExportHandlerOption) *ExportContentHandler {
	handler := &ExportContentHandler{
		service: service,
		sink:    sink,
		logger:  commands.EnsureLogger(logger),
		timeout: commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(handler)
		}
	}
	return handler
}

// Execute satisfies command.Commander[ExportContentCommand].
func (h *ExportContentHandler) Execute(ctx context.Context, msg ExportContentCommand) error {
	if err := commands.WrapValidationError(command.ValidateMessage(msg)); err != nil {
		return err
	}
	ctx = commands.EnsureContext(ctx)
	ctx, cancel := commands.WithCommandTimeout(ctx, h.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return commands.WrapContextError(err)
	}

	doc, err := h.service.Export(ctx, msg.ContentID)
	if err != nil {
		return commands.WrapExecuteError(err)
	}
	if err := h.sink.Write(ctx, doc); err != nil {
		return commands.WrapExecuteError(err)
	}

	logging.WithFields(h.logger, map[string]any{
		"operation":  "content.export",
		"content_id": msg.ContentID.String(),
		"identifier": doc.Identifier,
		"elements":   doc.Elements.Count(),
	}).Info("content.command.export.completed")
	return nil
}

// CLIHandler satisfies command.CLICommand by returning the handler.
func (h *ExportContentHandler) CLIHandler() any {
	return h
}

// CLIOptions describes the CLI metadata for content export.
func (h *ExportContentHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"content", "export"},
		Group:       "content",
		Description: "Export content as a portable JSON document",
	}
}
