package contentcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/goomento/pagebuilder/internal/commands"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/domain"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

const saveContentMessageType = "pagebuilder.content.save"

// SaveContentCommand requests a save of buildable content, running the full
// versioning pipeline: snapshot decision, revision capture, cache and CSS
// refresh.
type SaveContentCommand struct {
	ContentID   uuid.UUID      `json:"content_id,omitempty"`
	ContentType string         `json:"type"`
	Title       string         `json:"title"`
	Identifier  string         `json:"identifier,omitempty"`
	Status      string         `json:"status"`
	StoreIDs    []int          `json:"store_ids,omitempty"`
	Elements    elements.Nodes `json:"elements"`
	Settings    map[string]any `json:"settings,omitempty"`
	AuthorID    uuid.UUID      `json:"author_id"`
	Label       *string        `json:"label,omitempty"`
}

// Type implements command.Message.
func (SaveContentCommand) Type() string { return saveContentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SaveContentCommand) Validate() error {
	errs := validation.Errors{}
	if m.Title == "" && m.ContentID == uuid.Nil {
		errs["title"] = validation.NewError("pagebuilder.content.save.title_required", "title is required for new content")
	}
	if m.ContentType != "" && !domain.IsCanonicalType(domain.ContentType(m.ContentType)) {
		errs["type"] = validation.NewError("pagebuilder.content.save.type_invalid", "type must be a buildable content type")
	}
	if m.Status != "" && !domain.IsValidStatus(domain.NormalizeStatus(m.Status)) {
		errs["status"] = validation.NewError("pagebuilder.content.save.status_invalid", "status is not recognised")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveContentHandler persists content through the content service using the
// shared command handler foundation.
type SaveContentHandler struct {
	inner *commands.Handler[SaveContentCommand]
}

// NewSaveContentHandler constructs a handler wired to the provided content service.
func NewSaveContentHandler(service content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveContentCommand]) *SaveContentHandler {
	exec := func(ctx context.Context, msg SaveContentCommand) error {
		_, err := service.Save(ctx, content.SaveRequest{
			ContentID:  msg.ContentID,
			Type:       domain.ContentType(msg.ContentType),
			Title:      msg.Title,
			Identifier: msg.Identifier,
			Status:     msg.Status,
			StoreIDs:   msg.StoreIDs,
			Elements:   msg.Elements,
			Settings:   msg.Settings,
			AuthorID:   msg.AuthorID,
			Label:      msg.Label,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[SaveContentCommand]{
		commands.WithLogger[SaveContentCommand](logger),
		commands.WithOperation[SaveContentCommand]("content.save"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveContentHandler{
		inner: commands.NewHandler[SaveContentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveContentCommand].Execute.
func (h *SaveContentHandler) Execute(ctx context.Context, msg SaveContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
