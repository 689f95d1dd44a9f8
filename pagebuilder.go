package pagebuilder

import (
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/controls"
	"github.com/goomento/pagebuilder/internal/css"
	"github.com/goomento/pagebuilder/internal/di"
	"github.com/goomento/pagebuilder/internal/registry"
	"github.com/goomento/pagebuilder/internal/styles"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// ContentService exports the content service contract for consumers of the
// pagebuilder package.
type ContentService = content.Service

// SaveRequest exports the editor save payload.
type SaveRequest = content.SaveRequest

// BuildRequest exports the transient build payload.
type BuildRequest = content.BuildRequest

// Document exports the portable export/import document.
type Document = content.Document

// SourceRegistry exports the library source registry consumed by
// BuildFromSource.
type SourceRegistry = content.SourceRegistry

// StaticSource exports the fixed-document library source provider.
type StaticSource = content.StaticSource

// NewSourceRegistry constructs an empty library source registry.
func NewSourceRegistry() *SourceRegistry {
	return content.NewSourceRegistry()
}

// Option re-exports container options so hosts can override bindings.
type Option = di.Option

// WithLibrarySources installs named starter templates resolvable through
// ContentService.BuildFromSource.
func WithLibrarySources(sources *SourceRegistry) Option {
	return di.WithLibrarySources(sources)
}

// Module is the top level page builder runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a page builder module from the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Revisions returns the revision history manager.
func (m *Module) Revisions() *content.RevisionManager {
	return m.container.RevisionManager()
}

// Registry returns the cache-coherent content registry.
func (m *Module) Registry() *registry.ContentRegistry {
	return m.container.ContentRegistry()
}

// Styles returns the style compiler.
func (m *Module) Styles() *styles.Compiler {
	return m.container.StyleCompiler()
}

// Controls returns the element control registry.
func (m *Module) Controls() *controls.Registry {
	return m.container.ControlRegistry()
}

// Css returns the artifact manager; nil when the css feature is disabled.
func (m *Module) Css() *css.Manager {
	return m.container.CssManager()
}

// Sources returns the library source registry; nil when none was installed.
func (m *Module) Sources() *SourceRegistry {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LibrarySources()
}

// Logger returns the logger provider resolved from configuration.
func (m *Module) Logger() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Close releases resources held by the container, including dispatcher
// subscriptions registered at startup.
func (m *Module) Close() {
	if m == nil || m.container == nil {
		return
	}
	m.container.Close()
}
