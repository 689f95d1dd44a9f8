package css

import (
	"context"
	"strings"
	"time"

	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/internal/styles"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// Artifact storage modes recorded in the settings store.
const (
	ModeFile   = "file"
	ModeInline = "inline"
	ModeEmpty  = "empty"
)

const (
	metaPrefix = "pagebuilder:css:"

	// CustomCSSKey holds site-wide custom CSS appended to the global
	// artifact, always last so it wins the cascade.
	CustomCSSKey = "pagebuilder:css:custom"

	globalIdentity = "pagebuilder-global"

	// DefaultInlineThreshold keeps tiny artifacts in the settings store
	// instead of spending a file (and an HTTP round trip) on them.
	DefaultInlineThreshold = 0
)

// Compiler is the style compilation contract the artifact layer consumes.
type Compiler interface {
	Compile(nodes elements.Nodes, selectorContext styles.SelectorContext) (string, error)
}

// Manager owns derived CSS artifacts: one per content plus a global one.
// Artifact bytes live in a FileStore; freshness metadata lives in the
// settings store so artifacts survive process restarts.
type Manager struct {
	compiler        Compiler
	files           interfaces.FileStore
	settings        interfaces.SettingsStore
	globalSource    GlobalSource
	logger          interfaces.Logger
	now             func() time.Time
	basePath        string
	inlineThreshold int
}

// GlobalSource supplies the site-wide element defaults whose compiled rules
// make up the generated part of the global artifact.
type GlobalSource func(ctx context.Context) (elements.Nodes, error)

var _ content.CssRefresher = (*Manager)(nil)

// Option configures the manager.
type Option func(*Manager)

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock overrides the metadata timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithBasePath sets the directory prefix for artifact files.
func WithBasePath(basePath string) Option {
	return func(m *Manager) {
		m.basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	}
}

// WithGlobalSource sets the provider of site-wide default elements compiled
// into the global artifact.
func WithGlobalSource(source GlobalSource) Option {
	return func(m *Manager) {
		m.globalSource = source
	}
}

// WithInlineThreshold stores artifacts smaller than the given byte size in
// the settings store instead of the file store. Zero disables inlining.
func WithInlineThreshold(threshold int) Option {
	return func(m *Manager) {
		if threshold >= 0 {
			m.inlineThreshold = threshold
		}
	}
}

// NewManager constructs the artifact manager.
func NewManager(compiler Compiler, files interfaces.FileStore, settings interfaces.SettingsStore, opts ...Option) *Manager {
	m := &Manager{
		compiler:        compiler,
		files:           files,
		settings:        settings,
		logger:          logging.NoOp(),
		now:             time.Now,
		basePath:        "pagebuilder/css",
		inlineThreshold: DefaultInlineThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Content returns the CSS for a content aggregate, compiling and persisting
// it if no fresh artifact exists.
func (m *Manager) Content(ctx context.Context, record content.BuildableContent) (string, error) {
	identity := record.UniqueIdentity()

	mode, ok, err := m.settings.Get(ctx, m.metaKey(identity, "mode"))
	if err != nil {
		return "", err
	}
	if ok {
		switch mode {
		case ModeEmpty:
			return "", nil
		case ModeInline:
			css, found, err := m.settings.Get(ctx, m.metaKey(identity, "inline"))
			if err == nil && found {
				return css, nil
			}
		case ModeFile:
			data, err := m.files.Read(ctx, m.pathFor(identity))
			if err == nil {
				return string(data), nil
			}
			m.logger.Warn("css artifact unreadable, recompiling", "identity", identity, "error", err)
		}
	}

	return m.Update(ctx, record)
}

// Update force-recompiles the artifact and rewrites storage and metadata.
func (m *Manager) Update(ctx context.Context, record content.BuildableContent) (string, error) {
	identity := record.UniqueIdentity()

	css, err := m.compiler.Compile(record.GetElements(), styles.NewSelectorContext(identity))
	if err != nil {
		return "", err
	}

	if err := m.persist(ctx, identity, css); err != nil {
		return "", err
	}
	return css, nil
}

// Delete removes the artifact and its metadata.
func (m *Manager) Delete(ctx context.Context, record content.BuildableContent) error {
	return m.drop(ctx, record.UniqueIdentity())
}

// Global returns the global artifact: rules compiled from the site-wide
// defaults, followed by the custom CSS block so it wins the cascade.
func (m *Manager) Global(ctx context.Context) (string, error) {
	mode, ok, err := m.settings.Get(ctx, m.metaKey(globalIdentity, "mode"))
	if err != nil {
		return "", err
	}
	if ok && mode == ModeFile {
		data, err := m.files.Read(ctx, m.pathFor(globalIdentity))
		if err == nil {
			return string(data), nil
		}
	}
	return m.UpdateGlobal(ctx)
}

// UpdateGlobal recompiles the site-wide default elements and appends the
// configured custom CSS after all generated rules.
func (m *Manager) UpdateGlobal(ctx context.Context) (string, error) {
	var generated string
	if m.globalSource != nil {
		nodes, err := m.globalSource(ctx)
		if err != nil {
			return "", err
		}
		generated, err = m.compiler.Compile(nodes, styles.NewSelectorContext(globalIdentity))
		if err != nil {
			return "", err
		}
	}

	custom, _, err := m.settings.Get(ctx, CustomCSSKey)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if generated = strings.TrimSpace(generated); generated != "" {
		out.WriteString(generated)
		out.WriteString("\n")
	}
	if custom = strings.TrimSpace(custom); custom != "" {
		out.WriteString(custom)
		out.WriteString("\n")
	}
	css := out.String()

	if err := m.persist(ctx, globalIdentity, css); err != nil {
		return "", err
	}
	return css, nil
}

// SetCustomCSS stores the site-wide custom CSS and rebuilds the global
// artifact.
func (m *Manager) SetCustomCSS(ctx context.Context, css string) error {
	if err := m.settings.Set(ctx, CustomCSSKey, css); err != nil {
		return err
	}
	_, err := m.UpdateGlobal(ctx)
	return err
}

// URLFor returns the public URL of a content artifact, or "" when the
// artifact is not stored as a file.
func (m *Manager) URLFor(ctx context.Context, record content.BuildableContent) string {
	identity := record.UniqueIdentity()
	mode, ok, err := m.settings.Get(ctx, m.metaKey(identity, "mode"))
	if err != nil || !ok || mode != ModeFile {
		return ""
	}
	return m.files.URLFor(m.pathFor(identity))
}

// Refresh implements content.CssRefresher over the write path.
func (m *Manager) Refresh(ctx context.Context, record *content.Content) error {
	_, err := m.Update(ctx, record)
	return err
}

// Remove implements content.CssRefresher for deletes.
func (m *Manager) Remove(ctx context.Context, record *content.Content) error {
	return m.drop(ctx, record.UniqueIdentity())
}

// persist writes the compiled CSS according to its size: nothing for empty
// output, the settings store under the inline threshold, the file store
// otherwise. Metadata always reflects the final location.
func (m *Manager) persist(ctx context.Context, identity, css string) error {
	switch {
	case css == "":
		if err := m.files.Delete(ctx, m.pathFor(identity)); err != nil {
			m.logger.Debug("no css file to delete", "identity", identity, "error", err)
		}
		if err := m.settings.Delete(ctx, m.metaKey(identity, "inline")); err != nil {
			return err
		}
		return m.writeMeta(ctx, identity, ModeEmpty)
	case m.inlineThreshold > 0 && len(css) < m.inlineThreshold:
		if err := m.files.Delete(ctx, m.pathFor(identity)); err != nil {
			m.logger.Debug("no css file to delete", "identity", identity, "error", err)
		}
		if err := m.settings.Set(ctx, m.metaKey(identity, "inline"), css); err != nil {
			return err
		}
		return m.writeMeta(ctx, identity, ModeInline)
	default:
		if err := m.files.Write(ctx, m.pathFor(identity), []byte(css)); err != nil {
			return err
		}
		if err := m.settings.Delete(ctx, m.metaKey(identity, "inline")); err != nil {
			return err
		}
		return m.writeMeta(ctx, identity, ModeFile)
	}
}

func (m *Manager) drop(ctx context.Context, identity string) error {
	if err := m.files.Delete(ctx, m.pathFor(identity)); err != nil {
		m.logger.Debug("no css file to delete", "identity", identity, "error", err)
	}
	for _, suffix := range []string{"inline", "mode", "updated_at"} {
		if err := m.settings.Delete(ctx, m.metaKey(identity, suffix)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) writeMeta(ctx context.Context, identity, mode string) error {
	if err := m.settings.Set(ctx, m.metaKey(identity, "mode"), mode); err != nil {
		return err
	}
	return m.settings.Set(ctx, m.metaKey(identity, "updated_at"), m.now().UTC().Format(time.RFC3339))
}

func (m *Manager) pathFor(identity string) string {
	if m.basePath == "" {
		return identity + ".css"
	}
	return m.basePath + "/" + identity + ".css"
}

func (m *Manager) metaKey(identity, suffix string) string {
	return metaPrefix + identity + ":" + suffix
}
