package di

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goomento/pagebuilder/internal/adapters/noop"
	"github.com/goomento/pagebuilder/internal/commands"
	contentcmd "github.com/goomento/pagebuilder/internal/commands/content"
	"github.com/goomento/pagebuilder/internal/content"
	"github.com/goomento/pagebuilder/internal/controls"
	"github.com/goomento/pagebuilder/internal/css"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/internal/logging/console"
	"github.com/goomento/pagebuilder/internal/logging/gologger"
	"github.com/goomento/pagebuilder/internal/registry"
	"github.com/goomento/pagebuilder/internal/runtimeconfig"
	"github.com/goomento/pagebuilder/internal/styles"
	"github.com/goomento/pagebuilder/pkg/activity"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Without a bun DB it falls back to
// in-memory repositories, which keeps the module usable in tests and demos.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	auth           interfaces.AuthProvider
	registryCache  interfaces.CacheProvider
	files          interfaces.FileStore
	activityHook   activity.Hook
	exportOut      io.Writer

	sources      *content.SourceRegistry
	globalStyles elements.Nodes

	contentRepo  content.ContentRepository
	revisionRepo content.RevisionRepository
	settingRepo  content.SettingRepository
	transactor   content.Transactor

	routeManager *urlkit.RouteManager

	styleRegistry   *controls.Registry
	styleCompiler   *styles.Compiler
	cssManager      *css.Manager
	revisionManager *content.RevisionManager
	contentSvc      content.Service
	contentRegistry *registry.ContentRegistry

	saveHandler   *contentcmd.SaveContentHandler
	deleteHandler *contentcmd.DeleteContentHandler
	exportHandler *contentcmd.ExportContentHandler
	importHandler *contentcmd.ImportContentHandler

	unsubscribes []func()
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a bun database; repositories switch from memory to SQL.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRegistryCache overrides the cache backing the content registry.
func WithRegistryCache(cache interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.registryCache = cache
	}
}

// WithAuth overrides the default permissive auth provider.
func WithAuth(auth interfaces.AuthProvider) Option {
	return func(c *Container) {
		c.auth = auth
	}
}

// WithFileStore overrides the artifact file store.
func WithFileStore(files interfaces.FileStore) Option {
	return func(c *Container) {
		c.files = files
	}
}

// WithLoggerProvider overrides the logger provider resolved from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithActivityHook forwards content lifecycle events to the given hook.
func WithActivityHook(hook activity.Hook) Option {
	return func(c *Container) {
		c.activityHook = hook
	}
}

// WithGlobalStyles supplies the site-wide default elements compiled into the
// global stylesheet ahead of the custom CSS block.
func WithGlobalStyles(nodes elements.Nodes) Option {
	return func(c *Container) {
		c.globalStyles = nodes.Clone()
	}
}

// WithControlRegistry overrides the element control registry used by the
// style compiler, letting hosts register custom element types.
func WithControlRegistry(reg *controls.Registry) Option {
	return func(c *Container) {
		c.styleRegistry = reg
	}
}

// WithLibrarySources installs named starter templates resolvable through
// Service.BuildFromSource.
func WithLibrarySources(sources *content.SourceRegistry) Option {
	return func(c *Container) {
		c.sources = sources
	}
}

// WithContentService overrides the default content service binding.
func WithContentService(svc content.Service) Option {
	return func(c *Container) {
		c.contentSvc = svc
	}
}

// WithExportOutput redirects command-driven exports; defaults to stdout.
func WithExportOutput(out io.Writer) Option {
	return func(c *Container) {
		c.exportOut = out
	}
}

// lazyInvalidator breaks the service/registry construction cycle: the service
// needs an invalidator at build time, the registry needs the service as its
// read source.
type lazyInvalidator struct {
	delegate content.Invalidator
}

func (l *lazyInvalidator) Invalidate(ctx context.Context, record *content.Content) error {
	if l.delegate == nil {
		return nil
	}
	return l.delegate.Invalidate(ctx, record)
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:       cfg,
		cacheTTL:     cacheTTL,
		auth:         noop.Auth(),
		activityHook: activity.NoOp{},
		exportOut:    os.Stdout,
		contentRepo:  content.NewMemoryContentRepository(),
		revisionRepo: content.NewMemoryRevisionRepository(),
		settingRepo:  content.NewMemorySettingRepository(),
		transactor:   content.NoopTransactor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRegistryCache()
	c.configureRoutes()
	c.configureStyles()
	c.configureCss()
	c.configureContent()
	c.configureCommands()

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
		}
	default:
		min := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &min})
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	// Content and revision rows stay uncached at the repository layer: their
	// writes run on the transaction and would bypass the wrapper's
	// invalidation, and the registry already caches resolved content with
	// explicit eviction. Settings writes always go through the wrapper, so
	// the read-through cache is safe there.
	c.contentRepo = content.NewBunContentRepository(c.bunDB)
	c.revisionRepo = content.NewBunRevisionRepository(c.bunDB)
	if c.Config.Features.AdvancedCache && c.cacheService != nil {
		c.settingRepo = content.NewBunSettingRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	} else {
		c.settingRepo = content.NewBunSettingRepository(c.bunDB)
	}

	c.transactor = content.NewBunTransactor(c.bunDB)
}

func (c *Container) configureRegistryCache() {
	if c.registryCache != nil {
		return
	}
	if !c.Config.Cache.Enabled {
		c.registryCache = noop.Cache()
		return
	}
	c.registryCache = registry.NewMemoryCache()
}

func (c *Container) configureRoutes() {
	if c.Config.Css.Routes == nil {
		return
	}
	c.routeManager = urlkit.NewRouteManager(c.Config.Css.Routes)
}

func (c *Container) configureStyles() {
	if c.styleRegistry == nil {
		c.styleRegistry = controls.NewDefaultRegistry()
	}

	breakpoints := styles.NewBreakpoints(c.Config.Breakpoints.Md, c.Config.Breakpoints.Lg)
	c.styleCompiler = styles.NewCompiler(c.styleRegistry, breakpoints,
		styles.WithLogger(logging.StylesLogger(c.loggerProvider)))
}

func (c *Container) configureCss() {
	if !c.Config.Features.Css {
		return
	}

	if c.files == nil {
		if root := strings.TrimSpace(c.Config.Css.Root); root != "" {
			var resolver css.URLResolver
			if c.routeManager != nil {
				resolver = css.NewURLKitResolver(css.URLKitResolverOptions{
					Manager:   c.routeManager,
					Group:     c.Config.Css.RouteGroup,
					Route:     c.Config.Css.Route,
					PathParam: c.Config.Css.PathParam,
				})
			}
			c.files = css.NewFileSystemStore(root, resolver)
		} else {
			c.files = css.NewMemoryFileStore("")
		}
	}

	cssOpts := []css.Option{
		css.WithBasePath(c.Config.Css.BasePath),
		css.WithInlineThreshold(c.Config.Css.InlineThreshold),
		css.WithLogger(logging.CssLogger(c.loggerProvider)),
	}
	if c.globalStyles != nil {
		defaults := c.globalStyles
		cssOpts = append(cssOpts, css.WithGlobalSource(func(context.Context) (elements.Nodes, error) {
			return defaults.Clone(), nil
		}))
	}

	c.cssManager = css.NewManager(
		c.styleCompiler,
		c.files,
		content.NewSettingsStore(c.settingRepo),
		cssOpts...,
	)

	if custom := strings.TrimSpace(c.Config.Css.CustomCSS); custom != "" {
		if err := c.cssManager.SetCustomCSS(context.Background(), custom); err != nil {
			logging.CssLogger(c.loggerProvider).Warn("seed custom css", "error", err)
		}
	}
}

func (c *Container) configureContent() {
	revisionOpts := []content.RevisionOption{
		content.WithRevisionLogger(logging.RevisionsLogger(c.loggerProvider)),
	}
	if c.Config.Retention.Revisions > 0 {
		revisionOpts = append(revisionOpts, content.WithRetention(c.Config.Retention.Revisions))
	}
	if c.Config.Retention.CountAutosaves {
		revisionOpts = append(revisionOpts, content.WithAutosavesCounted(true))
	}
	c.revisionManager = content.NewRevisionManager(c.revisionRepo, revisionOpts...)

	invalidator := &lazyInvalidator{}

	if c.contentSvc == nil {
		serviceOpts := []content.ServiceOption{
			content.WithLogger(logging.ContentLogger(c.loggerProvider)),
			content.WithTransactor(c.transactor),
			content.WithInvalidator(invalidator),
			content.WithAuth(c.auth),
			content.WithActivityHook(c.activityHook),
			content.WithVersioningEnabled(c.Config.Features.Versioning),
		}
		if c.cssManager != nil {
			serviceOpts = append(serviceOpts, content.WithCssRefresher(c.cssManager))
		}
		if c.sources != nil {
			serviceOpts = append(serviceOpts, content.WithSources(c.sources))
		}
		c.contentSvc = content.NewService(c.contentRepo, c.revisionManager, serviceOpts...)
	}

	c.contentRegistry = registry.New(c.contentSvc, c.registryCache,
		registry.WithTTL(c.cacheTTL),
		registry.WithLogger(logging.RegistryLogger(c.loggerProvider)))

	invalidator.delegate = c.contentRegistry
}

func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled {
		return
	}

	logger := commands.CommandLogger(c.loggerProvider, "content")

	c.saveHandler = contentcmd.NewSaveContentHandler(c.contentSvc, logger)
	c.deleteHandler = contentcmd.NewDeleteContentHandler(c.contentSvc, logger)
	c.exportHandler = contentcmd.NewExportContentHandler(c.contentSvc, contentcmd.JSONWriterSink{Out: c.exportOut}, logger)
	c.importHandler = contentcmd.NewImportContentHandler(c.contentSvc, logger)

	if c.Config.Commands.AutoRegisterDispatcher {
		saveSub := dispatcher.SubscribeCommand(c.saveHandler)
		deleteSub := dispatcher.SubscribeCommand(c.deleteHandler)
		exportSub := dispatcher.SubscribeCommand(c.exportHandler)
		importSub := dispatcher.SubscribeCommand(c.importHandler)
		c.unsubscribes = append(c.unsubscribes,
			saveSub.Unsubscribe,
			deleteSub.Unsubscribe,
			exportSub.Unsubscribe,
			importSub.Unsubscribe,
		)
	}
}

// Close releases dispatcher subscriptions registered by the container.
func (c *Container) Close() {
	for _, unsubscribe := range c.unsubscribes {
		unsubscribe()
	}
	c.unsubscribes = nil
}

// LoggerProvider exposes the resolved logger provider; nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// AuthProvider exposes the configured auth provider.
func (c *Container) AuthProvider() interfaces.AuthProvider {
	return c.auth
}

// ContentRepository exposes the configured content repository.
func (c *Container) ContentRepository() content.ContentRepository {
	return c.contentRepo
}

// RevisionRepository exposes the configured revision repository.
func (c *Container) RevisionRepository() content.RevisionRepository {
	return c.revisionRepo
}

// SettingRepository exposes the configured setting repository.
func (c *Container) SettingRepository() content.SettingRepository {
	return c.settingRepo
}

// LibrarySources exposes the registry of named starter templates; nil when
// none were installed.
func (c *Container) LibrarySources() *content.SourceRegistry {
	return c.sources
}

// ContentService returns the configured content service.
func (c *Container) ContentService() content.Service {
	return c.contentSvc
}

// RevisionManager returns the revision history manager.
func (c *Container) RevisionManager() *content.RevisionManager {
	return c.revisionManager
}

// ContentRegistry returns the cache-coherent content registry.
func (c *Container) ContentRegistry() *registry.ContentRegistry {
	return c.contentRegistry
}

// StyleCompiler returns the configured style compiler.
func (c *Container) StyleCompiler() *styles.Compiler {
	return c.styleCompiler
}

// ControlRegistry returns the element control registry.
func (c *Container) ControlRegistry() *controls.Registry {
	return c.styleRegistry
}

// CssManager returns the artifact manager; nil when the css feature is off.
func (c *Container) CssManager() *css.Manager {
	return c.cssManager
}

// RouteManager exposes the go-urlkit route manager when routes are configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// SaveHandler returns the save command handler; nil unless commands are enabled.
func (c *Container) SaveHandler() *contentcmd.SaveContentHandler {
	return c.saveHandler
}

// DeleteHandler returns the delete command handler; nil unless commands are enabled.
func (c *Container) DeleteHandler() *contentcmd.DeleteContentHandler {
	return c.deleteHandler
}

// ExportHandler returns the export command handler; nil unless commands are enabled.
func (c *Container) ExportHandler() *contentcmd.ExportContentHandler {
	return c.exportHandler
}

// ImportHandler returns the import command handler; nil unless commands are enabled.
func (c *Container) ImportHandler() *contentcmd.ImportContentHandler {
	return c.importHandler
}
