package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

// ErrAdvancedCacheRequiresEnabledCache ensures advanced cache builds only when cache is enabled.
var ErrAdvancedCacheRequiresEnabledCache = errors.New("pagebuilder config: advanced cache feature requires cache to be enabled")

// ErrCssFeatureRequired indicates inconsistent css configuration.
var ErrCssFeatureRequired = errors.New("pagebuilder config: css feature must be enabled to configure artifacts")

var ErrCssBasePathRequired = errors.New("pagebuilder config: css base path is required when css is enabled")
var ErrCssInlineThresholdInvalid = errors.New("pagebuilder config: css inline threshold must be zero or positive")
var ErrLoggingProviderRequired = errors.New("pagebuilder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagebuilder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagebuilder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagebuilder config: logging format is invalid")
var ErrRevisionRetentionInvalid = errors.New("pagebuilder config: revision retention must be zero or positive")
var ErrBreakpointsInvalid = errors.New("pagebuilder config: breakpoints must be ascending positive widths")

// Config aggregates feature flags and adapter bindings for the page builder
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled     bool
	Storage     StorageConfig
	Cache       CacheConfig
	Retention   RetentionConfig
	Breakpoints BreakpointConfig
	Css         CssConfig
	Features    Features
	Commands    CommandsConfig
	Logging     LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures registry cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RetentionConfig bounds the revision history kept per content.
type RetentionConfig struct {
	// Revisions caps stored snapshots per content. Zero means the default.
	Revisions int
	// CountAutosaves includes autosave snapshots in the retention window.
	CountAutosaves bool
}

// BreakpointConfig captures the responsive widths the style compiler emits
// media queries for. Zero values fall back to the built-in breakpoints.
type BreakpointConfig struct {
	Md int
	Lg int
}

// CssConfig captures artifact storage behaviour.
type CssConfig struct {
	// Root is the filesystem directory artifacts are written under. Empty
	// keeps artifacts in process memory.
	Root            string
	BasePath        string
	InlineThreshold int
	CustomCSS       string
	// Routes feeds the go-urlkit resolver used to build public artifact URLs.
	Routes     *urlkit.Config
	RouteGroup string
	Route      string
	PathParam  string
}

// Features toggles module functionality.
type Features struct {
	Versioning    bool
	Css           bool
	AdvancedCache bool
	Logger        bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled                bool
	AutoRegisterDispatcher bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults: versioning and css on, registry
// cache on with a short TTL, console logging.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Retention: RetentionConfig{},
		Css: CssConfig{
			BasePath:  "pagebuilder/css",
			PathParam: "path",
		},
		Features: Features{
			Versioning: true,
			Css:        true,
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if !cfg.Features.Css {
		if strings.TrimSpace(cfg.Css.CustomCSS) != "" || cfg.Css.Routes != nil {
			return ErrCssFeatureRequired
		}
	}
	if cfg.Features.Css {
		if strings.TrimSpace(cfg.Css.BasePath) == "" {
			return ErrCssBasePathRequired
		}
		if cfg.Css.InlineThreshold < 0 {
			return ErrCssInlineThresholdInvalid
		}
	}
	if cfg.Retention.Revisions < 0 {
		return fmt.Errorf("%w: %d", ErrRevisionRetentionInvalid, cfg.Retention.Revisions)
	}
	if cfg.Breakpoints.Md != 0 || cfg.Breakpoints.Lg != 0 {
		if cfg.Breakpoints.Md <= 0 || cfg.Breakpoints.Lg <= 0 || cfg.Breakpoints.Md >= cfg.Breakpoints.Lg {
			return ErrBreakpointsInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
