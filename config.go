package pagebuilder

import "github.com/goomento/pagebuilder/internal/runtimeconfig"

var (
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrCssFeatureRequired                = runtimeconfig.ErrCssFeatureRequired
	ErrCssBasePathRequired               = runtimeconfig.ErrCssBasePathRequired
	ErrCssInlineThresholdInvalid         = runtimeconfig.ErrCssInlineThresholdInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrRevisionRetentionInvalid          = runtimeconfig.ErrRevisionRetentionInvalid
	ErrBreakpointsInvalid                = runtimeconfig.ErrBreakpointsInvalid
)

type (
	Config           = runtimeconfig.Config
	StorageConfig    = runtimeconfig.StorageConfig
	CacheConfig      = runtimeconfig.CacheConfig
	RetentionConfig  = runtimeconfig.RetentionConfig
	BreakpointConfig = runtimeconfig.BreakpointConfig
	CssConfig        = runtimeconfig.CssConfig
	Features         = runtimeconfig.Features
	CommandsConfig   = runtimeconfig.CommandsConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
