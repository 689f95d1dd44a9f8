package commands

import (
	"strings"

	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

const commandModuleRoot = "pagebuilder.commands"

// CommandLogger returns a module-scoped logger for command handlers. Entries
// carry the component and command_module fields so executions can be traced
// per command set.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, commandModuleRoot+"."+name),
		map[string]any{
			"component":      "command",
			"command_module": name,
		},
	)
}

// EnsureLogger returns a usable logger, defaulting to no-op when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
