package commands

import (
	"context"
	"time"

	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus classifies a command execution outcome.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes one command execution for telemetry callbacks.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is an optional callback invoked once per execution, after the
// outcome is known. Hosts plug metrics emission in here.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs one structured entry per execution with the outcome
// status, duration, and error when present.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{
			"status", string(info.Status),
			"duration_ms", info.Duration.Milliseconds(),
		}
		if info.Error != nil {
			args = append(args, "error", info.Error)
		}
		if info.Status == TelemetryStatusSuccess {
			entry.Info("command.telemetry", args...)
			return
		}
		entry.Error("command.telemetry", args...)
	}
}
