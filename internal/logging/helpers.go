package logging

import (
	"maps"

	"github.com/goomento/pagebuilder/pkg/interfaces"
)

// WithFields attaches structured fields when the logger implements the
// optional FieldsLogger extension; otherwise the logger is returned as-is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}
