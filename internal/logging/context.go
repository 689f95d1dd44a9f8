package logging

import (
	"context"
	"maps"
)

type fieldsKey struct{}

// ContextWithFields annotates the context with structured logging fields.
// Loggers created with WithContext merge them into every entry. Repeated
// calls merge, with the newest values winning.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}

	existing := ContextFields(ctx)
	merged := make(map[string]any, len(existing)+len(fields))
	maps.Copy(merged, existing)
	maps.Copy(merged, fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns a copy of the logging fields carried by the context,
// or nil when there are none. Callers may mutate the returned map freely.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(fieldsKey{}).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}
