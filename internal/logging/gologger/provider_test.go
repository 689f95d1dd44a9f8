package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

func TestNewProviderFormats(t *testing.T) {
	for _, format := range []string{"", "json", "console", "pretty"} {
		if _, err := NewProvider(Config{Level: "debug", Format: format}); err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
	}
	if _, err := NewProvider(Config{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestProviderHandsOutNamedLoggers(t *testing.T) {
	p, err := NewProvider(Config{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	logger := p.GetLogger("pagebuilder.styles")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	child := logger.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "pagebuilder.styles"})
	if child == nil {
		t.Fatal("expected WithFields to return a logger")
	}
	child.Debug("adapter.initialised")

	var nilProvider *Provider
	if nilProvider.GetLogger("x") == nil {
		t.Fatal("nil provider must degrade to a no-op logger")
	}
}

func TestAdapterDelegation(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	adapted.Trace("trace", "key", "value")
	adapted.Debug("debug")
	adapted.Info("info")
	adapted.Warn("warn")
	adapted.Error("error")
	adapted.Fatal("fatal")

	want := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	if len(stub.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(stub.calls))
	}
	for i, name := range want {
		if stub.calls[i] != name {
			t.Fatalf("call %d: expected %q, got %q", i, name, stub.calls[i])
		}
	}
}

func TestAdapterClonesFieldsAndPropagatesContext(t *testing.T) {
	stub := &stubLogger{}
	adapted := wrap(stub)

	fields := map[string]any{"entity": "content"}
	if adapted.(interfaces.FieldsLogger).WithFields(fields) == nil {
		t.Fatal("expected WithFields to return a logger")
	}
	fields["entity"] = "revision"
	if stub.fields[0]["entity"] != "content" {
		t.Fatalf("fields must be cloned before delegation, got %v", stub.fields[0]["entity"])
	}

	ctx := context.WithValue(context.Background(), ctxKey{}, "value")
	adapted.WithContext(ctx)
	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}
}

type ctxKey struct{}

type stubLogger struct {
	calls    []string
	fields   []map[string]any
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)
var _ glog.FieldsLogger = (*stubLogger)(nil)

func (s *stubLogger) Trace(string, ...any) { s.calls = append(s.calls, "trace") }
func (s *stubLogger) Debug(string, ...any) { s.calls = append(s.calls, "debug") }
func (s *stubLogger) Info(string, ...any)  { s.calls = append(s.calls, "info") }
func (s *stubLogger) Warn(string, ...any)  { s.calls = append(s.calls, "warn") }
func (s *stubLogger) Error(string, ...any) { s.calls = append(s.calls, "error") }
func (s *stubLogger) Fatal(string, ...any) { s.calls = append(s.calls, "fatal") }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}

func (s *stubLogger) WithFields(fields map[string]any) glog.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	s.fields = append(s.fields, copied)
	return s
}
