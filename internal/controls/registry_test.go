package controls_test

import (
	"testing"

	"github.com/goomento/pagebuilder/internal/controls"
)

func TestRegistryResolveKnownType(t *testing.T) {
	registry := controls.NewDefaultRegistry()

	defs := registry.StyleControls("heading")
	if len(defs) == 0 {
		t.Fatal("expected heading controls")
	}

	var hasColor bool
	for _, def := range defs {
		if def.Name == "color" {
			hasColor = true
			if len(def.Selectors) == 0 {
				t.Fatal("color control must carry selectors")
			}
		}
	}
	if !hasColor {
		t.Fatal("heading must declare a color control")
	}
}

func TestRegistryUnknownTypeYieldsEmpty(t *testing.T) {
	registry := controls.NewDefaultRegistry()

	if defs := registry.StyleControls("cms_block"); len(defs) != 0 {
		t.Fatalf("unknown type must yield empty controls, got %d", len(defs))
	}
	if defaults := registry.DefaultSettings("cms_block"); len(defaults) != 0 {
		t.Fatalf("unknown type must yield empty defaults, got %v", defaults)
	}
}

func TestRegistryCanonicalLookup(t *testing.T) {
	registry := controls.NewRegistry()
	registry.Register("  Custom-Hero  ", controls.Definition{
		Name: "custom-hero",
		Controls: []controls.ControlDef{
			{Name: "headline", Type: controls.TypeText, Default: "Welcome"},
		},
	})

	if _, ok := registry.Resolve("custom-hero"); !ok {
		t.Fatal("expected canonical lookup to succeed")
	}
	if _, ok := registry.Resolve("CUSTOM-HERO"); !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}

	defaults := registry.DefaultSettings("custom-hero")
	if defaults["headline"] != "Welcome" {
		t.Fatalf("expected control default in settings, got %v", defaults)
	}
}

func TestDefinitionDefaultSettingsSkipsNil(t *testing.T) {
	def := controls.Definition{
		Name: "sample",
		Controls: []controls.ControlDef{
			{Name: "with_default", Default: "x"},
			{Name: "without_default"},
		},
	}

	defaults := def.DefaultSettings()
	if _, ok := defaults["without_default"]; ok {
		t.Fatal("nil defaults must not appear in settings")
	}
	if defaults["with_default"] != "x" {
		t.Fatalf("expected default retained, got %v", defaults)
	}
}
