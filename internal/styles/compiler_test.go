package styles_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goomento/pagebuilder/internal/controls"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/styles"
)

func newCompiler() *styles.Compiler {
	return styles.NewCompiler(controls.NewDefaultRegistry(), styles.DefaultBreakpoints())
}

func TestCompileEmitsScopedRule(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{ID: "a1", Type: "heading", Settings: map[string]any{"color": "#000"}},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-5"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	want := ".gmt-content-5 .gmt-element-a1 .gmt-heading-title {\ncolor: #000;\n}\n"
	if !strings.Contains(css, want) {
		t.Fatalf("expected rule %q in output:\n%s", want, css)
	}
}

func TestCompileDeterministic(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{
			ID:   "s1",
			Type: "section",
			Settings: map[string]any{
				"background_color": "#fafafa",
				"padding":          map[string]any{"top": 10, "right": 20, "bottom": 10, "left": 20, "unit": "px"},
			},
			Children: elements.Nodes{
				{ID: "b1", Type: "button", Settings: map[string]any{
					"button_text_color": "#fff",
					"background_color":  "#0066cc",
				}},
			},
		},
	}

	first, err := compiler.Compile(tree, styles.NewSelectorContext("content-9"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := compiler.Compile(tree, styles.NewSelectorContext("content-9"))
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		if again != first {
			t.Fatal("identical trees must compile to byte-identical CSS")
		}
	}
}

func TestCompileLocalizedDiff(t *testing.T) {
	compiler := newCompiler()
	base := elements.Nodes{
		{ID: "h1", Type: "heading", Settings: map[string]any{"color": "#111"}},
		{ID: "h2", Type: "heading", Settings: map[string]any{"color": "#222"}},
	}
	changed := base.Clone()
	changed[1].Settings["color"] = "#333"

	cssBase, err := compiler.Compile(base, styles.NewSelectorContext("content-1"))
	if err != nil {
		t.Fatalf("compile base: %v", err)
	}
	cssChanged, err := compiler.Compile(changed, styles.NewSelectorContext("content-1"))
	if err != nil {
		t.Fatalf("compile changed: %v", err)
	}

	if !strings.Contains(cssBase, "#111") || !strings.Contains(cssChanged, "#111") {
		t.Fatal("unchanged element rules must survive")
	}
	if strings.Contains(cssChanged, "#222") {
		t.Fatal("stale rule for changed element must be gone")
	}
	if !strings.Contains(cssChanged, "#333") {
		t.Fatal("changed element must emit its new rule")
	}

	// The diff stays local: stripping h2's rules makes outputs equal.
	stripped := func(css string) string {
		var kept []string
		for _, line := range strings.Split(css, "\n") {
			if strings.Contains(line, "-h2") || strings.Contains(line, "#222") || strings.Contains(line, "#333") {
				continue
			}
			kept = append(kept, line)
		}
		return strings.Join(kept, "\n")
	}
	if stripped(cssBase) != stripped(cssChanged) {
		t.Fatal("diff must be localized to the changed element's rule blocks")
	}
}

func TestCompileEmptyValuesEmitNothing(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{ID: "t1", Type: "text", Settings: map[string]any{"color": "", "content": "hello"}},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-2"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if strings.Contains(css, "-t1") {
		t.Fatalf("empty values must not emit rules, got:\n%s", css)
	}
}

func TestCompileUnknownTypeSkipsButRecurses(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{
			ID:   "x1",
			Type: "legacy_widget",
			Settings: map[string]any{
				"color": "#f00",
			},
			Children: elements.Nodes{
				{ID: "h1", Type: "heading", Settings: map[string]any{"color": "#0f0"}},
			},
		},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-3"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if strings.Contains(css, "#f00") {
		t.Fatal("unknown element type must not emit rules")
	}
	if !strings.Contains(css, "#0f0") {
		t.Fatal("nested valid elements must still compile")
	}
}

func TestCompileResponsiveExpansion(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{ID: "h1", Type: "heading", Settings: map[string]any{
			"font_size":    map[string]any{"size": 32, "unit": "px"},
			"font_size_md": map[string]any{"size": 24, "unit": "px"},
			"font_size_xs": map[string]any{"size": 18, "unit": "px"},
		}},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-4"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if !strings.Contains(css, "font-size: 32px;") {
		t.Fatalf("base rule missing:\n%s", css)
	}
	if !strings.Contains(css, "@media (min-width: 768px) and (max-width: 1024px) {\n.gmt-content-4 .gmt-element-h1 .gmt-heading-title {\nfont-size: 24px;\n}\n}") {
		t.Fatalf("md media rule missing:\n%s", css)
	}
	if !strings.Contains(css, "@media (max-width: 479px)") || !strings.Contains(css, "font-size: 18px;") {
		t.Fatalf("xs media rule missing:\n%s", css)
	}
}

func TestCompileDimensions(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{ID: "b1", Type: "button", Settings: map[string]any{
			"border_radius": map[string]any{"top": 4, "right": 8, "bottom": 4, "left": 8, "unit": "px"},
		}},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-6"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(css, "border-radius: 4px 8px 4px 8px;") {
		t.Fatalf("dimensions rule missing:\n%s", css)
	}
}

func TestCompileCorruptDepthAborts(t *testing.T) {
	compiler := newCompiler()
	root := &elements.Node{ID: "n0", Type: "section"}
	current := root
	for i := 1; i <= elements.MaxDepth; i++ {
		child := &elements.Node{ID: fmt.Sprintf("n%d", i), Type: "section"}
		current.Children = elements.Nodes{child}
		current = child
	}

	_, err := compiler.Compile(elements.Nodes{root}, styles.NewSelectorContext("content-7"))
	if !errors.Is(err, elements.ErrTreeTooDeep) {
		t.Fatalf("expected depth guard error, got %v", err)
	}
}

func TestCompileAppliesControlDefaults(t *testing.T) {
	compiler := newCompiler()
	tree := elements.Nodes{
		{ID: "d1", Type: "divider"},
	}

	css, err := compiler.Compile(tree, styles.NewSelectorContext("content-8"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(css, "border-top-color: #dddddd;") {
		t.Fatalf("control default must emit a rule:\n%s", css)
	}
}
