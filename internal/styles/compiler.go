package styles

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goomento/pagebuilder/internal/controls"
	"github.com/goomento/pagebuilder/internal/elements"
	"github.com/goomento/pagebuilder/internal/logging"
	"github.com/goomento/pagebuilder/pkg/interfaces"
)

const (
	tokenID      = "{{ID}}"
	tokenWrapper = "{{WRAPPER}}"
	tokenValue   = "{{VALUE}}"
	tokenUnit    = "{{UNIT}}"
	tokenTop     = "{{TOP}}"
	tokenRight   = "{{RIGHT}}"
	tokenBottom  = "{{BOTTOM}}"
	tokenLeft    = "{{LEFT}}"
)

// SelectorContext scopes every emitted selector to one piece of content. The
// wrapper selector is derived from the content's unique identity so a Content
// and its Revisions never share rules.
type SelectorContext struct {
	Wrapper string
}

// NewSelectorContext builds the selector context for a content's unique
// identity.
func NewSelectorContext(uniqueIdentity string) SelectorContext {
	return SelectorContext{
		Wrapper: ".gmt-" + strings.TrimSpace(uniqueIdentity),
	}
}

// Compiler walks an element tree and emits a flat CSS document: one rule
// block per resolved selector template, in pre-order traversal order so the
// cascade lets children override ancestors at equal specificity.
type Compiler struct {
	registry    *controls.Registry
	breakpoints Breakpoints
	logger      interfaces.Logger
}

// CompilerOption configures the compiler at construction time.
type CompilerOption func(*Compiler)

// WithLogger injects the compiler logger.
func WithLogger(logger interfaces.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler constructs a style compiler over the provided element registry
// and breakpoint list.
func NewCompiler(registry *controls.Registry, breakpoints Breakpoints, opts ...CompilerOption) *Compiler {
	compiler := &Compiler{
		registry:    registry,
		breakpoints: breakpoints,
		logger:      logging.NoOp(),
	}
	if len(compiler.breakpoints) == 0 {
		compiler.breakpoints = DefaultBreakpoints()
	}
	for _, opt := range opts {
		opt(compiler)
	}
	return compiler
}

// Compile renders the CSS for one element tree. Unknown element types are
// skipped but their subtrees still compile; a corrupt tree beyond the depth
// guard aborts with elements.ErrTreeTooDeep.
func (c *Compiler) Compile(nodes elements.Nodes, selectorContext SelectorContext) (string, error) {
	var out strings.Builder

	err := nodes.Walk(func(node *elements.Node, _ int) error {
		defs := c.registry.StyleControls(node.Type)
		if len(defs) == 0 {
			if node.Type != "" {
				c.logger.Debug("styles.compile.skip_unknown_type", "element_type", node.Type, "element_id", node.ID)
			}
			return nil
		}

		resolved := elements.MergeSettings(c.registry.DefaultSettings(node.Type), node.Settings)
		for _, def := range defs {
			c.emitControl(&out, node, def, resolved, selectorContext)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("styles: compile: %w", err)
	}

	return out.String(), nil
}

func (c *Compiler) emitControl(out *strings.Builder, node *elements.Node, def controls.ControlDef, resolved map[string]any, selectorContext SelectorContext) {
	if len(def.Selectors) == 0 {
		return
	}

	c.emitValue(out, node, def, resolved[def.Name], selectorContext, "")

	if !def.Responsive {
		return
	}
	for _, breakpoint := range c.breakpoints {
		value, ok := resolved[def.Name+"_"+breakpoint.Name]
		if !ok {
			continue
		}
		c.emitValue(out, node, def, value, selectorContext, breakpoint.Name)
	}
}

func (c *Compiler) emitValue(out *strings.Builder, node *elements.Node, def controls.ControlDef, value any, selectorContext SelectorContext, breakpoint string) {
	substitution, ok := resolveValue(value, def.DefaultUnit)
	if !ok {
		return
	}

	mediaQuery := ""
	if breakpoint != "" {
		query, known := c.breakpoints.MediaQuery(breakpoint)
		if !known {
			return
		}
		mediaQuery = query
	}

	// Selector maps iterate in random order; sort templates so output is
	// deterministic across compiles.
	templates := make([]string, 0, len(def.Selectors))
	for template := range def.Selectors {
		templates = append(templates, template)
	}
	sort.Strings(templates)

	scope := strings.NewReplacer(tokenID, node.ID, tokenWrapper, selectorContext.Wrapper)
	for _, template := range templates {
		declarations := substitution.Replace(def.Selectors[template])
		if strings.TrimSpace(declarations) == "" {
			continue
		}
		selector := scope.Replace(template)

		if mediaQuery != "" {
			fmt.Fprintf(out, "%s {\n%s {\n%s\n}\n}\n", mediaQuery, selector, declarations)
			continue
		}
		fmt.Fprintf(out, "%s {\n%s\n}\n", selector, declarations)
	}
}

// resolveValue normalizes a raw settings value into declaration
// substitutions. Empty values yield ok=false so no rule is emitted.
func resolveValue(value any, defaultUnit string) (*strings.Replacer, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(typed) == "" {
			return nil, false
		}
		return strings.NewReplacer(tokenValue, typed, tokenUnit, defaultUnit), true
	case map[string]any:
		return resolveCompositeValue(typed, defaultUnit)
	default:
		formatted := formatScalar(typed)
		if formatted == "" {
			return nil, false
		}
		return strings.NewReplacer(tokenValue, formatted, tokenUnit, defaultUnit), true
	}
}

func resolveCompositeValue(value map[string]any, defaultUnit string) (*strings.Replacer, bool) {
	unit := defaultUnit
	if raw, ok := value["unit"].(string); ok && strings.TrimSpace(raw) != "" {
		unit = raw
	}

	if size, ok := value["size"]; ok {
		formatted := formatScalar(size)
		if formatted == "" {
			return nil, false
		}
		return strings.NewReplacer(tokenValue, formatted, tokenUnit, unit), true
	}

	top := formatScalar(value["top"])
	right := formatScalar(value["right"])
	bottom := formatScalar(value["bottom"])
	left := formatScalar(value["left"])
	if top == "" && right == "" && bottom == "" && left == "" {
		return nil, false
	}
	return strings.NewReplacer(
		tokenTop, orZero(top),
		tokenRight, orZero(right),
		tokenBottom, orZero(bottom),
		tokenLeft, orZero(left),
		tokenUnit, unit,
	), true
}

func orZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}

func formatScalar(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}
