package controls

// ControlType identifies the value shape an editor control produces.
type ControlType string

const (
	TypeText       ControlType = "text"
	TypeColor      ControlType = "color"
	TypeNumber     ControlType = "number"
	TypeSelect     ControlType = "select"
	TypeSlider     ControlType = "slider"
	TypeDimensions ControlType = "dimensions"
)

// ControlDef declares one editable property of an element type: its value
// shape, default, and the CSS selector templates it feeds. Selector keys are
// templates over {{WRAPPER}} and {{ID}}; the mapped declarations substitute
// {{VALUE}}, {{UNIT}} and, for dimensions values, {{TOP}}/{{RIGHT}}/
// {{BOTTOM}}/{{LEFT}}.
type ControlDef struct {
	Name        string
	Type        ControlType
	Default     any
	DefaultUnit string
	// Selectors maps a selector template to a declaration template. A control
	// without selectors carries data only and emits no CSS.
	Selectors map[string]string
	// Responsive controls read per-breakpoint values from settings keyed
	// "<name>_<breakpoint>" and wrap each emitted rule in that breakpoint's
	// media query range.
	Responsive bool
}

// StyleResolvable is the capability an element type exposes to the style
// compiler: its ordered control definitions and the settings defaults those
// controls imply.
type StyleResolvable interface {
	StyleControls() []ControlDef
	DefaultSettings() map[string]any
}

// Definition is the standard StyleResolvable implementation used for
// registered element types.
type Definition struct {
	Name     string
	Controls []ControlDef
}

// StyleControls returns the ordered control definitions.
func (d Definition) StyleControls() []ControlDef {
	return d.Controls
}

// DefaultSettings collects the non-nil control defaults into a settings map.
func (d Definition) DefaultSettings() map[string]any {
	defaults := make(map[string]any, len(d.Controls))
	for _, control := range d.Controls {
		if control.Default != nil {
			defaults[control.Name] = control.Default
		}
	}
	return defaults
}
