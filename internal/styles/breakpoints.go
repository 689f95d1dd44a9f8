package styles

import "fmt"

// Breakpoint names a minimum pixel threshold for responsive rules.
type Breakpoint struct {
	Name string
	Min  int
}

// Breakpoints is the ordered threshold list the compiler expands responsive
// controls against. Order must be ascending by Min.
type Breakpoints []Breakpoint

// Default thresholds. Md and Lg can be overridden via configuration; the
// rest are fixed.
const (
	DefaultXS  = 0
	DefaultSM  = 480
	DefaultMD  = 768
	DefaultLG  = 1025
	DefaultXL  = 1440
	DefaultXXL = 1600
)

// DefaultBreakpoints returns the stock ordered breakpoint list.
func DefaultBreakpoints() Breakpoints {
	return NewBreakpoints(0, 0)
}

// NewBreakpoints returns the ordered breakpoint list with optional md/lg
// overrides; zero or negative overrides keep the defaults.
func NewBreakpoints(mdOverride, lgOverride int) Breakpoints {
	md := DefaultMD
	if mdOverride > 0 {
		md = mdOverride
	}
	lg := DefaultLG
	if lgOverride > 0 {
		lg = lgOverride
	}
	return Breakpoints{
		{Name: "xs", Min: DefaultXS},
		{Name: "sm", Min: DefaultSM},
		{Name: "md", Min: md},
		{Name: "lg", Min: lg},
		{Name: "xl", Min: DefaultXL},
		{Name: "xxl", Min: DefaultXXL},
	}
}

// MediaQuery renders the media-query range for the named breakpoint: from
// its own threshold up to one pixel below the next. The first breakpoint has
// no lower bound and the last no upper bound.
func (b Breakpoints) MediaQuery(name string) (string, bool) {
	for i, bp := range b {
		if bp.Name != name {
			continue
		}
		hasMin := bp.Min > 0
		hasMax := i+1 < len(b)
		switch {
		case hasMin && hasMax:
			return fmt.Sprintf("@media (min-width: %dpx) and (max-width: %dpx)", bp.Min, b[i+1].Min-1), true
		case hasMin:
			return fmt.Sprintf("@media (min-width: %dpx)", bp.Min), true
		case hasMax:
			return fmt.Sprintf("@media (max-width: %dpx)", b[i+1].Min-1), true
		default:
			return "", true
		}
	}
	return "", false
}

// Names returns the ordered breakpoint names.
func (b Breakpoints) Names() []string {
	names := make([]string, 0, len(b))
	for _, bp := range b {
		names = append(names, bp.Name)
	}
	return names
}
