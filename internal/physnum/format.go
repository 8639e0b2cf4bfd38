package physnum

import (
	"fmt"
	"strings"
)

// FormatMode selects how Render lays out a Number.
type FormatMode int

const (
	// FormatPlain: 0.378mm +/- 0.0005mm
	FormatPlain FormatMode = iota
	// FormatInlineMath: $(0.378 \pm 0.0005)mm$
	FormatInlineMath
	// FormatMacro: \physNum{0.378}{0.0005}{mm}
	FormatMacro
)

func (m FormatMode) String() string {
	switch m {
	case FormatInlineMath:
		return "latex"
	case FormatMacro:
		return "macro"
	default:
		return "plain"
	}
}

func ParseFormatMode(s string) (FormatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return FormatPlain, nil
	case "latex", "math", "inline":
		return FormatInlineMath, nil
	case "macro":
		return FormatMacro, nil
	}
	return FormatPlain, fmt.Errorf("physnum: unknown format mode %q", s)
}

// Render formats n for reports. withUnit controls whether the unit symbol is
// written; a Number without a unit renders the same either way.
func (n Number) Render(mode FormatMode, withUnit bool) string {
	u := ""
	if withUnit {
		u = n.unit.Symbol
	}
	switch mode {
	case FormatInlineMath:
		return fmt.Sprintf(`$(%s \pm %s)%s$`, n.value, n.uncertainty, u)
	case FormatMacro:
		return fmt.Sprintf(`\physNum{%s}{%s}{%s}`, n.value, n.uncertainty, u)
	default:
		return fmt.Sprintf("%s%s +/- %s%s", n.value, u, n.uncertainty, u)
	}
}
