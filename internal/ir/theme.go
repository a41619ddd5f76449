package ir

import (
	"fmt"
	"strings"
)

// Theme is the Material icon theme an icon belongs to.
type Theme int

const (
	Filled Theme = iota
	Outlined
	Rounded
	TwoTone
	Sharp
)

// Themes lists every theme in declaration order.
var Themes = []Theme{Filled, Outlined, Rounded, TwoTone, Sharp}

// AutoMirrored names used for icons that flip in right-to-left layouts.
const (
	AutoMirroredName        = "AutoMirrored"
	AutoMirroredPackageName = "automirrored"
)

var themeNames = map[Theme][2]string{
	Filled:   {"filled", "Filled"},
	Outlined: {"outlined", "Outlined"},
	Rounded:  {"rounded", "Rounded"},
	TwoTone:  {"twotone", "TwoTone"},
	Sharp:    {"sharp", "Sharp"},
}

// PackageName returns the lowercase name used for packages and directories.
func (t Theme) PackageName() string {
	return themeNames[t][0]
}

// ClassName returns the CamelCase name of the theme receiver object.
func (t Theme) ClassName() string {
	return themeNames[t][1]
}

// String implements fmt.Stringer.
func (t Theme) String() string {
	return t.PackageName()
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	if _, ok := themeNames[t]; !ok {
		return nil, fmt.Errorf("invalid theme %d", int(t))
	}
	return []byte(t.PackageName()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	theme, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = theme
	return nil
}

// ParseTheme returns the theme whose package or class name matches s.
func ParseTheme(s string) (Theme, error) {
	s = strings.TrimSpace(s)
	for _, t := range Themes {
		if s == t.PackageName() || s == t.ClassName() {
			return t, nil
		}
	}
	return Filled, fmt.Errorf("no matching theme found for %q", s)
}
