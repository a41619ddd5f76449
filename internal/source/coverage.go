package source

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vdgen/internal/ir"
)

// CoverageError reports icon sets that do not cover every theme with the
// same icons.
type CoverageError struct {
	// MissingThemes lists themes without any icon.
	MissingThemes []ir.Theme
	// MissingIcons maps a theme to the icon names found in some other theme
	// but not in it.
	MissingIcons map[ir.Theme][]string
}

func (e *CoverageError) Error() string {
	var parts []string
	if len(e.MissingThemes) > 0 {
		names := make([]string, len(e.MissingThemes))
		for i, t := range e.MissingThemes {
			names[i] = t.PackageName()
		}
		parts = append(parts, "missing themes: "+strings.Join(names, ", "))
	}
	for _, t := range ir.Themes {
		if missing := e.MissingIcons[t]; len(missing) > 0 {
			parts = append(parts, fmt.Sprintf("%s lacks %s", t.PackageName(), strings.Join(missing, ", ")))
		}
	}
	return "theme coverage: " + strings.Join(parts, "; ")
}

// CheckThemeCoverage verifies that every theme has icons and that all themes
// hold the same set of icon names.
func CheckThemeCoverage(icons []ir.Icon) error {
	byTheme := make(map[ir.Theme]map[string]bool)
	all := make(map[string]bool)
	for _, icon := range icons {
		if byTheme[icon.Theme] == nil {
			byTheme[icon.Theme] = make(map[string]bool)
		}
		byTheme[icon.Theme][icon.Name] = true
		all[icon.Name] = true
	}

	covErr := &CoverageError{MissingIcons: make(map[ir.Theme][]string)}
	for _, t := range ir.Themes {
		names, ok := byTheme[t]
		if !ok {
			covErr.MissingThemes = append(covErr.MissingThemes, t)
			continue
		}
		for name := range all {
			if !names[name] {
				covErr.MissingIcons[t] = append(covErr.MissingIcons[t], name)
			}
		}
		slices.Sort(covErr.MissingIcons[t])
	}

	if len(covErr.MissingThemes) == 0 && len(covErr.MissingIcons) == 0 {
		return nil
	}
	return covErr
}
