package ir

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/unicode/norm"
)

// PropertyName derives the generated property name from an icon file name.
//
// Everything from the first dot on is dropped and snake_case or kebab-case is
// converted to PascalCase, so "zoom_out_map.xml" becomes "ZoomOutMap". Names
// starting with a digit are prefixed with an underscore. The result is not
// checked for legality in the target language.
func PropertyName(fileName string) string {
	base := norm.NFC.String(filepath.Base(fileName))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	name := strcase.ToCamel(base)
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsDigit(r) {
		name = "_" + name
	}
	return name
}

// BackingName returns the private backing property name for a property:
// an underscore followed by the name with its first rune lowercased.
func BackingName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "_" + name
	}
	return "_" + string(unicode.ToLower(r)) + name[size:]
}
