package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/roach88/vdgen/internal/ir"
)

const (
	colorWhite       = "@android:color/white"
	colorBlack       = "@android:color/black"
	autoMirroredTrue = `android:autoMirrored="true"`
)

// Preprocess rewrites the white default path colour of exported icon sets
// to black, the usual default on Android.
func Preprocess(content string) string {
	return strings.ReplaceAll(content, colorWhite, colorBlack)
}

// IsAutoMirrored reports whether content carries android:autoMirrored="true"
// anywhere, spelled exactly that way.
func IsAutoMirrored(content string) bool {
	return strings.Contains(content, autoMirroredTrue)
}

// LoadOptions configure LoadIcon.
type LoadOptions struct {
	Theme ir.Theme
	// Name overrides the property name derived from the source name.
	Name string
	// Preprocess applies Preprocess to the content.
	Preprocess bool
}

// LoadIcon reads a source and builds its Icon record.
func LoadIcon(ctx context.Context, p Provider, name string, opts LoadOptions) (ir.Icon, error) {
	content, err := p.ReadContent(ctx, name)
	if err != nil {
		return ir.Icon{}, err
	}
	return NewIcon(name, content, opts), nil
}

// NewIcon builds an Icon from already materialized content.
func NewIcon(name, content string, opts LoadOptions) ir.Icon {
	propName := opts.Name
	if propName == "" {
		propName = ir.PropertyName(name)
	}
	autoMirrored := IsAutoMirrored(content)
	if opts.Preprocess {
		content = Preprocess(content)
	}
	return ir.Icon{
		Name:         propName,
		FileName:     filepath.Base(name),
		Theme:        opts.Theme,
		Content:      content,
		AutoMirrored: autoMirrored,
	}
}

// ThemeFromPath looks for a directory named after a theme package
// ("outlined", "twotone", ...) in path, nearest directory first.
func ThemeFromPath(path string) (ir.Theme, bool) {
	dir := filepath.Dir(filepath.Clean(path))
	for {
		base := filepath.Base(dir)
		for _, t := range ir.Themes {
			if base == t.PackageName() {
				return t, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return 0, false
		}
		dir = parent
	}
}
