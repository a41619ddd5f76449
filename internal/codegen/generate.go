package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/vdgen/internal/ir"
)

// FileExtension is appended to the icon name to form the file name.
const FileExtension = ".kt"

const indentUnit = "    "

// Options control package naming.
type Options struct {
	// PackagePrefix is prepended to the theme package, e.g.
	// "androidx.compose.material.icons". Empty means the theme package alone.
	PackagePrefix string
}

// File is one generated source file.
type File struct {
	Name    string `json:"name"`
	Package string `json:"package"`
	Content string `json:"content"`
}

const (
	importIcons        = "androidx.compose.material.icons.Icons"
	importMaterialIcon = "androidx.compose.material.icons.materialIcon"
	importMaterialPath = "androidx.compose.material.icons.materialPath"
	importPathFillType = "androidx.compose.ui.graphics.PathFillType"
	importImageVector  = "androidx.compose.ui.graphics.vector.ImageVector"
	importGroup        = "androidx.compose.ui.graphics.vector.group"
)

// Generate renders the icon's Vector. The icon is auto-mirrored when either
// the Vector or the icon record says so; auto-mirrored icons live in the
// automirrored package and under the Icons.AutoMirrored receiver.
func Generate(icon ir.Icon, v *ir.Vector, opts Options) File {
	mirrored := v.AutoMirrored || icon.AutoMirrored
	pkg := PackageName(icon.Theme, mirrored, opts.PackagePrefix)

	qualified := icon.Theme.ClassName() + "." + icon.Name
	if mirrored {
		qualified = ir.AutoMirroredName + "." + qualified
	}
	backing := ir.BackingName(icon.Name)

	w := &writer{}
	w.line("package %s", pkg)
	w.blank()
	for _, imp := range imports(v) {
		w.line("import %s", imp)
	}
	w.blank()

	w.line("public val Icons.%s: ImageVector", qualified)
	w.indent()
	w.line("get() {")
	w.indent()
	w.line("if (%s != null) {", backing)
	w.indent()
	w.line("return %s!!", backing)
	w.dedent()
	w.line("}")

	params := fmt.Sprintf("name = %q", qualified)
	if mirrored {
		params += ", autoMirror = true"
	}
	w.line("%s = materialIcon(%s) {", backing, params)
	w.indent()
	for _, node := range v.Nodes {
		writeVectorNode(w, node)
	}
	w.dedent()
	w.line("}")
	w.line("return %s!!", backing)
	w.dedent()
	w.line("}")
	w.dedent()
	w.blank()
	w.line("private var %s: ImageVector? = null", backing)

	return File{
		Name:    icon.Name + FileExtension,
		Package: pkg,
		Content: w.String(),
	}
}

// PackageName returns the Kotlin package for a theme.
func PackageName(theme ir.Theme, mirrored bool, prefix string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if mirrored {
		parts = append(parts, ir.AutoMirroredPackageName)
	}
	parts = append(parts, theme.PackageName())
	return strings.Join(parts, ".")
}

// imports returns the sorted import list the Vector needs.
func imports(v *ir.Vector) []string {
	var hasGroup, hasEvenOdd bool
	visit := func(p *ir.Path) {
		if p.FillType == ir.EvenOdd {
			hasEvenOdd = true
		}
	}
	for _, node := range v.Nodes {
		switch n := node.(type) {
		case *ir.Group:
			hasGroup = true
			for _, p := range n.Paths {
				visit(p)
			}
		case *ir.Path:
			visit(n)
		}
	}

	out := []string{importIcons, importMaterialIcon, importMaterialPath}
	if hasEvenOdd {
		out = append(out, importPathFillType)
	}
	out = append(out, importImageVector)
	if hasGroup {
		out = append(out, importGroup)
	}
	return out
}

func writeVectorNode(w *writer, node ir.VectorNode) {
	switch n := node.(type) {
	case *ir.Group:
		w.line("group {")
		w.indent()
		for _, p := range n.Paths {
			writePath(w, p)
		}
		w.dedent()
		w.line("}")
	case *ir.Path:
		writePath(w, n)
	default:
		panic(fmt.Sprintf("codegen: unhandled vector node %T", node))
	}
}

func writePath(w *writer, p *ir.Path) {
	var params []string
	if p.FillAlpha != ir.DefaultAlpha {
		params = append(params, "fillAlpha = "+formatFloat(p.FillAlpha))
	}
	if p.StrokeAlpha != ir.DefaultAlpha {
		params = append(params, "strokeAlpha = "+formatFloat(p.StrokeAlpha))
	}
	if p.FillType == ir.EvenOdd {
		params = append(params, "pathFillType = PathFillType.EvenOdd")
	}

	if len(params) == 0 {
		w.line("materialPath {")
	} else {
		w.line("materialPath(%s) {", strings.Join(params, ", "))
	}
	w.indent()
	for _, node := range p.Nodes {
		w.line("%s", pathNodeCall(node))
	}
	w.dedent()
	w.line("}")
}

// pathNodeCall renders one path node as a PathBuilder call.
func pathNodeCall(node ir.PathNode) string {
	switch n := node.(type) {
	case ir.MoveTo:
		return call(n, "moveTo", n.X, n.Y)
	case ir.LineTo:
		return call(n, "lineTo", n.X, n.Y)
	case ir.HorizontalLineTo:
		return call(n, "horizontalLineTo", n.X)
	case ir.VerticalLineTo:
		return call(n, "verticalLineTo", n.Y)
	case ir.CurveTo:
		return call(n, "curveTo", n.X1, n.Y1, n.X2, n.Y2, n.X3, n.Y3)
	case ir.SmoothCurveTo:
		return call(n, "reflectiveCurveTo", n.X1, n.Y1, n.X2, n.Y2)
	case ir.QuadTo:
		return call(n, "quadTo", n.X1, n.Y1, n.X2, n.Y2)
	case ir.SmoothQuadTo:
		return call(n, "reflectiveQuadTo", n.X, n.Y)
	case ir.ArcTo:
		return fmt.Sprintf("%s(%s, %s, %s, %t, %t, %s, %s)",
			verb(n, "arcTo"),
			formatFloat(n.RadiusX), formatFloat(n.RadiusY), formatFloat(n.Rotation),
			n.LargeArc, n.Sweep,
			formatFloat(n.X), formatFloat(n.Y))
	case ir.Close:
		// PathBuilder has a single close for both forms.
		return "close()"
	default:
		panic(fmt.Sprintf("codegen: unhandled path node %T", node))
	}
}

func verb(node ir.PathNode, name string) string {
	if node.IsRelative() {
		return name + "Relative"
	}
	return name
}

func call(node ir.PathNode, name string, args ...float32) string {
	formatted := make([]string, len(args))
	for i, a := range args {
		formatted[i] = formatFloat(a)
	}
	return verb(node, name) + "(" + strings.Join(formatted, ", ") + ")"
}

// formatFloat renders a Kotlin Float literal: the shortest decimal that
// round-trips through float32, always with a fraction, suffixed with f.
func formatFloat(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "Float.NaN"
	case math.IsInf(float64(f), 1):
		return "Float.POSITIVE_INFINITY"
	case math.IsInf(float64(f), -1):
		return "Float.NEGATIVE_INFINITY"
	}
	s := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "f"
}
