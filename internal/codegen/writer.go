package codegen

import (
	"fmt"
	"strings"
)

// writer accumulates indented lines.
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) indent() { w.depth++ }
func (w *writer) dedent() { w.depth-- }

func (w *writer) line(format string, args ...any) {
	w.b.WriteString(strings.Repeat(indentUnit, w.depth))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

func (w *writer) blank() {
	w.b.WriteByte('\n')
}

func (w *writer) String() string {
	return w.b.String()
}
