package pathdata

import (
	"strconv"
	"strings"

	"github.com/roach88/vdgen/internal/ir"
)

// Format renders nodes as compact path data, one command letter per node.
// Parsing the result yields the same nodes.
func Format(nodes []ir.PathNode) string {
	var b strings.Builder
	for i, node := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(node.Command().Letter(node.IsRelative()))
		for j, arg := range node.Args() {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(float64(arg), 'f', -1, 32))
		}
	}
	return b.String()
}
