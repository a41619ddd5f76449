package pathdata

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/vdgen/internal/ir"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []ir.PathNode
	}{
		{
			name: "move line close",
			data: "M10,10L20,20Z",
			want: []ir.PathNode{
				ir.MoveTo{X: 10, Y: 10},
				ir.LineTo{X: 20, Y: 20},
				ir.Close{},
			},
		},
		{
			name: "implicit lineTo after relative moveTo",
			data: "m0,0 1,1",
			want: []ir.PathNode{
				ir.MoveTo{Relative: true, X: 0, Y: 0},
				ir.LineTo{Relative: true, X: 1, Y: 1},
			},
		},
		{
			name: "implicit lineTo after absolute moveTo",
			data: "M0 0 1 1 2 2",
			want: []ir.PathNode{
				ir.MoveTo{X: 0, Y: 0},
				ir.LineTo{X: 1, Y: 1},
				ir.LineTo{X: 2, Y: 2},
			},
		},
		{
			name: "arc",
			data: "a1,1,0,0,1,1,1",
			want: []ir.PathNode{
				ir.ArcTo{Relative: true, RadiusX: 1, RadiusY: 1, Rotation: 0, LargeArc: false, Sweep: true, X: 1, Y: 1},
			},
		},
		{
			name: "arc with packed flags",
			data: "A1 1 0 011 1",
			want: []ir.PathNode{
				ir.ArcTo{RadiusX: 1, RadiusY: 1, Rotation: 0, LargeArc: false, Sweep: true, X: 1, Y: 1},
			},
		},
		{
			name: "arc with flags packed against coordinates",
			data: "a2,2 0 1012.5-3",
			want: []ir.PathNode{
				ir.ArcTo{Relative: true, RadiusX: 2, RadiusY: 2, LargeArc: true, Sweep: false, X: 12.5, Y: -3},
			},
		},
		{
			name: "repeated arc",
			data: "a1,1,0,0,1,1,1 1,1,0,1,0,2,2",
			want: []ir.PathNode{
				ir.ArcTo{Relative: true, RadiusX: 1, RadiusY: 1, Sweep: true, X: 1, Y: 1},
				ir.ArcTo{Relative: true, RadiusX: 1, RadiusY: 1, LargeArc: true, X: 2, Y: 2},
			},
		},
		{
			name: "packed decimals",
			data: "M1.5.5",
			want: []ir.PathNode{
				ir.MoveTo{X: 1.5, Y: 0.5},
			},
		},
		{
			name: "packed negatives",
			data: "l1-2-3-4",
			want: []ir.PathNode{
				ir.LineTo{Relative: true, X: 1, Y: -2},
				ir.LineTo{Relative: true, X: -3, Y: -4},
			},
		},
		{
			name: "exponent",
			data: "M1e2,3E-1",
			want: []ir.PathNode{
				ir.MoveTo{X: 100, Y: 0.3},
			},
		},
		{
			name: "horizontal and vertical",
			data: "h5v-5H1V1",
			want: []ir.PathNode{
				ir.HorizontalLineTo{Relative: true, X: 5},
				ir.VerticalLineTo{Relative: true, Y: -5},
				ir.HorizontalLineTo{X: 1},
				ir.VerticalLineTo{Y: 1},
			},
		},
		{
			name: "repeated horizontal",
			data: "H1 2 3",
			want: []ir.PathNode{
				ir.HorizontalLineTo{X: 1},
				ir.HorizontalLineTo{X: 2},
				ir.HorizontalLineTo{X: 3},
			},
		},
		{
			name: "curves",
			data: "C1,2,3,4,5,6 7,8,9,10,11,12s1,2,3,4",
			want: []ir.PathNode{
				ir.CurveTo{X1: 1, Y1: 2, X2: 3, Y2: 4, X3: 5, Y3: 6},
				ir.CurveTo{X1: 7, Y1: 8, X2: 9, Y2: 10, X3: 11, Y3: 12},
				ir.SmoothCurveTo{Relative: true, X1: 1, Y1: 2, X2: 3, Y2: 4},
			},
		},
		{
			name: "quads",
			data: "Q1,2,3,4t5,6",
			want: []ir.PathNode{
				ir.QuadTo{X1: 1, Y1: 2, X2: 3, Y2: 4},
				ir.SmoothQuadTo{Relative: true, X: 5, Y: 6},
			},
		},
		{
			name: "whitespace everywhere",
			data: "\n\tM 1 , 2\r\n L 3\t4 z ",
			want: []ir.PathNode{
				ir.MoveTo{X: 1, Y: 2},
				ir.LineTo{X: 3, Y: 4},
				ir.Close{Relative: true},
			},
		},
		{
			name: "consecutive closes",
			data: "M0,0zZ",
			want: []ir.PathNode{
				ir.MoveTo{},
				ir.Close{Relative: true},
				ir.Close{},
			},
		},
		{
			name: "empty",
			data: "",
			want: nil,
		},
		{
			name: "only separators",
			data: " ,\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		offset   int
		fragment string
		reason   string
	}{
		{"unknown command", "X1,1", 0, "X", "unknown command"},
		{"unknown command later", "M1,1 X1,1", 5, "X", "unknown command"},
		{"operand count", "L1", 0, "L1", "takes a multiple of 2 operands, got 1"},
		{"operand count after repeat", "M1,1 2,2 3", 0, "M1,1 2,2 3", "got 5"},
		{"missing operands", "M", 0, "M", "got 0"},
		{"close with operands", "M1,1z2", 4, "z2", "close takes no operands"},
		{"operands before command", "10,10", 0, "10", "operands before the first command"},
		{"bare dot", "M1,.", 3, ".", "invalid number"},
		{"bare sign", "M1 -", 3, "-", "invalid number"},
		{"bad arc flag", "a1,1,0,2,1,1,1", 7, "2", "arc flag must be 0 or 1"},
		{"bad character", "M1,1#", 4, "#", "invalid number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tt.data)
			require.Error(t, err)
			assert.Nil(t, nodes)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "want *SyntaxError, got %T", err)
			assert.Equal(t, tt.offset, syntaxErr.Offset)
			assert.Equal(t, tt.fragment, syntaxErr.Fragment)
			assert.Contains(t, syntaxErr.Reason, tt.reason)
			assert.Contains(t, err.Error(), "path data:")
		})
	}
}

func TestParseAbsolutePairs(t *testing.T) {
	var data string
	for i := range 20 {
		data += "M" + strconv.Itoa(i) + "," + strconv.Itoa(i) + "L" + strconv.Itoa(i+1) + "," + strconv.Itoa(i+1)
	}

	nodes, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, nodes, 40)
	for i := range 20 {
		assert.Equal(t, ir.MoveTo{X: float32(i), Y: float32(i)}, nodes[2*i])
		assert.Equal(t, ir.LineTo{X: float32(i + 1), Y: float32(i + 1)}, nodes[2*i+1])
	}
}

func TestParseIdempotent(t *testing.T) {
	data := "M12,2C6.48,2 2,6.48 2,12s4.48,10 10,10 10,-4.48 10,-10S17.52,2 12,2zM13,17h-2v-6h2v6z"

	first, err := Parse(data)
	require.NoError(t, err)
	second, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text string
		want float32
		ok   bool
	}{
		{"0.3", 0.3, true},
		{" 1 ", 1, true},
		{"-.5", -0.5, true},
		{"1e-1", 0.1, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.5.5", 0, false},
		{"1,0", 0, false},
		{".", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseNumber(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-6)
			}
		})
	}
}
