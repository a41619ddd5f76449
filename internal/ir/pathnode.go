package ir

import "fmt"

// Command identifies a path-data command independent of its relative flag.
type Command uint8

const (
	CmdMoveTo Command = iota
	CmdLineTo
	CmdHorizontalLineTo
	CmdVerticalLineTo
	CmdCurveTo
	CmdSmoothCurveTo
	CmdQuadTo
	CmdSmoothQuadTo
	CmdArcTo
	CmdClose
)

// Commands lists every command kind.
var Commands = []Command{
	CmdMoveTo, CmdLineTo, CmdHorizontalLineTo, CmdVerticalLineTo, CmdCurveTo,
	CmdSmoothCurveTo, CmdQuadTo, CmdSmoothQuadTo, CmdArcTo, CmdClose,
}

type commandInfo struct {
	name   string
	letter byte // absolute (uppercase) letter
	arity  int
}

var commandTable = [...]commandInfo{
	CmdMoveTo:           {"moveTo", 'M', 2},
	CmdLineTo:           {"lineTo", 'L', 2},
	CmdHorizontalLineTo: {"horizontalLineTo", 'H', 1},
	CmdVerticalLineTo:   {"verticalLineTo", 'V', 1},
	CmdCurveTo:          {"curveTo", 'C', 6},
	CmdSmoothCurveTo:    {"smoothCurveTo", 'S', 4},
	CmdQuadTo:           {"quadTo", 'Q', 4},
	CmdSmoothQuadTo:     {"smoothQuadTo", 'T', 2},
	CmdArcTo:            {"arcTo", 'A', 7},
	CmdClose:            {"close", 'Z', 0},
}

// Arity returns the number of operands one instance of the command takes.
func (c Command) Arity() int {
	return commandTable[c].arity
}

// Letter returns the path-data letter, lowercase when relative.
func (c Command) Letter(relative bool) byte {
	l := commandTable[c].letter
	if relative {
		return l + ('a' - 'A')
	}
	return l
}

// String returns the command name, e.g. "moveTo".
func (c Command) String() string {
	if int(c) >= len(commandTable) {
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
	return commandTable[c].name
}

// CommandForLetter maps a path-data letter to its command and relative flag.
func CommandForLetter(b byte) (Command, bool, bool) {
	relative := b >= 'a' && b <= 'z'
	upper := b
	if relative {
		upper = b - ('a' - 'A')
	}
	for i, info := range commandTable {
		if info.letter == upper {
			return Command(i), relative, true
		}
	}
	return 0, false, false
}

// PathNode is one drawing instruction of a path.
type PathNode interface {
	Command() Command
	IsRelative() bool
	// Args returns the operands in path-data order; arc flags are 0 or 1.
	Args() []float32
	pathNode() // Sealed
}

// MoveTo starts a new sub-path.
type MoveTo struct {
	Relative bool
	X, Y     float32
}

// LineTo draws a straight line.
type LineTo struct {
	Relative bool
	X, Y     float32
}

// HorizontalLineTo draws a horizontal line.
type HorizontalLineTo struct {
	Relative bool
	X        float32
}

// VerticalLineTo draws a vertical line.
type VerticalLineTo struct {
	Relative bool
	Y        float32
}

// CurveTo draws a cubic Bézier curve.
type CurveTo struct {
	Relative bool
	X1, Y1   float32
	X2, Y2   float32
	X3, Y3   float32
}

// SmoothCurveTo draws a cubic Bézier curve whose first control point is
// the reflection of the previous one.
type SmoothCurveTo struct {
	Relative bool
	X1, Y1   float32
	X2, Y2   float32
}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	Relative bool
	X1, Y1   float32
	X2, Y2   float32
}

// SmoothQuadTo draws a quadratic Bézier curve with a reflected control point.
type SmoothQuadTo struct {
	Relative bool
	X, Y     float32
}

// ArcTo draws an elliptical arc.
type ArcTo struct {
	Relative         bool
	RadiusX, RadiusY float32
	Rotation         float32
	LargeArc, Sweep  bool
	X, Y             float32
}

// Close closes the current sub-path.
type Close struct {
	Relative bool
}

func (MoveTo) Command() Command           { return CmdMoveTo }
func (LineTo) Command() Command           { return CmdLineTo }
func (HorizontalLineTo) Command() Command { return CmdHorizontalLineTo }
func (VerticalLineTo) Command() Command   { return CmdVerticalLineTo }
func (CurveTo) Command() Command          { return CmdCurveTo }
func (SmoothCurveTo) Command() Command    { return CmdSmoothCurveTo }
func (QuadTo) Command() Command           { return CmdQuadTo }
func (SmoothQuadTo) Command() Command     { return CmdSmoothQuadTo }
func (ArcTo) Command() Command            { return CmdArcTo }
func (Close) Command() Command            { return CmdClose }

func (n MoveTo) IsRelative() bool           { return n.Relative }
func (n LineTo) IsRelative() bool           { return n.Relative }
func (n HorizontalLineTo) IsRelative() bool { return n.Relative }
func (n VerticalLineTo) IsRelative() bool   { return n.Relative }
func (n CurveTo) IsRelative() bool          { return n.Relative }
func (n SmoothCurveTo) IsRelative() bool    { return n.Relative }
func (n QuadTo) IsRelative() bool           { return n.Relative }
func (n SmoothQuadTo) IsRelative() bool     { return n.Relative }
func (n ArcTo) IsRelative() bool            { return n.Relative }
func (n Close) IsRelative() bool            { return n.Relative }

func (n MoveTo) Args() []float32           { return []float32{n.X, n.Y} }
func (n LineTo) Args() []float32           { return []float32{n.X, n.Y} }
func (n HorizontalLineTo) Args() []float32 { return []float32{n.X} }
func (n VerticalLineTo) Args() []float32   { return []float32{n.Y} }
func (n CurveTo) Args() []float32          { return []float32{n.X1, n.Y1, n.X2, n.Y2, n.X3, n.Y3} }
func (n SmoothCurveTo) Args() []float32    { return []float32{n.X1, n.Y1, n.X2, n.Y2} }
func (n QuadTo) Args() []float32           { return []float32{n.X1, n.Y1, n.X2, n.Y2} }
func (n SmoothQuadTo) Args() []float32     { return []float32{n.X, n.Y} }
func (n Close) Args() []float32            { return nil }

func (n ArcTo) Args() []float32 {
	return []float32{n.RadiusX, n.RadiusY, n.Rotation, flag(n.LargeArc), flag(n.Sweep), n.X, n.Y}
}

func (MoveTo) pathNode()           {}
func (LineTo) pathNode()           {}
func (HorizontalLineTo) pathNode() {}
func (VerticalLineTo) pathNode()   {}
func (CurveTo) pathNode()          {}
func (SmoothCurveTo) pathNode()    {}
func (QuadTo) pathNode()           {}
func (SmoothQuadTo) pathNode()     {}
func (ArcTo) pathNode()            {}
func (Close) pathNode()            {}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// ArityError reports an operand list whose length does not match the command.
type ArityError struct {
	Command Command
	Got     int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s takes %d operands, got %d", e.Command, e.Command.Arity(), e.Got)
}

// NewPathNode builds the node for cmd from exactly cmd.Arity() operands.
// Arc flag operands are true when non-zero.
func NewPathNode(cmd Command, relative bool, args []float32) (PathNode, error) {
	if int(cmd) >= len(commandTable) {
		return nil, fmt.Errorf("unknown command %d", uint8(cmd))
	}
	if len(args) != cmd.Arity() {
		return nil, &ArityError{Command: cmd, Got: len(args)}
	}
	a := args
	switch cmd {
	case CmdMoveTo:
		return MoveTo{Relative: relative, X: a[0], Y: a[1]}, nil
	case CmdLineTo:
		return LineTo{Relative: relative, X: a[0], Y: a[1]}, nil
	case CmdHorizontalLineTo:
		return HorizontalLineTo{Relative: relative, X: a[0]}, nil
	case CmdVerticalLineTo:
		return VerticalLineTo{Relative: relative, Y: a[0]}, nil
	case CmdCurveTo:
		return CurveTo{Relative: relative, X1: a[0], Y1: a[1], X2: a[2], Y2: a[3], X3: a[4], Y3: a[5]}, nil
	case CmdSmoothCurveTo:
		return SmoothCurveTo{Relative: relative, X1: a[0], Y1: a[1], X2: a[2], Y2: a[3]}, nil
	case CmdQuadTo:
		return QuadTo{Relative: relative, X1: a[0], Y1: a[1], X2: a[2], Y2: a[3]}, nil
	case CmdSmoothQuadTo:
		return SmoothQuadTo{Relative: relative, X: a[0], Y: a[1]}, nil
	case CmdArcTo:
		return ArcTo{
			Relative: relative,
			RadiusX:  a[0],
			RadiusY:  a[1],
			Rotation: a[2],
			LargeArc: a[3] != 0,
			Sweep:    a[4] != 0,
			X:        a[5],
			Y:        a[6],
		}, nil
	case CmdClose:
		return Close{Relative: relative}, nil
	}
	panic(fmt.Sprintf("ir: unhandled command %s", cmd))
}
