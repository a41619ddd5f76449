package ir

// Icon is the identity record of one conversion request.
type Icon struct {
	Name         string `json:"name"`      // Generated property name, e.g. "ZoomOutMap"
	FileName     string `json:"file_name"` // Source file the icon was read from
	Theme        Theme  `json:"theme"`
	Content      string `json:"-"` // Raw vector drawable XML
	AutoMirrored bool   `json:"auto_mirrored"`
}

// Vector is the root of the parsed icon geometry.
type Vector struct {
	AutoMirrored bool         `json:"auto_mirrored"`
	Nodes        []VectorNode `json:"nodes"`
}

// VectorNode is either a *Group or a *Path.
type VectorNode interface {
	vectorNode() // Sealed - only Group and Path implement it
}

// Group holds the paths declared inside a <group> element.
// Groups are single-level: they never contain other groups.
type Group struct {
	Paths []*Path `json:"paths"`
}

// Path is a single <path> element.
type Path struct {
	StrokeAlpha float32    `json:"stroke_alpha"`
	FillAlpha   float32    `json:"fill_alpha"`
	FillType    FillType   `json:"fill_type"`
	Nodes       []PathNode `json:"nodes"`
}

func (*Group) vectorNode() {}
func (*Path) vectorNode()  {}

// DefaultAlpha is the alpha used when a path does not declare one.
const DefaultAlpha float32 = 1.0

// NewPath returns a path with default alpha values and the NonZero fill rule.
func NewPath(nodes []PathNode) *Path {
	return &Path{
		StrokeAlpha: DefaultAlpha,
		FillAlpha:   DefaultAlpha,
		FillType:    NonZero,
		Nodes:       nodes,
	}
}

// FillType is the fill rule of a path.
type FillType int

const (
	// NonZero is the default fill rule.
	NonZero FillType = iota
	// EvenOdd is selected by android:fillType="evenOdd".
	EvenOdd
)

// String returns the fill rule name as it appears in the builder API.
func (f FillType) String() string {
	if f == EvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

// MarshalText implements encoding.TextMarshaler.
func (f FillType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
