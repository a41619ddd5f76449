package compiler

import (
	"strings"

	"github.com/roach88/vdgen/internal/ir"
	"github.com/roach88/vdgen/internal/pathdata"
	"github.com/roach88/vdgen/internal/xmlpull"
)

// Element names.
const (
	ElementVector   = "vector"
	ElementGroup    = "group"
	ElementPath     = "path"
	ElementClipPath = "clip-path"
)

// Attribute names, with the prefix used by every vector drawable.
const (
	AttrAutoMirrored = "android:autoMirrored"
	AttrPathData     = "android:pathData"
	AttrFillAlpha    = "android:fillAlpha"
	AttrStrokeAlpha  = "android:strokeAlpha"
	AttrFillType     = "android:fillType"
)

const fillTypeEvenOdd = "evenOdd"

// CompileIcon parses the XML content of an icon.
func CompileIcon(icon ir.Icon) (*ir.Vector, error) {
	return ParseVector(icon.Content)
}

// ParseVector parses vector drawable XML into a Vector.
func ParseVector(content string) (*ir.Vector, error) {
	p := xmlpull.NewParser(strings.NewReader(content))

	if err := seekToStartTag(p); err != nil {
		return nil, err
	}
	if p.Name() != ElementVector {
		return nil, &StructuralError{
			Message: "root element must be <" + ElementVector + ">, found <" + p.Name() + ">",
			Line:    p.Line(),
		}
	}

	mirrored, _ := p.AttributeValue(AttrAutoMirrored)
	vector := &ir.Vector{AutoMirrored: mirrored == "true"}

	var current *ir.Group
	for !isAtEnd(p) {
		ev, err := p.Next()
		if err != nil {
			return nil, malformed(p, err)
		}
		if ev != xmlpull.StartTag {
			continue
		}

		switch p.Name() {
		case ElementPath:
			path, err := parsePath(p)
			if err != nil {
				return nil, err
			}
			if current != nil {
				current.Paths = append(current.Paths, path)
			} else {
				vector.Nodes = append(vector.Nodes, path)
			}
		case ElementGroup:
			current = &ir.Group{}
			vector.Nodes = append(vector.Nodes, current)
		case ElementClipPath:
			// Clipping is not supported; the element produces no node.
		}
	}

	return vector, nil
}

func seekToStartTag(p *xmlpull.Parser) error {
	for {
		ev, err := p.Next()
		if err != nil {
			return malformed(p, err)
		}
		switch ev {
		case xmlpull.StartTag:
			return nil
		case xmlpull.EndDocument:
			return &StructuralError{Message: "document has no start tag", Line: p.Line()}
		}
	}
}

// isAtEnd reports whether the cursor is on the end of the document or on
// the root element's end tag. Anything after the root is not read.
func isAtEnd(p *xmlpull.Parser) bool {
	switch p.EventType() {
	case xmlpull.EndDocument:
		return true
	case xmlpull.EndTag:
		return p.Depth() <= 1
	}
	return false
}

func malformed(p *xmlpull.Parser, err error) error {
	return &StructuralError{Message: "malformed XML", Line: p.Line(), Err: err}
}

func parsePath(p *xmlpull.Parser) (*ir.Path, error) {
	data, ok := p.AttributeValue(AttrPathData)
	if !ok {
		return nil, &MissingAttributeError{
			Element:   ElementPath,
			Attribute: AttrPathData,
			Line:      p.Line(),
		}
	}

	nodes, err := pathdata.Parse(data)
	if err != nil {
		return nil, err
	}

	path := ir.NewPath(nodes)
	path.FillAlpha = alphaAttr(p, AttrFillAlpha)
	path.StrokeAlpha = alphaAttr(p, AttrStrokeAlpha)
	if ft, _ := p.AttributeValue(AttrFillType); ft == fillTypeEvenOdd {
		path.FillType = ir.EvenOdd
	}
	return path, nil
}

// alphaAttr returns the attribute as a float, or the default alpha when it
// is absent or not a number. The value is not range checked.
func alphaAttr(p *xmlpull.Parser, name string) float32 {
	s, ok := p.AttributeValue(name)
	if !ok {
		return ir.DefaultAlpha
	}
	f, ok := pathdata.ParseNumber(s)
	if !ok {
		return ir.DefaultAlpha
	}
	return f
}
