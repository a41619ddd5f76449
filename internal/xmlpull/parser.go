// Package xmlpull provides a pull-style cursor over an XML document.
//
// The cursor reports start tags, end tags and the document boundaries and
// skips everything else. Names keep their namespace prefix exactly as written
// ("android:pathData"), which is how vector drawables address attributes.
package xmlpull

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// EventType is the kind of the current event.
type EventType int

const (
	StartDocument EventType = iota
	StartTag
	EndTag
	EndDocument
)

func (e EventType) String() string {
	switch e {
	case StartDocument:
		return "START_DOCUMENT"
	case StartTag:
		return "START_TAG"
	case EndTag:
		return "END_TAG"
	case EndDocument:
		return "END_DOCUMENT"
	default:
		return fmt.Sprintf("EventType(%d)", int(e))
	}
}

// Parser is a pull cursor. The zero value is not usable; call NewParser.
type Parser struct {
	dec   *xml.Decoder
	event EventType
	name  string
	attrs []xml.Attr
	depth int
	open  []string
}

// NewParser returns a cursor positioned on StartDocument. Documents declaring
// a non-UTF-8 encoding are transcoded.
func NewParser(r io.Reader) *Parser {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	return &Parser{dec: dec, event: StartDocument}
}

// Next advances to the next start tag, end tag or the end of the document.
// Self-closing elements produce a StartTag followed by an EndTag. Once the
// cursor reaches EndDocument it stays there.
func (p *Parser) Next() (EventType, error) {
	if p.event == EndDocument {
		return EndDocument, nil
	}
	if p.event == EndTag {
		p.open = p.open[:len(p.open)-1]
	}

	for {
		tok, err := p.dec.RawToken()
		if errors.Is(err, io.EOF) {
			if len(p.open) > 0 {
				return p.event, p.syntaxError(fmt.Sprintf("unexpected end of document: <%s> is not closed", p.open[len(p.open)-1]))
			}
			p.set(EndDocument, "", nil)
			p.depth = 0
			return p.event, nil
		}
		if err != nil {
			return p.event, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualifiedName(t.Name)
			p.open = append(p.open, name)
			p.set(StartTag, name, t.Attr)
			p.depth = len(p.open)
			return p.event, nil
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(p.open) == 0 {
				return p.event, p.syntaxError(fmt.Sprintf("unexpected end element </%s>", name))
			}
			if top := p.open[len(p.open)-1]; top != name {
				return p.event, p.syntaxError(fmt.Sprintf("element <%s> closed by </%s>", top, name))
			}
			p.set(EndTag, name, nil)
			p.depth = len(p.open)
			return p.event, nil
		}
	}
}

func (p *Parser) set(event EventType, name string, attrs []xml.Attr) {
	p.event = event
	p.name = name
	p.attrs = attrs
}

func (p *Parser) syntaxError(msg string) error {
	return &xml.SyntaxError{Msg: msg, Line: p.Line()}
}

// EventType returns the current event.
func (p *Parser) EventType() EventType {
	return p.event
}

// Name returns the prefixed name of the current tag, or "" outside tags.
func (p *Parser) Name() string {
	return p.name
}

// Depth is 0 outside the root element and 1 on the root's own start and end
// tags.
func (p *Parser) Depth() int {
	return p.depth
}

// Line returns the line the decoder has reached.
func (p *Parser) Line() int {
	line, _ := p.dec.InputPos()
	return line
}

// AttributeValue looks up an attribute of the current start tag by its
// prefixed name.
func (p *Parser) AttributeValue(qname string) (string, bool) {
	for _, a := range p.attrs {
		if qualifiedName(a.Name) == qname {
			return a.Value, true
		}
	}
	return "", false
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
