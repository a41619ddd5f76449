package compiler

import "fmt"

// StructuralError reports a document that is not a vector drawable: no
// start tag, a root other than <vector>, or malformed XML (Err holds the
// decoder error).
type StructuralError struct {
	Message string
	Line    int
	Err     error
}

func (e *StructuralError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// MissingAttributeError reports a required attribute absent from an element.
type MissingAttributeError struct {
	Element   string
	Attribute string
	Line      int
}

func (e *MissingAttributeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: <%s> is missing required attribute %s", e.Line, e.Element, e.Attribute)
	}
	return fmt.Sprintf("<%s> is missing required attribute %s", e.Element, e.Attribute)
}
