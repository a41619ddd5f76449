package pathdata

import "fmt"

// SyntaxError reports malformed path data. Offset is the byte offset of the
// offending fragment within the input.
type SyntaxError struct {
	Offset   int
	Fragment string
	Reason   string
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("path data: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("path data: %s at offset %d: %q", e.Reason, e.Offset, e.Fragment)
}
