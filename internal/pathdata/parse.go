package pathdata

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/roach88/vdgen/internal/ir"
)

// maxFragment bounds the fragment quoted in a SyntaxError.
const maxFragment = 24

// Parse parses path data into an ordered sequence of path nodes.
//
// The empty string, or one made only of separators, yields no nodes.
func Parse(data string) ([]ir.PathNode, error) {
	s := &scanner{buf: []byte(data)}

	var nodes []ir.PathNode
	s.skipSeparators()
	for !s.done() {
		start := s.pos
		c := s.buf[s.pos]
		cmd, relative, ok := ir.CommandForLetter(c)
		if !ok {
			if isLetter(c) {
				return nil, s.errorAt(start, 1, fmt.Sprintf("unknown command %q", c))
			}
			return nil, s.errorAt(start, s.tokenLen(start), "operands before the first command")
		}
		s.pos++

		args, err := s.operands(cmd)
		if err != nil {
			return nil, err
		}

		arity := cmd.Arity()
		if arity == 0 {
			if len(args) > 0 {
				return nil, s.errorAt(start, s.pos-start, fmt.Sprintf("%s takes no operands, got %d", cmd, len(args)))
			}
			nodes = append(nodes, ir.Close{Relative: relative})
			continue
		}
		if len(args) == 0 || len(args)%arity != 0 {
			return nil, s.errorAt(start, s.pos-start,
				fmt.Sprintf("%s takes a multiple of %d operands, got %d", cmd, arity, len(args)))
		}

		for i := 0; i < len(args); i += arity {
			c := cmd
			if cmd == ir.CmdMoveTo && i > 0 {
				c = ir.CmdLineTo
			}
			node, err := ir.NewPathNode(c, relative, args[i:i+arity])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// ParseNumber parses a complete decimal number, ignoring surrounding
// whitespace. ok is false unless the whole string is one number.
func ParseNumber(text string) (value float32, ok bool) {
	s := &scanner{buf: []byte(text)}
	s.skipWhitespace()
	if s.done() {
		return 0, false
	}
	f, n := s.number()
	if n == 0 {
		return 0, false
	}
	s.pos += n
	s.skipWhitespace()
	if !s.done() {
		return 0, false
	}
	return float32(f), true
}

type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) done() bool {
	return s.pos >= len(s.buf)
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) skipSeparators() {
	for !s.done() && isSeparator(s.buf[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipWhitespace() {
	for !s.done() && isSeparator(s.buf[s.pos]) && s.buf[s.pos] != ',' {
		s.pos++
	}
}

// operands reads every operand that follows a command letter, up to the next
// letter or the end of input.
func (s *scanner) operands(cmd ir.Command) ([]float32, error) {
	var args []float32
	for {
		s.skipSeparators()
		if s.done() || isLetter(s.buf[s.pos]) {
			return args, nil
		}

		if cmd == ir.CmdArcTo {
			if idx := len(args) % 7; idx == 3 || idx == 4 {
				c := s.buf[s.pos]
				if c != '0' && c != '1' {
					return nil, s.errorAt(s.pos, s.tokenLen(s.pos), "arc flag must be 0 or 1")
				}
				args = append(args, float32(c-'0'))
				s.pos++
				continue
			}
		}

		f, n := s.number()
		if n == 0 {
			return nil, s.errorAt(s.pos, s.tokenLen(s.pos), "invalid number")
		}
		args = append(args, float32(f))
		s.pos += n
	}
}

// number scans the longest number prefix at the current position without
// consuming it. A prefix without any digit, such as "-" or ".", is rejected.
func (s *scanner) number() (float64, int) {
	f, n := strconv.ParseFloat(s.buf[s.pos:])
	for _, c := range s.buf[s.pos : s.pos+n] {
		if isDigit(c) {
			return f, n
		}
	}
	return 0, 0
}

// tokenLen returns the length of the run of non-separator bytes at pos,
// always at least one byte.
func (s *scanner) tokenLen(pos int) int {
	end := pos + 1
	for end < len(s.buf) && !isSeparator(s.buf[end]) && !isLetter(s.buf[end]) {
		end++
	}
	return end - pos
}

func (s *scanner) errorAt(offset, length int, reason string) *SyntaxError {
	if length > maxFragment {
		length = maxFragment
	}
	end := min(offset+length, len(s.buf))
	return &SyntaxError{
		Offset:   offset,
		Fragment: string(s.buf[offset:end]),
		Reason:   reason,
	}
}
