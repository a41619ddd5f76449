package ir

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical encodes v as RFC 8785 canonical JSON. Artifact IDs and
// stored warning lists are hashed or compared in this form only.
//
// Accepted values are string, int, int64, bool, []string, []any and
// map[string]any. Strings are NFC normalized, object keys are ordered by
// UTF-16 code units and nothing is HTML escaped. Floats and nil are
// rejected: an ID must not depend on float formatting.
func MarshalCanonical(v any) ([]byte, error) {
	return appendCanonical(nil, v)
}

var errCanonicalNull = errors.New("canonical json: null is not allowed")

func appendCanonical(dst []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, errCanonicalNull
	case string:
		return appendCanonicalString(dst, val), nil
	case int:
		return strconv.AppendInt(dst, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(dst, val, 10), nil
	case bool:
		return strconv.AppendBool(dst, val), nil
	case []string:
		dst = append(dst, '[')
		for i, s := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendCanonicalString(dst, s)
		}
		return append(dst, ']'), nil
	case []any:
		dst = append(dst, '[')
		for i, elem := range val {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendCanonical(dst, elem); err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return append(dst, ']'), nil
	case map[string]any:
		return appendCanonicalObject(dst, val)
	case float32, float64:
		return nil, fmt.Errorf("canonical json: float %v is not allowed", val)
	default:
		return nil, fmt.Errorf("canonical json: cannot encode %T", v)
	}
}

func appendCanonicalObject(dst []byte, obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
	})

	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendCanonicalString(dst, k)
		dst = append(dst, ':')
		var err error
		if dst, err = appendCanonical(dst, obj[k]); err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
	}
	return append(dst, '}'), nil
}

const hexDigits = "0123456789abcdef"

// appendCanonicalString quotes s after NFC normalization. Only the quote,
// the backslash and control characters are escaped.
func appendCanonicalString(dst []byte, s string) []byte {
	s = norm.NFC.String(s)
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
