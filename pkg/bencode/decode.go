package bencode

import (
	"fmt"
	"strconv"
)

// SyntaxError describes malformed bencode input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

// Decode parses a single bencoded value and requires the input to be fully
// consumed. Integers decode as int64, strings as string, lists as []any and
// dictionaries as map[string]any.
//
// Structural strictness: unterminated values, integers with leading zeros or
// a negative zero, and trailing bytes after the top-level value are all
// rejected. Unrecognized dictionary keys are data, not errors; callers
// decide which keys they require.
func Decode(data []byte) (any, error) {
	d := &decoder{data: data}
	v, err := d.value()
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.data) {
		return nil, &SyntaxError{Offset: d.pos, Msg: "trailing data after value"}
	}
	return v, nil
}

// maxDepth bounds container nesting so pathological input cannot exhaust
// the stack. Real torrents nest a handful of levels.
const maxDepth = 512

type decoder struct {
	data  []byte
	pos   int
	depth int
}

func (d *decoder) errf(format string, args ...any) error {
	return &SyntaxError{Offset: d.pos, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) peek() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, d.errf("unexpected end of input")
	}
	return d.data[d.pos], nil
}

func (d *decoder) value() (any, error) {
	if d.depth >= maxDepth {
		return nil, d.errf("nesting exceeds %d levels", maxDepth)
	}
	d.depth++
	defer func() { d.depth-- }()

	c, err := d.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case c == 'i':
		return d.integer()
	case c == 'l':
		return d.list()
	case c == 'd':
		return d.dict()
	case c >= '0' && c <= '9':
		return d.str()
	default:
		return nil, d.errf("unexpected byte %q", c)
	}
}

func (d *decoder) integer() (int64, error) {
	start := d.pos
	d.pos++ // 'i'
	end := d.pos
	for end < len(d.data) && d.data[end] != 'e' {
		end++
	}
	if end == len(d.data) {
		return 0, &SyntaxError{Offset: start, Msg: "unterminated integer"}
	}
	digits := string(d.data[d.pos:end])
	if digits == "" || digits == "-" {
		return 0, &SyntaxError{Offset: start, Msg: "empty integer"}
	}
	// Canonical form forbids leading zeros and negative zero.
	if digits == "-0" || (len(digits) > 1 && digits[0] == '0') ||
		(len(digits) > 2 && digits[0] == '-' && digits[1] == '0') {
		return 0, &SyntaxError{Offset: start, Msg: "non-canonical integer " + digits}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &SyntaxError{Offset: start, Msg: "invalid integer " + digits}
	}
	d.pos = end + 1
	return n, nil
}

func (d *decoder) str() (string, error) {
	start := d.pos
	end := d.pos
	for end < len(d.data) && d.data[end] != ':' {
		end++
	}
	if end == len(d.data) {
		return "", &SyntaxError{Offset: start, Msg: "unterminated string length"}
	}
	lenStr := string(d.data[start:end])
	if len(lenStr) > 1 && lenStr[0] == '0' {
		return "", &SyntaxError{Offset: start, Msg: "non-canonical string length " + lenStr}
	}
	n, err := strconv.Atoi(lenStr)
	if err != nil || n < 0 {
		return "", &SyntaxError{Offset: start, Msg: "invalid string length " + lenStr}
	}
	d.pos = end + 1
	if d.pos+n > len(d.data) {
		return "", &SyntaxError{Offset: start, Msg: "string length exceeds input"}
	}
	s := string(d.data[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}

func (d *decoder) list() ([]any, error) {
	start := d.pos
	d.pos++ // 'l'
	items := []any{}
	for {
		c, err := d.peek()
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: "unterminated list"}
		}
		if c == 'e' {
			d.pos++
			return items, nil
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (d *decoder) dict() (map[string]any, error) {
	start := d.pos
	d.pos++ // 'd'
	m := map[string]any{}
	for {
		c, err := d.peek()
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: "unterminated dictionary"}
		}
		if c == 'e' {
			d.pos++
			return m, nil
		}
		if c < '0' || c > '9' {
			return nil, d.errf("dictionary key must be a string")
		}
		k, err := d.str()
		if err != nil {
			return nil, err
		}
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
}
