// Package bencode implements the bencode serialization format used by
// torrent metadata. Encoding is canonical: dictionary keys are emitted in
// raw byte order, so any two structurally equal values encode to identical
// bytes.
package bencode

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

// Encode returns the canonical bencoded form of v.
//
// Supported types: int, int64, string, []byte, []any, map[string]any.
// Dictionary keys are sorted by raw byte value.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTo(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case int:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(int64(val), 10))
		buf.WriteByte('e')
	case int64:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(val, 10))
		buf.WriteByte('e')
	case string:
		buf.WriteString(strconv.Itoa(len(val)))
		buf.WriteByte(':')
		buf.WriteString(val)
	case []byte:
		buf.WriteString(strconv.Itoa(len(val)))
		buf.WriteByte(':')
		buf.Write(val)
	case []any:
		buf.WriteByte('l')
		for _, item := range val {
			if err := encodeTo(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('d')
		for _, k := range keys {
			if err := encodeTo(buf, k); err != nil {
				return err
			}
			if err := encodeTo(buf, val[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('e')
	default:
		return fmt.Errorf("bencode: unsupported type %T", v)
	}
	return nil
}
