package bencode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seedgo/pkg/bencode"
)

func TestEncode_Canonical(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"integer", int64(42), "i42e"},
		{"negative integer", int64(-7), "i-7e"},
		{"zero", int64(0), "i0e"},
		{"string", "spam", "4:spam"},
		{"empty string", "", "0:"},
		{"bytes", []byte{0x00, 0xff}, "2:\x00\xff"},
		{"list", []any{"a", int64(1)}, "l1:ai1ee"},
		{"empty list", []any{}, "le"},
		{"empty dict", map[string]any{}, "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bencode.Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEncode_DictKeysSortedByRawBytes(t *testing.T) {
	// Insertion order must never leak into the encoding.
	m := map[string]any{
		"zebra":  int64(1),
		"apple":  int64(2),
		"Zebra":  int64(3), // uppercase sorts before lowercase in raw bytes
		"pieces": "xx",
	}
	got, err := bencode.Encode(m)
	require.NoError(t, err)
	assert.Equal(t, "d5:Zebrai3e5:applei2e6:pieces2:xx5:zebrai1ee", string(got))
}

func TestEncode_UnsupportedType(t *testing.T) {
	_, err := bencode.Encode(3.14)
	assert.Error(t, err, "the format has no floating-point values")
}

func TestDecode_RoundTrip(t *testing.T) {
	original := map[string]any{
		"announce": "https://tracker.example/announce",
		"info": map[string]any{
			"name":         "Release.Name",
			"piece length": int64(262144),
			"pieces":       "aaaaaaaaaaaaaaaaaaaa",
			"length":       int64(1000),
		},
		"extra": []any{int64(1), "two"},
	}
	first, err := bencode.Encode(original)
	require.NoError(t, err)

	decoded, err := bencode.Decode(first)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	second, err := bencode.Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty input", ""},
		{"unterminated integer", "i42"},
		{"empty integer", "ie"},
		{"leading zero integer", "i03e"},
		{"negative zero", "i-0e"},
		{"unterminated string", "10:short"},
		{"leading zero length", "01:a"},
		{"unterminated list", "l1:a"},
		{"unterminated dict", "d1:a1:b"},
		{"non-string dict key", "di1e1:ae"},
		{"trailing data", "i1ei2e"},
		{"bare terminator", "e"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bencode.Decode([]byte(tt.in))
			require.Error(t, err)
			var syn *bencode.SyntaxError
			assert.ErrorAs(t, err, &syn)
		})
	}
}

func TestDecode_NestingDepthBounded(t *testing.T) {
	// A blob of nothing but open-list bytes must be rejected before it can
	// exhaust the stack.
	deep := strings.Repeat("l", 100_000) + strings.Repeat("e", 100_000)
	_, err := bencode.Decode([]byte(deep))
	require.Error(t, err)
	var syn *bencode.SyntaxError
	assert.ErrorAs(t, err, &syn)

	// Modest nesting stays decodable.
	ok := strings.Repeat("l", 50) + "i1e" + strings.Repeat("e", 50)
	_, err = bencode.Decode([]byte(ok))
	assert.NoError(t, err)
}

func TestDecode_UnknownKeysAreData(t *testing.T) {
	// Other clients attach extension fields; they decode as plain entries.
	v, err := bencode.Decode([]byte("d8:announce3:url7:comment4:hi!!13:creation datei1700000000ee"))
	require.NoError(t, err)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hi!!", m["comment"])
	assert.Equal(t, int64(1700000000), m["creation date"])
}
