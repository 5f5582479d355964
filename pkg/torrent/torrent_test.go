package torrent_test

import (
	"bytes"
	"crypto/sha1"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seedgo/pkg/bencode"
	"github.com/vmunix/seedgo/pkg/torrent"
)

func pieceHashes(n int) []byte {
	return bytes.Repeat([]byte("01234567890123456789"), n)
}

func singleFileInfo() torrent.Info {
	return torrent.Info{
		Name:        "Show.S01E01.1080p.WEB-DL.x264-GRP.mkv",
		PieceLength: 262144,
		Pieces:      pieceHashes(4),
		Length:      4 * 262144,
	}
}

func TestParse_RoundTrip(t *testing.T) {
	m := &torrent.MetaInfo{
		Announce: "https://tracker.example/announce/abc123",
		Info: torrent.Info{
			Name:        "Movie.2024.2160p.BluRay.x265-GRP",
			PieceLength: 1 << 20,
			Pieces:      pieceHashes(3),
			Files: []torrent.File{
				{Path: "Movie.2024.2160p.BluRay.x265-GRP.mkv", Length: 2<<20 + 100},
				{Path: "Subs/eng.srt", Length: 5000},
			},
			Private: true,
		},
	}

	data, err := m.Encode()
	require.NoError(t, err)

	decoded, err := torrent.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)

	wantHash, err := m.Info.Hash()
	require.NoError(t, err)
	gotHash, err := decoded.Info.Hash()
	require.NoError(t, err)
	assert.Equal(t, wantHash, gotHash, "info-hash must be stable under round-trip")
}

func TestHash_InfoDictOnly(t *testing.T) {
	info := singleFileInfo()
	a := &torrent.MetaInfo{Announce: "https://one.example/announce", Info: info}
	b := &torrent.MetaInfo{
		Announce: "https://two.example/announce",
		Info:     info,
		Extra:    map[string]any{"comment": "different outer dict"},
	}

	ha, err := a.Info.Hash()
	require.NoError(t, err)
	hb, err := b.Info.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "outer-dictionary fields must not affect the info-hash")
}

func TestHash_IgnoresInfoFieldOrder(t *testing.T) {
	// Hand-build two torrents whose info dictionaries were written in
	// different key orders; once decoded they must hash identically.
	info := map[string]any{
		"name":         "x.mkv",
		"piece length": int64(16384),
		"pieces":       string(pieceHashes(1)),
		"length":       int64(100),
		"source":       "pool",
	}
	encode := func(keys []string) []byte {
		var buf bytes.Buffer
		buf.WriteString("d4:infod")
		for _, k := range keys {
			kv, err := bencode.Encode(k)
			require.NoError(t, err)
			vv, err := bencode.Encode(info[k])
			require.NoError(t, err)
			buf.Write(kv)
			buf.Write(vv)
		}
		buf.WriteString("ee")
		return buf.Bytes()
	}

	// Canonical key order vs. a permuted order.
	first, err := torrent.Parse(encode([]string{"length", "name", "piece length", "pieces", "source"}))
	require.NoError(t, err)
	second, err := torrent.Parse(encode([]string{"source", "pieces", "piece length", "name", "length"}))
	require.NoError(t, err)

	h1, err := first.Info.Hash()
	require.NoError(t, err)
	h2, err := second.Info.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, "pool", first.Info.Extra["source"], "extension fields inside info survive decode")
}

func TestHash_PreservesFileAttrsAndPrivateZero(t *testing.T) {
	// Modern v1/hybrid torrents attach BEP-47 attributes per file entry and
	// often write private=0 explicitly. Both must survive decode so the
	// computed info-hash matches the torrent's real one.
	infoDict := map[string]any{
		"name":         "Movie.2024.1080p.BluRay.x264-GRP",
		"piece length": int64(16384),
		"pieces":       string(pieceHashes(1)),
		"files": []any{
			map[string]any{"length": int64(100), "path": []any{"movie.mkv"}, "attr": "p"},
			map[string]any{"length": int64(50), "path": []any{"Subs", "eng.srt"}},
		},
		"private": int64(0),
	}
	infoEnc, err := bencode.Encode(infoDict)
	require.NoError(t, err)
	data, err := bencode.Encode(map[string]any{
		"announce": "https://t.example/announce",
		"info":     infoDict,
	})
	require.NoError(t, err)

	mi, err := torrent.Parse(data)
	require.NoError(t, err)

	want := sha1.Sum(infoEnc)
	got, err := mi.Info.Hash()
	require.NoError(t, err)
	assert.Equal(t, want, got, "info-hash must equal SHA-1 of the original info slice")

	assert.False(t, mi.Info.Private, "private=0 is not the private flag")
	assert.Equal(t, int64(0), mi.Info.Extra["private"])
	assert.Equal(t, map[string]any{"attr": "p"}, mi.Info.Files[0].Extra)

	again, err := mi.Encode()
	require.NoError(t, err)
	assert.Equal(t, data, again, "re-encode must reproduce the original bytes")
}

func TestParse_StrictInfoDict(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"name":         "x.mkv",
			"piece length": int64(16384),
			"pieces":       string(pieceHashes(1)),
			"length":       int64(100),
		}
	}
	tests := []struct {
		name   string
		mutate func(info map[string]any)
	}{
		{"missing name", func(i map[string]any) { delete(i, "name") }},
		{"missing piece length", func(i map[string]any) { delete(i, "piece length") }},
		{"missing pieces", func(i map[string]any) { delete(i, "pieces") }},
		{"truncated pieces", func(i map[string]any) { i["pieces"] = "tooshort" }},
		{"neither length nor files", func(i map[string]any) { delete(i, "length") }},
		{"both length and files", func(i map[string]any) {
			i["files"] = []any{map[string]any{"length": int64(1), "path": []any{"a"}}}
		}},
		{"zero piece length", func(i map[string]any) { i["piece length"] = int64(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := base()
			tt.mutate(info)
			data, err := bencode.Encode(map[string]any{"info": info})
			require.NoError(t, err)

			_, err = torrent.Parse(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, torrent.ErrInvalidInfo,
				"must be a decode error, never a default-substituted value")
		})
	}
}

func TestParse_LenientTopLevel(t *testing.T) {
	m := &torrent.MetaInfo{Announce: "https://t.example/a", Info: singleFileInfo()}
	data, err := m.Encode()
	require.NoError(t, err)

	// Splice in client extension fields at the top level.
	withExtras, err := bencode.Decode(data)
	require.NoError(t, err)
	top := withExtras.(map[string]any)
	top["created by"] = "mkbrr/1.0"
	top["creation date"] = int64(1700000000)
	data, err = bencode.Encode(top)
	require.NoError(t, err)

	decoded, err := torrent.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "mkbrr/1.0", decoded.Extra["created by"])

	// Preserved on re-encode.
	again, err := decoded.Encode()
	require.NoError(t, err)
	reparsed, err := torrent.Parse(again)
	require.NoError(t, err)
	assert.Equal(t, decoded, reparsed)
}

func TestValidate_PieceCount(t *testing.T) {
	info := singleFileInfo()
	require.NoError(t, info.Validate())

	info.Length++ // now needs 5 pieces
	err := info.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, torrent.ErrInvalidInfo)
}

func TestFileList_SingleFileMode(t *testing.T) {
	info := singleFileInfo()
	files := info.FileList()
	require.Len(t, files, 1)
	assert.Equal(t, info.Name, files[0].Path)
	assert.Equal(t, info.Length, files[0].Length)
}

func TestPieceLengthFor_Monotonic(t *testing.T) {
	sizes := []int64{
		1 << 20, 64 << 20, 100 << 20, 700 << 20,
		int64(3.5 * float64(1<<30)), 10 << 30, 100 << 30,
	}
	var prev int64
	for _, size := range sizes {
		piece := torrent.PieceLengthFor(size)
		assert.GreaterOrEqual(t, piece, prev, "piece length must not shrink as size grows")
		assert.Zero(t, piece&(piece-1), "piece length must be a power of two")
		prev = piece
	}
	assert.Equal(t, int64(32<<10), torrent.PieceLengthFor(10<<20))
	assert.Equal(t, int64(2<<20), torrent.PieceLengthFor(int64(3.5*float64(1<<30))))
	assert.Equal(t, int64(16<<20), torrent.PieceLengthFor(500<<30))
}

func TestParse_TrailingGarbage(t *testing.T) {
	m := &torrent.MetaInfo{Info: singleFileInfo()}
	data, err := m.Encode()
	require.NoError(t, err)

	_, err = torrent.Parse(append(data, "junk"...))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "trailing"))
}
