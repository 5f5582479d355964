package crossseed

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seedgo/pkg/release"
	"github.com/vmunix/seedgo/pkg/torrent"
)

func entry(hash, name string, files ...release.FileEntry) Entry {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return Entry{Hash: hash, Name: name, TotalSize: total, Files: files}
}

func TestEntryFromMetaInfo_MultiFilePathsIncludeRoot(t *testing.T) {
	mi := &torrent.MetaInfo{
		Info: torrent.Info{
			Name:        "Show.S01.WEB",
			PieceLength: 32 * 1024,
			Pieces:      []byte("01234567890123456789"),
			Files: []torrent.File{
				{Path: "Show.S01E01.mkv", Length: 150},
				{Path: "Subs/eng.srt", Length: 50},
			},
		},
	}

	got, err := EntryFromMetaInfo(mi)
	require.NoError(t, err)
	assert.Equal(t, []release.FileEntry{
		{RelPath: "Show.S01.WEB/Show.S01E01.mkv", Size: 150},
		{RelPath: "Show.S01.WEB/Subs/eng.srt", Size: 50},
	}, got.Files, "paths are root-prefixed the way torrent clients report them")
}

func TestEntryFromMetaInfo_SingleFilePathIsBare(t *testing.T) {
	mi := &torrent.MetaInfo{
		Info: torrent.Info{
			Name:        "Heat.1995.mkv",
			PieceLength: 32 * 1024,
			Pieces:      []byte("01234567890123456789"),
			Length:      100,
		},
	}

	got, err := EntryFromMetaInfo(mi)
	require.NoError(t, err)
	assert.Equal(t, []release.FileEntry{{RelPath: "Heat.1995.mkv", Size: 100}}, got.Files)
}

func TestMatcher_ExactHash(t *testing.T) {
	local := []Entry{entry("aaaa", "Heat.1995", release.FileEntry{RelPath: "heat.mkv", Size: 100})}
	remote := []Entry{entry("aaaa", "Heat.1995.Repack", release.FileEntry{RelPath: "heat.mkv", Size: 100})}

	got := NewMatcher().Match(local, remote)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, RationaleExactHash, got[0].Rationale)
}

func TestMatcher_FileLayoutHeuristic(t *testing.T) {
	files := []release.FileEntry{
		{RelPath: "Show.S01E01.mkv", Size: 700},
		{RelPath: "Show.S01E02.mkv", Size: 720},
	}
	local := []Entry{entry("aaaa", "Show.S01.WEB", files...)}
	// Same content re-announced elsewhere: different hash, permuted file order.
	remote := []Entry{entry("bbbb", "Show.S01.WEB.Internal", files[1], files[0])}

	got := NewMatcher().Match(local, remote)
	require.Len(t, got, 1)
	assert.Equal(t, 0.8, got[0].Score)
	assert.Equal(t, RationaleFileLayout, got[0].Rationale)
}

func TestMatcher_LayoutScoreConfigurable(t *testing.T) {
	local := []Entry{entry("aaaa", "x", release.FileEntry{RelPath: "a", Size: 1})}
	remote := []Entry{entry("bbbb", "y", release.FileEntry{RelPath: "a", Size: 1})}

	got := NewMatcher(WithLayoutScore(0.75)).Match(local, remote)
	require.Len(t, got, 1)
	assert.Equal(t, 0.75, got[0].Score)
}

func TestMatcher_DifferingTotalSizeNeverMatches(t *testing.T) {
	local := []Entry{entry("aaaa", "x", release.FileEntry{RelPath: "a.mkv", Size: 100})}
	remote := []Entry{entry("bbbb", "y", release.FileEntry{RelPath: "a.mkv", Size: 101})}

	got := NewMatcher().Match(local, remote)
	assert.Empty(t, got)
	for _, c := range got {
		assert.Equal(t, c.Local.TotalSize, c.Remote.TotalSize)
	}
}

func TestMatcher_SameSizeDifferentLayoutNoMatch(t *testing.T) {
	local := []Entry{entry("aaaa", "x", release.FileEntry{RelPath: "a.mkv", Size: 100})}
	remote := []Entry{entry("bbbb", "y", release.FileEntry{RelPath: "b.mkv", Size: 100})}

	got := NewMatcher().Match(local, remote)
	assert.Empty(t, got)
}

func TestMatcher_ExactMatchSuppressesHeuristic(t *testing.T) {
	files := []release.FileEntry{{RelPath: "a.mkv", Size: 100}}
	local := []Entry{entry("aaaa", "x", files...)}
	remote := []Entry{
		entry("aaaa", "x", files...),
		entry("bbbb", "x-rehash", files...),
	}

	got := NewMatcher().Match(local, remote)
	require.Len(t, got, 1)
	assert.Equal(t, RationaleExactHash, got[0].Rationale)
}

func TestMatcher_OrderIndependent(t *testing.T) {
	var local, remote []Entry
	for _, h := range []string{"a1", "a2", "a3", "a4"} {
		local = append(local, entry(h, "l-"+h, release.FileEntry{RelPath: h + ".mkv", Size: 100}))
	}
	remote = append(remote,
		entry("a2", "r-a2", release.FileEntry{RelPath: "a2.mkv", Size: 100}),
		entry("b1", "r-b1", release.FileEntry{RelPath: "a3.mkv", Size: 100}),
	)

	want := NewMatcher().Match(local, remote)
	require.NotEmpty(t, want)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		lp := append([]Entry(nil), local...)
		rp := append([]Entry(nil), remote...)
		rng.Shuffle(len(lp), func(a, b int) { lp[a], lp[b] = lp[b], lp[a] })
		rng.Shuffle(len(rp), func(a, b int) { rp[a], rp[b] = rp[b], rp[a] })

		assert.Equal(t, want, NewMatcher().Match(lp, rp))
	}
}

func TestMatcher_DedupedByHashPair(t *testing.T) {
	files := []release.FileEntry{{RelPath: "a.mkv", Size: 100}}
	local := []Entry{entry("aaaa", "x", files...), entry("aaaa", "x-dup", files...)}
	remote := []Entry{entry("aaaa", "y", files...), entry("aaaa", "y-dup", files...)}

	got := NewMatcher().Match(local, remote)
	assert.Len(t, got, 1)
}
