// Package crossseed matches a local seeding set against a remote torrent
// catalog using info-hash and file-layout signals.
package crossseed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vmunix/seedgo/pkg/release"
	"github.com/vmunix/seedgo/pkg/torrent"
)

// Entry is one torrent in either the local seeding set or the remote
// catalog, reduced to its identity and file layout.
type Entry struct {
	Hash      string
	Name      string
	TotalSize int64
	Files     []release.FileEntry
}

// EntryFromMetaInfo reduces decoded torrent metadata to a matcher entry.
// Multi-file paths are prefixed with the torrent's root folder, matching
// how torrent clients report them, so layout signatures compare directly
// against a client snapshot.
func EntryFromMetaInfo(mi *torrent.MetaInfo) (Entry, error) {
	hash, err := mi.Info.HexHash()
	if err != nil {
		return Entry{}, fmt.Errorf("hash %s: %w", mi.Info.Name, err)
	}
	files := mi.Info.FileList()
	entries := make([]release.FileEntry, 0, len(files))
	for _, f := range files {
		path := f.Path
		if len(mi.Info.Files) > 0 {
			path = mi.Info.Name + "/" + f.Path
		}
		entries = append(entries, release.FileEntry{RelPath: path, Size: f.Length})
	}
	return Entry{
		Hash:      hash,
		Name:      mi.Info.Name,
		TotalSize: mi.Info.TotalSize(),
		Files:     entries,
	}, nil
}

// Rationale explains why a candidate matched.
type Rationale string

const (
	RationaleExactHash  Rationale = "exact-hash"
	RationaleFileLayout Rationale = "file-layout"
)

// Candidate pairs a local seeding entry with a remote catalog entry.
// Ephemeral; produced per matcher run.
type Candidate struct {
	Local     Entry
	Remote    Entry
	Score     float64
	Rationale Rationale
}

const defaultLayoutScore = 0.8

// Matcher applies the exact-hash and file-layout rules.
type Matcher struct {
	layoutScore float64
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLayoutScore sets the score assigned to file-layout matches.
func WithLayoutScore(s float64) MatcherOption {
	return func(m *Matcher) {
		m.layoutScore = s
	}
}

// NewMatcher creates a Matcher.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{layoutScore: defaultLayoutScore}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match pairs local entries with remote catalog entries. Identical
// info-hashes match exactly at 1.0; otherwise equal file layouts (same
// total size and same multiset of path/length pairs) match heuristically
// at the layout score. The result is deduplicated by hash pair and
// sorted, so permuting either input yields the same candidate set.
func (m *Matcher) Match(local, remote []Entry) []Candidate {
	remote = dedupeByHash(remote)
	local = dedupeByHash(local)

	remoteByHash := make(map[string]Entry, len(remote))
	for _, r := range remote {
		remoteByHash[r.Hash] = r
	}

	var candidates []Candidate
	matched := make(map[string]bool) // local hashes with an exact match

	for _, l := range local {
		if r, ok := remoteByHash[l.Hash]; ok {
			candidates = append(candidates, Candidate{
				Local: l, Remote: r, Score: 1.0, Rationale: RationaleExactHash,
			})
			matched[l.Hash] = true
		}
	}

	// Layout heuristic only for locals with no exact match; equal total
	// size is the cheap gate before the per-file comparison.
	for _, l := range local {
		if matched[l.Hash] {
			continue
		}
		lsig := layoutSignature(l)
		for _, r := range remote {
			if r.Hash == l.Hash || r.TotalSize != l.TotalSize {
				continue
			}
			if layoutSignature(r) != lsig {
				continue
			}
			candidates = append(candidates, Candidate{
				Local: l, Remote: r, Score: m.layoutScore, Rationale: RationaleFileLayout,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Local.Hash != candidates[j].Local.Hash {
			return candidates[i].Local.Hash < candidates[j].Local.Hash
		}
		return candidates[i].Remote.Hash < candidates[j].Remote.Hash
	})
	return candidates
}

func dedupeByHash(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if seen[e.Hash] {
			continue
		}
		seen[e.Hash] = true
		out = append(out, e)
	}
	// Deterministic iteration order regardless of input permutation.
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	return out
}

// layoutSignature is an order-insensitive fingerprint of (path, length)
// pairs.
func layoutSignature(e Entry) string {
	parts := make([]string, 0, len(e.Files))
	for _, f := range e.Files {
		parts = append(parts, fmt.Sprintf("%s\x00%d", f.RelPath, f.Size))
	}
	sort.Strings(parts)
	return strings.Join(parts, "\x01")
}
