package upload

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vmunix/seedgo/internal/identify"
	"github.com/vmunix/seedgo/pkg/release"
	"github.com/vmunix/seedgo/pkg/torrent"
)

// Artifacts is the per-release upload material built once and shared
// across targets. The torrent info carries no tracker-specific fields;
// the orchestrator specializes it per target.
type Artifacts struct {
	Info        *torrent.Info
	Description string
	MediaInfo   string
	NFO         []byte
}

// ArtifactBuilder assembles the per-release upload material.
type ArtifactBuilder interface {
	Build(ctx context.Context, rel *release.Release, ids *identify.IdentitySet) (*Artifacts, error)
}

// Builder is the default ArtifactBuilder: it piece-hashes the release
// from disk and renders a plain-text description from the identity set.
type Builder struct{}

// NewBuilder creates the default builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build hashes the release into a torrent info dictionary and renders
// the description.
func (b *Builder) Build(ctx context.Context, rel *release.Release, ids *identify.IdentitySet) (*Artifacts, error) {
	info, err := hashRelease(ctx, rel)
	if err != nil {
		return nil, fmt.Errorf("building torrent: %w", err)
	}
	return &Artifacts{
		Info:        info,
		Description: renderDescription(rel, ids),
	}, nil
}

// hashRelease reads the release's files in their recorded order and
// produces the piece-hash list. Piece boundaries span file boundaries.
func hashRelease(ctx context.Context, rel *release.Release) (*torrent.Info, error) {
	pieceLength := torrent.PieceLengthFor(rel.TotalSize)

	// Single-file mode is decided by the release root being a file, not by
	// name coincidence: a directory may contain one file named like itself.
	st, err := os.Stat(rel.Path)
	if err != nil {
		return nil, err
	}
	rootIsFile := !st.IsDir()

	var pieces []byte
	hasher := sha1.New()
	buffered := 0

	buf := make([]byte, 64*1024)
	for _, f := range rel.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(rel.Path, filepath.FromSlash(f.RelPath))
		if rootIsFile {
			path = rel.Path
		}
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		for {
			n, err := fh.Read(buf)
			if n > 0 {
				data := buf[:n]
				for len(data) > 0 {
					space := int(pieceLength) - buffered
					if space > len(data) {
						space = len(data)
					}
					hasher.Write(data[:space])
					buffered += space
					data = data[space:]
					if buffered == int(pieceLength) {
						pieces = hasher.Sum(pieces)
						hasher.Reset()
						buffered = 0
					}
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				fh.Close()
				return nil, err
			}
		}
		fh.Close()
	}
	if buffered > 0 {
		pieces = hasher.Sum(pieces)
	}

	info := &torrent.Info{
		Name:        rel.Name,
		PieceLength: pieceLength,
		Pieces:      pieces,
	}
	if rootIsFile {
		info.Length = rel.Files[0].Size
	} else {
		for _, f := range rel.Files {
			info.Files = append(info.Files, torrent.File{Path: f.RelPath, Length: f.Size})
		}
	}
	return info, nil
}

func renderDescription(rel *release.Release, ids *identify.IdentitySet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", rel.Name)
	fmt.Fprintf(&b, "Size: %s (%d files)\n", humanize.IBytes(uint64(rel.TotalSize)), len(rel.Files))

	if ids == nil {
		return b.String()
	}
	if id, ok := ids.Resolved(identify.KindTMDB); ok {
		kind := "movie"
		if rel.Type != release.TypeMovie {
			kind = "tv"
		}
		fmt.Fprintf(&b, "TMDB: https://www.themoviedb.org/%s/%s\n", kind, id.Value)
	}
	if id, ok := ids.Resolved(identify.KindIMDB); ok {
		fmt.Fprintf(&b, "IMDb: https://www.imdb.com/title/%s/\n", id.Value)
	}
	if id, ok := ids.Resolved(identify.KindTVDB); ok {
		fmt.Fprintf(&b, "TVDB: https://thetvdb.com/dereferrer/series/%s\n", id.Value)
	}
	if id, ok := ids.Resolved(identify.KindOpenLibrary); ok {
		fmt.Fprintf(&b, "Open Library: https://openlibrary.org%s\n", id.Value)
	}
	return b.String()
}
