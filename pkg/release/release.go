// Package release inspects file-system paths and classifies media releases.
package release

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrAmbiguous indicates no classification signal reached the confidence
// threshold; the caller must supply an explicit category.
var ErrAmbiguous = errors.New("ambiguous content type")

// ContentType is the detected kind of a release.
type ContentType int

const (
	TypeUnknown ContentType = iota
	TypeMovie
	TypeTVShow
	TypeBoxset
	TypeMusicAlbum
	TypeEBook
	TypeOther
)

func (c ContentType) String() string {
	switch c {
	case TypeMovie:
		return "movie"
	case TypeTVShow:
		return "tv"
	case TypeBoxset:
		return "boxset"
	case TypeMusicAlbum:
		return "music"
	case TypeEBook:
		return "ebook"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseContentType maps a user-supplied category name to a ContentType.
func ParseContentType(s string) (ContentType, bool) {
	switch s {
	case "movie":
		return TypeMovie, true
	case "tv":
		return TypeTVShow, true
	case "boxset":
		return TypeBoxset, true
	case "music":
		return TypeMusicAlbum, true
	case "ebook":
		return TypeEBook, true
	case "other":
		return TypeOther, true
	}
	return TypeUnknown, false
}

// IsVideo reports whether releases of this type carry video content.
// Non-video types bypass integrity, sample and screenshot stages; the
// bypass is a property of the type, not a separate flag.
func (c ContentType) IsVideo() bool {
	switch c {
	case TypeMovie, TypeTVShow, TypeBoxset:
		return true
	}
	return false
}

// FileEntry is one constituent file of a release.
type FileEntry struct {
	// RelPath is the path relative to the release root, joined with "/".
	RelPath string
	Size    int64
}

// Release is a unit of content to process. Immutable after classification
// except for the Type field, set exactly once.
type Release struct {
	Path      string
	Name      string // base name of the root path
	Files     []FileEntry
	TotalSize int64
	Type      ContentType
}

// FromPath builds a Release by walking the given path. Files are recorded
// in sorted relative-path order.
func FromPath(path string) (*Release, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	rel := &Release{
		Path: abs,
		Name: filepath.Base(abs),
	}

	if !stat.IsDir() {
		rel.Files = []FileEntry{{RelPath: rel.Name, Size: stat.Size()}}
		rel.TotalSize = stat.Size()
		return rel, nil
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		rel.Files = append(rel.Files, FileEntry{
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		rel.TotalSize += info.Size()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rel.Files, func(i, j int) bool {
		return rel.Files[i].RelPath < rel.Files[j].RelPath
	})
	return rel, nil
}
