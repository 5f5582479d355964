// Package torrent models torrent metadata and derives info-hashes from its
// canonical bencoded form.
package torrent

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"strings"

	"github.com/vmunix/seedgo/pkg/bencode"
)

// ErrInvalidInfo indicates a structurally invalid info dictionary. Required
// fields are name, piece length, pieces, and exactly one of length or files.
var ErrInvalidInfo = errors.New("invalid info dictionary")

// File is one entry of a multi-file torrent.
type File struct {
	// Path is the file path relative to the torrent root, joined with "/".
	Path   string
	Length int64

	// Extra holds unrecognized file-entry keys (BEP-47 "attr" and friends).
	// They participate in the canonical encoding, so the info-hash of a
	// decoded external torrent is preserved.
	Extra map[string]any
}

// Info is the decoded info dictionary.
type Info struct {
	Name        string
	PieceLength int64
	Pieces      []byte // concatenated 20-byte SHA-1 piece hashes
	Length      int64  // single-file mode; zero when Files is set
	Files       []File // multi-file mode
	Private     bool

	// Extra holds unrecognized info-dictionary keys. They participate in
	// the canonical encoding, so the info-hash survives a decode/encode
	// round-trip of torrents carrying fields like "source".
	Extra map[string]any
}

// MetaInfo is a decoded torrent file.
type MetaInfo struct {
	Announce string
	Info     Info

	// Extra holds unrecognized top-level keys (comment, creation date,
	// announce-list, ...). Preserved on encode, never part of the hash.
	Extra map[string]any
}

// TotalSize returns the sum of all file lengths.
func (i *Info) TotalSize() int64 {
	if len(i.Files) == 0 {
		return i.Length
	}
	var total int64
	for _, f := range i.Files {
		total += f.Length
	}
	return total
}

// FileList returns the file layout as (relative path, length) entries. In
// single-file mode the one entry is named after the torrent.
func (i *Info) FileList() []File {
	if len(i.Files) > 0 {
		out := make([]File, len(i.Files))
		copy(out, i.Files)
		return out
	}
	return []File{{Path: i.Name, Length: i.Length}}
}

// Validate checks the piece-count invariant:
// len(pieces)/20 == ceil(total size / piece length).
func (i *Info) Validate() error {
	if i.PieceLength <= 0 {
		return fmt.Errorf("%w: piece length %d", ErrInvalidInfo, i.PieceLength)
	}
	if len(i.Pieces)%sha1.Size != 0 {
		return fmt.Errorf("%w: pieces length %d not a multiple of 20", ErrInvalidInfo, len(i.Pieces))
	}
	want := (i.TotalSize() + i.PieceLength - 1) / i.PieceLength
	got := int64(len(i.Pieces) / sha1.Size)
	if got != want {
		return fmt.Errorf("%w: %d piece hashes for %d pieces", ErrInvalidInfo, got, want)
	}
	return nil
}

// dict builds the canonical map form of the info dictionary.
func (i *Info) dict() map[string]any {
	d := make(map[string]any, 6+len(i.Extra))
	for k, v := range i.Extra {
		d[k] = v
	}
	d["name"] = i.Name
	d["piece length"] = i.PieceLength
	d["pieces"] = i.Pieces
	if len(i.Files) > 0 {
		files := make([]any, len(i.Files))
		for n, f := range i.Files {
			parts := strings.Split(f.Path, "/")
			path := make([]any, len(parts))
			for m, p := range parts {
				path[m] = p
			}
			fe := make(map[string]any, 2+len(f.Extra))
			for k, v := range f.Extra {
				fe[k] = v
			}
			fe["length"] = f.Length
			fe["path"] = path
			files[n] = fe
		}
		d["files"] = files
	} else {
		d["length"] = i.Length
	}
	if i.Private {
		d["private"] = int64(1)
	}
	return d
}

// Hash returns the 160-bit info-hash: SHA-1 over the canonical encoding of
// the info dictionary only, never the outer dictionary.
func (i *Info) Hash() ([20]byte, error) {
	enc, err := bencode.Encode(i.dict())
	if err != nil {
		return [20]byte{}, fmt.Errorf("encode info: %w", err)
	}
	return sha1.Sum(enc), nil
}

// HexHash returns the info-hash as a lowercase hex string.
func (i *Info) HexHash() (string, error) {
	h, err := i.Hash()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h), nil
}

// Encode returns the canonical bencoded torrent file.
func (m *MetaInfo) Encode() ([]byte, error) {
	d := make(map[string]any, 2+len(m.Extra))
	for k, v := range m.Extra {
		d[k] = v
	}
	if m.Announce != "" {
		d["announce"] = m.Announce
	}
	d["info"] = m.Info.dict()
	return bencode.Encode(d)
}

// Parse decodes a torrent file. Unknown top-level keys are tolerated and
// preserved; a structurally invalid info dictionary is fatal.
func Parse(data []byte) (*MetaInfo, error) {
	raw, err := bencode.Decode(data)
	if err != nil {
		return nil, err
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not a dictionary", ErrInvalidInfo)
	}

	infoRaw, ok := top["info"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing info dictionary", ErrInvalidInfo)
	}

	info, err := parseInfo(infoRaw)
	if err != nil {
		return nil, err
	}

	m := &MetaInfo{Info: *info}
	if announce, ok := top["announce"].(string); ok {
		m.Announce = announce
	}
	for k, v := range top {
		if k == "announce" || k == "info" {
			continue
		}
		if m.Extra == nil {
			m.Extra = map[string]any{}
		}
		m.Extra[k] = v
	}
	return m, nil
}

func parseInfo(d map[string]any) (*Info, error) {
	info := &Info{}

	name, ok := d["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidInfo)
	}
	info.Name = name

	pieceLength, ok := d["piece length"].(int64)
	if !ok || pieceLength <= 0 {
		return nil, fmt.Errorf("%w: missing piece length", ErrInvalidInfo)
	}
	info.PieceLength = pieceLength

	pieces, ok := d["pieces"].(string)
	if !ok || len(pieces)%sha1.Size != 0 {
		return nil, fmt.Errorf("%w: missing or truncated pieces", ErrInvalidInfo)
	}
	info.Pieces = []byte(pieces)

	length, hasLength := d["length"].(int64)
	filesRaw, hasFiles := d["files"].([]any)
	switch {
	case hasLength && hasFiles:
		return nil, fmt.Errorf("%w: both length and files present", ErrInvalidInfo)
	case hasLength:
		if length < 0 {
			return nil, fmt.Errorf("%w: negative length", ErrInvalidInfo)
		}
		info.Length = length
	case hasFiles:
		files, err := parseFiles(filesRaw)
		if err != nil {
			return nil, err
		}
		info.Files = files
	default:
		return nil, fmt.Errorf("%w: neither length nor files present", ErrInvalidInfo)
	}

	for k, v := range d {
		switch k {
		case "name", "piece length", "pieces", "length", "files":
			continue
		case "private":
			if n, ok := v.(int64); ok && n == 1 {
				info.Private = true
				continue
			}
			// Non-standard private values (private=0 is common) must
			// round-trip verbatim or the info-hash changes.
		}
		if info.Extra == nil {
			info.Extra = map[string]any{}
		}
		info.Extra[k] = v
	}
	return info, nil
}

func parseFiles(raw []any) ([]File, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty files list", ErrInvalidInfo)
	}
	files := make([]File, 0, len(raw))
	for _, entry := range raw {
		fd, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: file entry is not a dictionary", ErrInvalidInfo)
		}
		length, ok := fd["length"].(int64)
		if !ok || length < 0 {
			return nil, fmt.Errorf("%w: file entry missing length", ErrInvalidInfo)
		}
		pathRaw, ok := fd["path"].([]any)
		if !ok || len(pathRaw) == 0 {
			return nil, fmt.Errorf("%w: file entry missing path", ErrInvalidInfo)
		}
		parts := make([]string, 0, len(pathRaw))
		for _, p := range pathRaw {
			s, ok := p.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("%w: file path component is not a string", ErrInvalidInfo)
			}
			parts = append(parts, s)
		}
		var extra map[string]any
		for k, v := range fd {
			if k == "length" || k == "path" {
				continue
			}
			if extra == nil {
				extra = map[string]any{}
			}
			extra[k] = v
		}
		files = append(files, File{Path: strings.Join(parts, "/"), Length: length, Extra: extra})
	}
	return files, nil
}
