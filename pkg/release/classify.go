package release

import (
	"context"
	"path"
	"strings"
)

// Tracks is the media-track composition reported by the external probing
// collaborator (ffprobe/mediainfo behind the interface).
type Tracks struct {
	Video int
	Audio int
}

// TrackProber reports the track composition of a media file.
type TrackProber interface {
	MediaTracks(ctx context.Context, path string) (Tracks, error)
}

var videoExts = map[string]bool{
	".mkv": true, ".mp4": true, ".ts": true, ".avi": true,
	".mov": true, ".flv": true, ".wmv": true, ".m2ts": true,
}

var audioExts = map[string]bool{
	".flac": true, ".mp3": true, ".m4a": true, ".ogg": true,
	".opus": true, ".wav": true, ".ape": true,
}

var ebookExts = map[string]bool{
	".epub": true, ".mobi": true, ".azw3": true, ".cbz": true, ".cbr": true,
}

var albumArtNames = map[string]bool{
	"cover.jpg": true, "cover.png": true, "folder.jpg": true, "front.jpg": true,
}

// Classify infers the content type of a release.
//
// Signals in priority order: an explicit override always wins; then
// directory/file naming conventions; then track composition from the
// prober. Returns ErrAmbiguous when nothing is conclusive.
func Classify(ctx context.Context, rel *Release, probe TrackProber, override ContentType) (ContentType, error) {
	if override != TypeUnknown {
		return override, nil
	}

	if ct := classifyByName(rel); ct != TypeUnknown {
		return ct, nil
	}

	if ct := classifyByFiles(rel); ct != TypeUnknown {
		return ct, nil
	}

	// Last signal: ask the prober about the largest media file.
	if probe != nil {
		if media := largestMediaFile(rel); media != "" {
			tracks, err := probe.MediaTracks(ctx, media)
			if err == nil {
				switch {
				case tracks.Video > 0:
					return TypeMovie, nil
				case tracks.Audio > 0:
					return TypeMusicAlbum, nil
				}
			}
		}
	}

	return TypeUnknown, ErrAmbiguous
}

// classifyByName applies the naming conventions, checked in the same order
// the markers are trusted: SxxEyy beats Sxx beats boxset keywords beats a
// bare year.
func classifyByName(rel *Release) ContentType {
	name := rel.Name
	switch {
	case seasonEpRegex.MatchString(name):
		return TypeTVShow
	case boxsetRegex.MatchString(name):
		return TypeBoxset
	case seasonRegex.MatchString(name):
		// A season marker with no episode marker is a season pack.
		if countVideoFiles(rel) > 1 {
			return TypeBoxset
		}
		return TypeTVShow
	case yearRegex.MatchString(name) && countVideoFiles(rel) > 0:
		return TypeMovie
	}
	return TypeUnknown
}

// classifyByFiles looks at extension composition: e-book extensions, or an
// audio-only file set with album art.
func classifyByFiles(rel *Release) ContentType {
	var video, audio, ebook, art int
	for _, f := range rel.Files {
		base := strings.ToLower(path.Base(f.RelPath))
		ext := strings.ToLower(path.Ext(f.RelPath))
		switch {
		case videoExts[ext]:
			video++
		case audioExts[ext]:
			audio++
		case ebookExts[ext]:
			ebook++
		}
		if albumArtNames[base] {
			art++
		}
	}
	switch {
	case ebook > 0 && video == 0 && audio == 0:
		return TypeEBook
	case audio > 0 && video == 0:
		if art > 0 || audio > 1 {
			return TypeMusicAlbum
		}
	case video > 0 && yearRegex.MatchString(rel.Name):
		return TypeMovie
	}
	return TypeUnknown
}

func countVideoFiles(rel *Release) int {
	n := 0
	for _, f := range rel.Files {
		if videoExts[strings.ToLower(path.Ext(f.RelPath))] {
			n++
		}
	}
	return n
}

func largestMediaFile(rel *Release) string {
	var best string
	var bestSize int64 = -1
	for _, f := range rel.Files {
		ext := strings.ToLower(path.Ext(f.RelPath))
		if (videoExts[ext] || audioExts[ext]) && f.Size > bestSize {
			best = f.RelPath
			bestSize = f.Size
		}
	}
	if best == "" {
		return ""
	}
	return rel.Path + "/" + best
}
