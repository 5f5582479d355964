package release

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	extRegex       = regexp.MustCompile(`\.(mkv|mp4|m4b|avi|mov|flv|wmv|ts)$`)
	nonAlnumRegex  = regexp.MustCompile(`[^A-Za-z0-9+\-]`)
	multiDotRegex  = regexp.MustCompile(`\.\.+`)
	dotDashRegex   = regexp.MustCompile(`-\.+|\.-+`)
	trailDotRegex  = regexp.MustCompile(`\.$`)
	seasonEpRegex  = regexp.MustCompile(`(?i)S(\d{2})E(\d{2})`)
	seasonRegex    = regexp.MustCompile(`(?i)\bS(\d{2})\b`)
	boxsetRegex    = regexp.MustCompile(`(?i)\b(boxset|complete|collection)\b`)
	yearRegex      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	resolutionList = regexp.MustCompile(`(?i)(8640p|4320p|2160p|1440p|1080p|1080i|720p|576p|576i|480p|480i)`)
)

// SanitizeName turns an arbitrary base name into a dot-separated release
// name: extensions stripped, every run of punctuation collapsed to a single
// dot, mixed dot-dash runs collapsed to a dash.
func SanitizeName(baseName string) string {
	s := extRegex.ReplaceAllString(baseName, "")
	s = nonAlnumRegex.ReplaceAllString(s, ".")
	s = multiDotRegex.ReplaceAllString(s, ".")
	s = dotDashRegex.ReplaceAllString(s, "-")
	s = trailDotRegex.ReplaceAllString(s, "")
	return strings.TrimLeft(s, ".")
}

// NameInfo is what a release name alone tells us.
type NameInfo struct {
	Title      string // cleaned title portion, dots/underscores as spaces
	Year       int    // zero when absent
	Season     int    // zero when absent
	Episode    int    // zero when absent
	HasEpisode bool
	HasSeason  bool
	Resolution string // 2160p, 1080p, ... lowercased; empty when absent
}

// ParseName extracts title, year and season/episode markers from a release
// name. The title is everything before the first recognized marker.
func ParseName(name string) NameInfo {
	info := NameInfo{}

	cut := len(name)
	if m := seasonEpRegex.FindStringSubmatchIndex(name); m != nil {
		info.HasSeason, info.HasEpisode = true, true
		info.Season, _ = strconv.Atoi(name[m[2]:m[3]])
		info.Episode, _ = strconv.Atoi(name[m[4]:m[5]])
		cut = m[0]
	} else if m := seasonRegex.FindStringSubmatchIndex(name); m != nil {
		info.HasSeason = true
		info.Season, _ = strconv.Atoi(name[m[2]:m[3]])
		cut = m[0]
	} else if m := boxsetRegex.FindStringIndex(name); m != nil {
		cut = m[0]
	} else if m := yearRegex.FindStringIndex(name); m != nil {
		cut = m[0]
	}

	if m := yearRegex.FindString(name); m != "" {
		info.Year, _ = strconv.Atoi(m)
	}
	if m := resolutionList.FindString(name); m != "" {
		info.Resolution = strings.ToLower(m)
	}

	title := strings.TrimSpace(name[:cut])
	title = strings.NewReplacer(".", " ", "_", " ").Replace(title)
	title = strings.TrimSpace(strings.Trim(title, "-"))
	info.Title = strings.Join(strings.Fields(title), " ")
	return info
}
