package tracker

import (
	"regexp"
	"strings"
)

var resolutionRegex = regexp.MustCompile(`(?i)(8640p|4320p|2160p|1440p|1080p|1080i|720p|576p|576i|480p|480i)`)

// resolutionIDs is the Unit3D resolution table. 1440p shares an id with
// 1080p upstream.
var resolutionIDs = map[string]int{
	"8640p": 10,
	"4320p": 1,
	"2160p": 2,
	"1440p": 3,
	"1080p": 3,
	"1080i": 4,
	"720p":  5,
	"576p":  6,
	"576i":  7,
	"480p":  8,
	"480i":  9,
}

const resolutionOther = 10

// ResolutionID maps the resolution marker in a release name to the
// tracker's resolution id, falling back to "other".
func ResolutionID(name string) int {
	m := resolutionRegex.FindString(name)
	if m == "" {
		return resolutionOther
	}
	if id, ok := resolutionIDs[strings.ToLower(m)]; ok {
		return id
	}
	return resolutionOther
}
