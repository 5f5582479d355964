package release

import "github.com/hbollon/go-edlib"

// Similarity scores a candidate title against a parsed release title.
// Jaro-Winkler on cleaned titles, which favors prefix matches; media titles
// almost always diverge at the tail (year, subtitle, edition).
func Similarity(parsed, candidate string) float64 {
	return float64(edlib.JaroWinklerSimilarity(CleanTitle(parsed), CleanTitle(candidate)))
}

// EditDistance is the Levenshtein distance between cleaned titles. Used as
// the tie-breaker when several candidates clear the acceptance threshold.
func EditDistance(parsed, candidate string) int {
	return edlib.LevenshteinDistance(CleanTitle(parsed), CleanTitle(candidate))
}
