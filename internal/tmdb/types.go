// Package tmdb provides a client for The Movie Database search and
// external-id endpoints.
package tmdb

import "strconv"

// MediaType selects the TMDB endpoint family.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// Candidate is one search result. Movie and TV results are normalized
// into the same shape: TV "name"/"first_air_date" land in Title/ReleaseDate.
type Candidate struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Name        string  `json:"name"`
	ReleaseDate string  `json:"release_date"`
	FirstAir    string  `json:"first_air_date"`
	Popularity  float64 `json:"popularity"`
	VoteCount   int     `json:"vote_count"`
}

// DisplayTitle returns the title field appropriate to the media type.
func (c Candidate) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Year extracts the year from the release or first-air date.
func (c Candidate) Year() int {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAir
	}
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

type searchResponse struct {
	Page         int         `json:"page"`
	Results      []Candidate `json:"results"`
	TotalResults int         `json:"total_results"`
}

// ExternalIDs holds the cross-service identifiers TMDB knows for a title.
type ExternalIDs struct {
	IMDbID string `json:"imdb_id"`
	TVDBID int64  `json:"tvdb_id"`
}
