package identify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vmunix/seedgo/internal/tmdb"
	"github.com/vmunix/seedgo/pkg/release"
)

// TMDBService adapts the TMDB search API to the Service contract.
type TMDBService struct {
	client *tmdb.Client
}

// NewTMDBService wraps a TMDB client as an identification service.
func NewTMDBService(client *tmdb.Client) *TMDBService {
	return &TMDBService{client: client}
}

func (s *TMDBService) Name() string { return "tmdb" }

// Search maps a release query to the movie or TV search endpoint and
// normalizes results into tmdb_id candidates.
func (s *TMDBService) Search(ctx context.Context, q Query) ([]Candidate, error) {
	var (
		results []tmdb.Candidate
		err     error
	)
	if q.Type == release.TypeMovie {
		results, err = s.client.SearchMovie(ctx, q.Title, q.Year)
	} else {
		results, err = s.client.SearchTV(ctx, q.Title, q.Year)
	}
	if err != nil {
		return nil, fmt.Errorf("tmdb search: %w", err)
	}

	cands := make([]Candidate, 0, len(results))
	for _, r := range results {
		cands = append(cands, Candidate{
			Kind:  KindTMDB,
			Value: strconv.FormatInt(r.ID, 10),
			Title: r.DisplayTitle(),
			Year:  r.Year(),
		})
	}
	return cands, nil
}
