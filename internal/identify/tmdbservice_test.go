package identify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seedgo/internal/identify"
	"github.com/vmunix/seedgo/internal/tmdb"
	"github.com/vmunix/seedgo/pkg/release"
)

func TestTMDBService_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/search/movie":
			_, _ = w.Write([]byte(`{"page":1,"total_results":1,"results":[{"id":949,"title":"Heat","release_date":"1995-12-15"}]}`))
		case "/3/search/tv":
			_, _ = w.Write([]byte(`{"page":1,"total_results":1,"results":[{"id":63639,"name":"The Expanse","first_air_date":"2015-12-14"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	svc := identify.NewTMDBService(tmdb.NewClient("k", tmdb.WithBaseURL(server.URL)))
	assert.Equal(t, "tmdb", svc.Name())

	cands, err := svc.Search(context.Background(), identify.Query{Title: "Heat", Year: 1995, Type: release.TypeMovie})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, identify.Candidate{Kind: identify.KindTMDB, Value: "949", Title: "Heat", Year: 1995}, cands[0])

	cands, err = svc.Search(context.Background(), identify.Query{Title: "The Expanse", Type: release.TypeTVShow})
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "63639", cands[0].Value)
	assert.Equal(t, "The Expanse", cands[0].Title)
}
