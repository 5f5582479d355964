package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "Heat", r.URL.Query().Get("query"))
		assert.Equal(t, "1995", r.URL.Query().Get("year"))

		resp := searchResponse{
			Page:         1,
			TotalResults: 2,
			Results: []Candidate{
				{ID: 949, Title: "Heat", ReleaseDate: "1995-12-15", Popularity: 40.1},
				{ID: 10647, Title: "Heat", ReleaseDate: "1986-03-07", Popularity: 6.2},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	results, err := client.SearchMovie(context.Background(), "Heat", 1995)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(949), results[0].ID)
	assert.Equal(t, "Heat", results[0].DisplayTitle())
	assert.Equal(t, 1995, results[0].Year())
}

func TestClient_SearchTV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/tv", r.URL.Path)
		assert.Equal(t, "The Expanse", r.URL.Query().Get("query"))
		assert.Empty(t, r.URL.Query().Get("first_air_date_year"))

		resp := searchResponse{
			Page:         1,
			TotalResults: 1,
			Results: []Candidate{
				{ID: 63639, Name: "The Expanse", FirstAir: "2015-12-14"},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	results, err := client.SearchTV(context.Background(), "The Expanse", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Expanse", results[0].DisplayTitle())
	assert.Equal(t, 2015, results[0].Year())
}

func TestClient_SearchMovie_Cached(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []Candidate{{ID: 550, Title: "Fight Club"}}})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL), WithCacheTTL(time.Hour))

	_, err := client.SearchMovie(context.Background(), "Fight Club", 1999)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)

	_, err = client.SearchMovie(context.Background(), "Fight Club", 1999)
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "should use cache, not call API again")

	// Different year is a different query; cache must not collapse them.
	_, err = client.SearchMovie(context.Background(), "Fight Club", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, callCount)
}

func TestClient_GetExternalIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/tv/63639/external_ids", r.URL.Path)
		_ = json.NewEncoder(w).Encode(ExternalIDs{IMDbID: "tt3230854", TVDBID: 280619})
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ids, err := client.GetExternalIDs(context.Background(), MediaTV, 63639)
	require.NoError(t, err)
	assert.Equal(t, "tt3230854", ids.IMDbID)
	assert.Equal(t, int64(280619), ids.TVDBID)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	ids, err := client.GetExternalIDs(context.Background(), MediaMovie, 99999999)
	assert.Nil(t, ids)
	assert.ErrorIs(t, err, ErrNotFound)
}
