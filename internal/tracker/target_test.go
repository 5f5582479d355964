package tracker

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/seedgo/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTarget(t *testing.T, handler http.Handler) *Target {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.TrackerConfig{
		Enabled:     true,
		AnnounceURL: server.URL + "/announce/abc",
		UploadURL:   server.URL + "/api/torrents/upload",
		FilterURL:   server.URL + "/api/torrents/filter",
		APIKey:      "sp-key",
		SourceTag:   "[seedpool.example]",
	}
	return NewTarget("seedpool", cfg,
		WithRetryPolicy(RetryPolicy{Attempts: 3, Base: time.Millisecond, Factor: 2}),
		WithLogger(testLogger()))
}

func TestTarget_Preflight(t *testing.T) {
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrents/filter", r.URL.Path)
		assert.Equal(t, "sp-key", r.URL.Query().Get("api_token"))
		assert.Equal(t, "Heat.1995.1080p.BluRay.x264-GRP", r.URL.Query().Get("name"))
		assert.Equal(t, "10", r.URL.Query().Get("perPage"))

		_, _ = w.Write([]byte(`{"data":[{"attributes":{"name":"Heat.1995.1080p.BluRay.x264-GRP"}}]}`))
	}))

	dupes, err := tgt.Preflight(context.Background(), PreflightQuery{Name: "Heat.1995.1080p.BluRay.x264-GRP"})
	require.NoError(t, err)
	require.Len(t, dupes, 1)
	assert.Equal(t, "Heat.1995.1080p.BluRay.x264-GRP", dupes[0].Name)
}

func TestTarget_Preflight_EpisodeNarrowing(t *testing.T) {
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("seasonNumber"))
		assert.Equal(t, "5", r.URL.Query().Get("episodeNumber"))

		// Season pack in the catalog must not count as an episode dupe.
		_, _ = w.Write([]byte(`{"data":[
			{"attributes":{"name":"The.Expanse.S03.1080p.WEB-DL.x264-GRP"}},
			{"attributes":{"name":"The.Expanse.S03E05.1080p.WEB-DL.x264-GRP"}}
		]}`))
	}))

	dupes, err := tgt.Preflight(context.Background(), PreflightQuery{
		Name:       "The.Expanse.S03E05.1080p.WEB-DL.x264-GRP",
		Season:     3,
		Episode:    5,
		HasEpisode: true,
	})
	require.NoError(t, err)
	require.Len(t, dupes, 1)
	assert.Contains(t, dupes[0].Name, "S03E05")
}

func TestTarget_Preflight_ConflictIsDuplicate(t *testing.T) {
	var calls atomic.Int32
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate torrent"}`))
	}))

	dupes, err := tgt.Preflight(context.Background(), PreflightQuery{Name: "Heat.1995.1080p.BluRay.x264-GRP"})
	require.NoError(t, err, "409 means the release already exists, not a preflight failure")
	require.Len(t, dupes, 1)
	assert.Equal(t, "Heat.1995.1080p.BluRay.x264-GRP", dupes[0].Name)
	assert.Equal(t, int32(1), calls.Load(), "409 is terminal, never retried")
}

func TestTarget_Preflight_ServerErrorFails(t *testing.T) {
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := tgt.Preflight(context.Background(), PreflightQuery{Name: "x"})
	require.Error(t, err)
	var se *SubmitError
	assert.ErrorAs(t, err, &se)
}

func TestTarget_Preflight_NoFilterURL(t *testing.T) {
	tgt := NewTarget("bare", config.TrackerConfig{APIKey: "k"}, WithLogger(testLogger()))

	dupes, err := tgt.Preflight(context.Background(), PreflightQuery{Name: "x"})
	require.NoError(t, err)
	assert.Empty(t, dupes)
}

func TestTarget_Submit(t *testing.T) {
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/torrents/upload", r.URL.Path)
		assert.Equal(t, "Bearer sp-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "The.Expanse.S03E05.1080p.WEB-DL.x264-GRP", r.PostFormValue("name"))
		assert.Equal(t, "2", r.PostFormValue("category_id"))
		assert.Equal(t, "5", r.PostFormValue("type_id"))
		assert.Equal(t, "3", r.PostFormValue("resolution_id"))
		assert.Equal(t, "63639", r.PostFormValue("tmdb"))
		assert.Equal(t, "tt3230854", r.PostFormValue("imdb"))
		assert.Equal(t, "280619", r.PostFormValue("tvdb"))
		assert.Equal(t, "3", r.PostFormValue("season_number"))
		assert.Equal(t, "5", r.PostFormValue("episode_number"))
		assert.Equal(t, "0", r.PostFormValue("anonymous"))

		file, header, err := r.FormFile("torrent")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "The.Expanse.S03E05.1080p.WEB-DL.x264-GRP.torrent", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.NotEmpty(t, data)

		w.WriteHeader(http.StatusOK)
	}))

	err := tgt.Submit(context.Background(), &Payload{
		Name:         "The.Expanse.S03E05.1080p.WEB-DL.x264-GRP",
		TorrentData:  []byte("d4:infod4:name3:x.xee"),
		Category:     config.CategoryMapping{CategoryID: 2, TypeID: 5},
		ResolutionID: 3,
		TMDBID:       "63639",
		IMDBID:       "tt3230854",
		TVDBID:       "280619",
		Season:       3,
		Episode:      5,
		HasSeason:    true,
		HasEpisode:   true,
		Episodic:     true,
	})
	require.NoError(t, err)
}

func TestTarget_Submit_UnresolvedIDsSentAsZero(t *testing.T) {
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "0", r.PostFormValue("tmdb"))
		assert.Equal(t, "0", r.PostFormValue("imdb"))
		assert.Equal(t, "0", r.PostFormValue("tvdb"))
		assert.Empty(t, r.PostFormValue("season_number"))
	}))

	err := tgt.Submit(context.Background(), &Payload{
		Name:        "Heat.1995.1080p.BluRay.x264-GRP",
		TorrentData: []byte("x"),
		Category:    config.CategoryMapping{CategoryID: 1, TypeID: 2},
	})
	require.NoError(t, err)
}

func TestTarget_Submit_TerminalRejection(t *testing.T) {
	var calls atomic.Int32
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate torrent"}`))
	}))

	err := tgt.Submit(context.Background(), &Payload{Name: "x", TorrentData: []byte("x")})
	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.Status)
	assert.Equal(t, int32(1), calls.Load(), "409 is terminal, never retried")
}

func TestTarget_Submit_TransientRetriedToSuccess(t *testing.T) {
	var calls atomic.Int32
	tgt := testTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	err := tgt.Submit(context.Background(), &Payload{Name: "x", TorrentData: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestResolutionID(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"Movie.2024.2160p.BluRay.x265-GRP", 2},
		{"Movie.2024.1080p.WEB-DL.x264-GRP", 3},
		{"Show.S01.720p.HDTV.x264-GRP", 5},
		{"Old.Show.480i.DVDRip", 9},
		{"Artist - Album FLAC", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolutionID(tt.name))
		})
	}
}
