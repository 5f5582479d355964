// Package tracker implements the upload and duplicate-check contract for
// Unit3D-style tracker targets.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/seedgo/internal/config"
	"github.com/vmunix/seedgo/pkg/release"
)

// Target is one configured tracker endpoint. Built from validated
// configuration; read-only to the pipeline.
type Target struct {
	name       string
	cfg        config.TrackerConfig
	httpClient *http.Client
	retry      RetryPolicy
	logger     *slog.Logger
}

// TargetOption configures a Target.
type TargetOption func(*Target)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) TargetOption {
	return func(t *Target) {
		t.httpClient = hc
	}
}

// WithRetryPolicy overrides the transient-failure retry policy.
func WithRetryPolicy(p RetryPolicy) TargetOption {
	return func(t *Target) {
		t.retry = p
	}
}

// WithLogger sets the target's logger.
func WithLogger(l *slog.Logger) TargetOption {
	return func(t *Target) {
		t.logger = l.With("component", "tracker", "tracker", t.name)
	}
}

// NewTarget builds a Target from its validated configuration.
func NewTarget(name string, cfg config.TrackerConfig, opts ...TargetOption) *Target {
	t := &Target{
		name:       name,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		retry:      DefaultRetryPolicy,
		logger:     slog.Default().With("component", "tracker", "tracker", name),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the configured tracker name.
func (t *Target) Name() string { return t.name }

// SourceTag returns the info-dict source tag the tracker requires, if any.
func (t *Target) SourceTag() string { return t.cfg.SourceTag }

// AnnounceURL returns the tracker's announce endpoint.
func (t *Target) AnnounceURL() string { return t.cfg.AnnounceURL }

// PrivateOnly reports whether the tracker requires the private flag set.
func (t *Target) PrivateOnly() bool { return t.cfg.PrivateOnly }

// CategoryFor resolves the tracker's category mapping for a content type.
func (t *Target) CategoryFor(ct release.ContentType) (config.CategoryMapping, bool) {
	return t.cfg.CategoryFor(ct)
}

// PreflightQuery keys a duplicate check before any artifact work.
type PreflightQuery struct {
	Name       string
	Season     int
	Episode    int
	HasEpisode bool
	TMDBID     string
}

// Duplicate is one catalog entry the tracker already carries.
type Duplicate struct {
	Name string `json:"name"`
}

type filterResponse struct {
	Data []struct {
		Attributes Duplicate `json:"attributes"`
	} `json:"data"`
}

// Preflight queries the tracker's filter API for existing copies of a
// release. Episode releases are narrowed to the exact SxxEyy marker so a
// season pack on the tracker does not mask a missing episode.
func (t *Target) Preflight(ctx context.Context, q PreflightQuery) ([]Duplicate, error) {
	if t.cfg.FilterURL == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("name", release.SanitizeName(q.Name))
	params.Set("perPage", "10")
	params.Set("sortField", "name")
	params.Set("sortDirection", "asc")
	params.Set("api_token", t.cfg.APIKey)
	if q.TMDBID != "" {
		params.Set("tmdbId", q.TMDBID)
	}
	if q.HasEpisode {
		params.Set("seasonNumber", strconv.Itoa(q.Season))
		params.Set("episodeNumber", strconv.Itoa(q.Episode))
	}
	reqURL := t.cfg.FilterURL + "?" + params.Encode()

	var dupes []Duplicate
	err := t.retry.Do(ctx, func() error {
		var fr filterResponse
		if err := t.getJSON(ctx, reqURL, &fr); err != nil {
			// Some trackers answer the duplicate check with 409 directly
			// instead of a filter listing.
			var se *SubmitError
			if errors.As(err, &se) && se.Status == http.StatusConflict {
				dupes = []Duplicate{{Name: q.Name}}
				return nil
			}
			return err
		}
		dupes = dupes[:0]
		for _, entry := range fr.Data {
			if q.HasEpisode {
				marker := fmt.Sprintf("S%02dE%02d", q.Season, q.Episode)
				if !strings.Contains(entry.Attributes.Name, marker) {
					continue
				}
			}
			dupes = append(dupes, entry.Attributes)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("preflight %s: %w", t.name, err)
	}
	return dupes, nil
}

func (t *Target) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &SubmitError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Payload is one release's upload submission, assembled once per release
// and specialized per target with the category mapping.
type Payload struct {
	Name        string
	TorrentData []byte
	Description string
	MediaInfo   string
	NFO         []byte

	Category     config.CategoryMapping
	ResolutionID int

	TMDBID string
	IMDBID string
	TVDBID string

	Season     int
	Episode    int
	HasSeason  bool
	HasEpisode bool
	// Episodic controls whether season/episode fields are sent; set for
	// TV and boxset categories only.
	Episodic bool
}

// Submit uploads a payload to the tracker. Transient failures are
// retried per the target's policy; a terminal rejection is returned as a
// *SubmitError.
func (t *Target) Submit(ctx context.Context, p *Payload) error {
	body, contentType, err := p.encodeForm()
	if err != nil {
		return fmt.Errorf("submit %s: %w", t.name, err)
	}

	err = t.retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.UploadURL, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)

		resp, err := t.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &SubmitError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		t.logger.Info("upload accepted", "release", p.Name, "status", resp.StatusCode)
		return nil
	})
	if err != nil {
		return fmt.Errorf("submit %s: %w", t.name, err)
	}
	return nil
}

func (p *Payload) encodeForm() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("torrent", p.Name+".torrent")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(p.TorrentData); err != nil {
		return nil, "", err
	}

	_ = w.WriteField("name", p.Name)
	_ = w.WriteField("category_id", strconv.Itoa(p.Category.CategoryID))
	_ = w.WriteField("type_id", strconv.Itoa(p.Category.TypeID))
	_ = w.WriteField("resolution_id", strconv.Itoa(p.ResolutionID))
	_ = w.WriteField("anonymous", "0")
	_ = w.WriteField("mal", "0")
	_ = w.WriteField("igdb", "0")
	_ = w.WriteField("stream", "0")
	_ = w.WriteField("sd", "0")

	if p.Description != "" {
		_ = w.WriteField("description", p.Description)
	}
	if p.MediaInfo != "" {
		_ = w.WriteField("mediainfo", p.MediaInfo)
	}
	if len(p.NFO) > 0 {
		nfo, err := w.CreateFormFile("nfo", p.Name+".nfo")
		if err != nil {
			return nil, "", err
		}
		if _, err := nfo.Write(p.NFO); err != nil {
			return nil, "", err
		}
	}

	_ = w.WriteField("tmdb", orZero(p.TMDBID))
	_ = w.WriteField("imdb", orZero(p.IMDBID))
	_ = w.WriteField("tvdb", orZero(p.TVDBID))

	if p.Episodic {
		if p.HasSeason {
			_ = w.WriteField("season_number", strconv.Itoa(p.Season))
		}
		if p.HasEpisode {
			_ = w.WriteField("episode_number", strconv.Itoa(p.Episode))
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
