package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when a title doesn't exist in TMDB.
var ErrNotFound = errors.New("title not found")

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newCache(ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: newCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchMovie searches for a movie by title, optionally constrained to a
// release year (0 means unconstrained).
func (c *Client) SearchMovie(ctx context.Context, title string, year int) ([]Candidate, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	return c.search(ctx, "/3/search/movie?"+q.Encode())
}

// SearchTV searches for a series by name, optionally constrained to a
// first-air year (0 means unconstrained).
func (c *Client) SearchTV(ctx context.Context, name string, year int) ([]Candidate, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", name)
	if year > 0 {
		q.Set("first_air_date_year", strconv.Itoa(year))
	}
	return c.search(ctx, "/3/search/tv?"+q.Encode())
}

func (c *Client) search(ctx context.Context, pathAndQuery string) ([]Candidate, error) {
	if cached, ok := c.cache.get(pathAndQuery); ok {
		return cached, nil
	}

	var sr searchResponse
	if err := c.getJSON(ctx, pathAndQuery, &sr); err != nil {
		return nil, err
	}

	c.cache.set(pathAndQuery, sr.Results)
	return sr.Results, nil
}

// GetExternalIDs fetches the IMDb and TVDB identifiers for a TMDB title.
func (c *Client) GetExternalIDs(ctx context.Context, media MediaType, tmdbID int64) (*ExternalIDs, error) {
	path := fmt.Sprintf("/3/%s/%d/external_ids?api_key=%s", media, tmdbID, url.QueryEscape(c.apiKey))

	var ids ExternalIDs
	if err := c.getJSON(ctx, path, &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

func (c *Client) getJSON(ctx context.Context, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
