// Package qbittorrent provides a client for the qBittorrent WebUI API,
// covering the seeding-set snapshot and cross-seed injection.
package qbittorrent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// ErrAuthFailed is returned when the WebUI rejects the credentials.
var ErrAuthFailed = errors.New("qbittorrent authentication failed")

// Torrent is one entry of the client's torrent list.
type Torrent struct {
	Hash     string `json:"hash"`
	Name     string `json:"name"`
	SavePath string `json:"save_path"`
	Size     int64  `json:"size"`
	State    string `json:"state"`
}

// TorrentFile is one file of a torrent, path relative to the save path.
type TorrentFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Client is a qBittorrent WebUI client. Login is performed explicitly;
// the session cookie is held in the client's jar afterwards.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A cookie jar is installed if
// the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for one qBittorrent instance.
func NewClient(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.httpClient.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient.Jar = jar
	}
	return c
}

// Login establishes the WebUI session.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v2/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK || !strings.HasPrefix(string(body), "Ok") {
		return fmt.Errorf("%w: %s", ErrAuthFailed, resp.Status)
	}
	return nil
}

// Seeding returns a snapshot of the currently-seeding torrents. The
// snapshot is taken once; later client-side mutations are not observed.
func (c *Client) Seeding(ctx context.Context) ([]Torrent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v2/torrents/info?filter=seeding", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qbittorrent API error: %s", resp.Status)
	}

	var torrents []Torrent
	if err := json.NewDecoder(resp.Body).Decode(&torrents); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return torrents, nil
}

// Files lists the files of one torrent by info-hash.
func (c *Client) Files(ctx context.Context, hash string) ([]TorrentFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v2/torrents/files?hash="+url.QueryEscape(hash), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qbittorrent API error: %s", resp.Status)
	}

	var files []TorrentFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return files, nil
}

// AddTorrent injects a torrent for cross-seeding: the payload is added
// with an explicit save path and hash checking skipped, since the data is
// already on disk.
func (c *Client) AddTorrent(ctx context.Context, filename string, torrentData []byte, savePath, category string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("torrents", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(torrentData); err != nil {
		return fmt.Errorf("write torrent data: %w", err)
	}
	_ = w.WriteField("savepath", savePath)
	_ = w.WriteField("skip_checking", "true")
	_ = w.WriteField("paused", "false")
	if category != "" {
		_ = w.WriteField("category", category)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v2/torrents/add", &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qbittorrent add failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if strings.HasPrefix(string(body), "Fails") {
		return fmt.Errorf("qbittorrent add rejected: %s", strings.TrimSpace(string(body)))
	}
	return nil
}
