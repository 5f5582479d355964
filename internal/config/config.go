// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	General     GeneralConfig            `toml:"general"`
	Paths       PathsConfig              `toml:"paths"`
	Matching    MatchingConfig           `toml:"matching"`
	Trackers    map[string]TrackerConfig `toml:"trackers"`
	QBittorrent []QBittorrentConfig      `toml:"qbittorrent"`
}

type GeneralConfig struct {
	TMDBAPIKey        string `toml:"tmdb_api_key"`
	OpenLibraryURL    string `toml:"open_library_url"`
	LogLevel          string `toml:"log_level"`
	HistoryPath       string `toml:"history_path"`
	RequestTimeoutSec int    `toml:"request_timeout_sec"`
}

type PathsConfig struct {
	TorrentDir     string `toml:"torrent_dir"`
	ScreenshotsDir string `toml:"screenshots_dir"`
	FFmpeg         string `toml:"ffmpeg"`
	FFprobe        string `toml:"ffprobe"`
	Mediainfo      string `toml:"mediainfo"`
	Mkbrr          string `toml:"mkbrr"`
}

// MatchingConfig holds the heuristic thresholds. They are policy constants
// with documented defaults; exposed here so tests and operators can pin them.
type MatchingConfig struct {
	// AcceptThreshold is the minimum identification confidence for an
	// identifier to count as resolved. Default 0.85.
	AcceptThreshold float64 `toml:"accept_threshold"`
	// LayoutScore is the score assigned to file-layout cross-seed
	// matches. Default 0.8.
	LayoutScore float64 `toml:"layout_score"`
}

type TrackerConfig struct {
	Enabled     bool   `toml:"enabled"`
	AnnounceURL string `toml:"announce_url"`
	UploadURL   string `toml:"upload_url"`
	FilterURL   string `toml:"filter_url"`
	APIKey      string `toml:"api_key"`
	PrivateOnly bool   `toml:"private_only"`
	SourceTag   string `toml:"source_tag"`
	// Categories maps a content-type name (movie, tv, boxset, music,
	// ebook, other) to the tracker's category and type ids.
	Categories map[string]CategoryMapping `toml:"categories"`
}

type CategoryMapping struct {
	CategoryID int `toml:"category_id"`
	TypeID     int `toml:"type_id"`
}

type QBittorrentConfig struct {
	WebUIURL string `toml:"webui_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Category string `toml:"category"`
	SavePath string `toml:"default_save_path"`
}

// RequestTimeout returns the per-call timeout for external HTTP requests.
func (g GeneralConfig) RequestTimeout() time.Duration {
	if g.RequestTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.RequestTimeoutSec) * time.Second
}

// Load reads, substitutes and parses the configuration file, applies
// defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.HistoryPath == "" {
		c.General.HistoryPath = "./data/seedgo.db"
	}
	if c.General.OpenLibraryURL == "" {
		c.General.OpenLibraryURL = "https://openlibrary.org"
	}
	if c.Paths.TorrentDir == "" {
		c.Paths.TorrentDir = "./torrents"
	}
	if c.Matching.AcceptThreshold == 0 {
		c.Matching.AcceptThreshold = 0.85
	}
	if c.Matching.LayoutScore == 0 {
		c.Matching.LayoutScore = 0.8
	}
}

// EnabledTrackers returns the names of enabled trackers in sorted order.
func (c *Config) EnabledTrackers() []string {
	names := make([]string, 0, len(c.Trackers))
	for name, t := range c.Trackers {
		if t.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}
