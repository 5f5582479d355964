package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vmunix/seedgo/pkg/release"
)

// Validate checks the configuration for structural problems that would
// otherwise surface mid-pipeline. Called by Load; exported so tests and
// hand-built configs can reuse it.
func (c *Config) Validate() error {
	if c.Matching.AcceptThreshold < 0 || c.Matching.AcceptThreshold > 1 {
		return fmt.Errorf("matching.accept_threshold must be in [0,1], got %v", c.Matching.AcceptThreshold)
	}
	if c.Matching.LayoutScore < 0 || c.Matching.LayoutScore > 1 {
		return fmt.Errorf("matching.layout_score must be in [0,1], got %v", c.Matching.LayoutScore)
	}

	for name, t := range c.Trackers {
		if err := validateTracker(name, t); err != nil {
			return err
		}
	}

	for i, q := range c.QBittorrent {
		if q.WebUIURL == "" {
			return fmt.Errorf("qbittorrent[%d]: webui_url is required", i)
		}
		if _, err := url.Parse(q.WebUIURL); err != nil {
			return fmt.Errorf("qbittorrent[%d]: invalid webui_url: %w", i, err)
		}
	}
	return nil
}

func validateTracker(name string, t TrackerConfig) error {
	if !t.Enabled {
		// Disabled trackers may be half-configured; only their category
		// names are checked so a typo does not hide until re-enable.
		return validateCategories(name, t)
	}
	if t.UploadURL == "" {
		return fmt.Errorf("tracker %q: upload_url is required", name)
	}
	if t.APIKey == "" {
		return fmt.Errorf("tracker %q: api_key is required", name)
	}
	if strings.Contains(t.APIKey, "${") {
		return fmt.Errorf("tracker %q: api_key contains an unresolved environment variable", name)
	}
	if t.AnnounceURL == "" {
		return fmt.Errorf("tracker %q: announce_url is required", name)
	}
	return validateCategories(name, t)
}

func validateCategories(name string, t TrackerConfig) error {
	for cat := range t.Categories {
		if _, ok := release.ParseContentType(cat); !ok {
			return fmt.Errorf("tracker %q: unknown category %q", name, cat)
		}
	}
	return nil
}

// CategoryFor resolves the tracker's category mapping for a content type.
// A missing mapping means the tracker does not accept that kind of content.
func (t TrackerConfig) CategoryFor(ct release.ContentType) (CategoryMapping, bool) {
	m, ok := t.Categories[ct.String()]
	return m, ok
}
