package crossseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/vmunix/seedgo/internal/qbittorrent"
	"github.com/vmunix/seedgo/pkg/release"
	"github.com/vmunix/seedgo/pkg/torrent"
)

// ErrSyncInProgress is returned when another sync run holds the lock.
var ErrSyncInProgress = errors.New("another sync run is in progress")

// SeedClient is the local torrent-client contract consumed by the syncer.
// *qbittorrent.Client satisfies this.
type SeedClient interface {
	Login(ctx context.Context) error
	Seeding(ctx context.Context) ([]qbittorrent.Torrent, error)
	Files(ctx context.Context, hash string) ([]qbittorrent.TorrentFile, error)
	AddTorrent(ctx context.Context, filename string, torrentData []byte, savePath, category string) error
}

// SyncReport is the outcome of one sync run. The full candidate list is
// reported, including matches that were not injected.
type SyncReport struct {
	Candidates []Candidate
	Added      []string
	// Malformed holds catalog files that failed to decode; a bad entry
	// skips only itself, never the run.
	Malformed []string
	// AddFailures maps remote hash to the injection error.
	AddFailures map[string]error
}

// Syncer drives a cross-seed run: snapshot the client's seeding set,
// match it against a catalog of .torrent files, and inject the matches.
type Syncer struct {
	client     SeedClient
	matcher    *Matcher
	catalogDir string
	lockPath   string
	category   string
	dryRun     bool
	logger     *slog.Logger
}

// SyncerOption configures a Syncer.
type SyncerOption func(*Syncer)

// WithMatcher overrides the default matcher.
func WithMatcher(m *Matcher) SyncerOption {
	return func(s *Syncer) {
		s.matcher = m
	}
}

// WithLockPath sets the lock file guarding concurrent runs.
func WithLockPath(path string) SyncerOption {
	return func(s *Syncer) {
		s.lockPath = path
	}
}

// WithCategory sets the client category assigned to injected torrents.
func WithCategory(c string) SyncerOption {
	return func(s *Syncer) {
		s.category = c
	}
}

// WithDryRun reports matches without injecting them.
func WithDryRun(dry bool) SyncerOption {
	return func(s *Syncer) {
		s.dryRun = dry
	}
}

// WithSyncLogger sets the syncer's logger.
func WithSyncLogger(l *slog.Logger) SyncerOption {
	return func(s *Syncer) {
		s.logger = l.With("component", "crossseed")
	}
}

// NewSyncer creates a Syncer over a client and a catalog directory.
func NewSyncer(client SeedClient, catalogDir string, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		client:     client,
		matcher:    NewMatcher(),
		catalogDir: catalogDir,
		lockPath:   filepath.Join(os.TempDir(), "seedgo-sync.lock"),
		logger:     slog.Default().With("component", "crossseed"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one sync pass. The seeding set is snapshotted once at the
// start; client mutations during the run are not observed.
func (s *Syncer) Run(ctx context.Context) (*SyncReport, error) {
	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire sync lock: %w", err)
	}
	if !locked {
		return nil, ErrSyncInProgress
	}
	defer func() { _ = lock.Unlock() }()

	if err := s.client.Login(ctx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	local, savePaths, err := s.snapshotLocal(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{AddFailures: make(map[string]error)}
	remote, raw := s.loadCatalog(report)

	report.Candidates = s.matcher.Match(local, remote)
	s.logger.Info("matcher finished",
		"local", len(local), "remote", len(remote), "candidates", len(report.Candidates))

	if s.dryRun {
		return report, nil
	}

	for _, c := range report.Candidates {
		data, ok := raw[c.Remote.Hash]
		if !ok {
			continue
		}
		savePath := savePaths[c.Local.Hash]
		err := s.client.AddTorrent(ctx, c.Remote.Name+".torrent", data, savePath, s.category)
		if err != nil {
			s.logger.Error("injection failed",
				"remote", c.Remote.Name, "hash", c.Remote.Hash, "error", err)
			report.AddFailures[c.Remote.Hash] = err
			continue
		}
		s.logger.Info("cross-seed injected",
			"remote", c.Remote.Name, "save_path", savePath, "score", c.Score, "rationale", string(c.Rationale))
		report.Added = append(report.Added, c.Remote.Hash)
	}
	return report, nil
}

func (s *Syncer) snapshotLocal(ctx context.Context) ([]Entry, map[string]string, error) {
	torrents, err := s.client.Seeding(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("seeding snapshot: %w", err)
	}

	entries := make([]Entry, 0, len(torrents))
	savePaths := make(map[string]string, len(torrents))
	for _, t := range torrents {
		files, err := s.client.Files(ctx, t.Hash)
		if err != nil {
			s.logger.Warn("file listing failed, skipping torrent", "hash", t.Hash, "error", err)
			continue
		}
		fe := make([]release.FileEntry, 0, len(files))
		for _, f := range files {
			fe = append(fe, release.FileEntry{RelPath: f.Name, Size: f.Size})
		}
		entries = append(entries, Entry{
			Hash:      t.Hash,
			Name:      t.Name,
			TotalSize: t.Size,
			Files:     fe,
		})
		savePaths[t.Hash] = t.SavePath
	}
	return entries, savePaths, nil
}

// loadCatalog decodes every .torrent in the catalog directory. Malformed
// entries are recorded and skipped.
func (s *Syncer) loadCatalog(report *SyncReport) ([]Entry, map[string][]byte) {
	paths, err := filepath.Glob(filepath.Join(s.catalogDir, "*.torrent"))
	if err != nil {
		s.logger.Error("catalog listing failed", "dir", s.catalogDir, "error", err)
		return nil, nil
	}

	var entries []Entry
	raw := make(map[string][]byte)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("catalog entry unreadable", "path", path, "error", err)
			report.Malformed = append(report.Malformed, path)
			continue
		}
		mi, err := torrent.Parse(data)
		if err != nil {
			s.logger.Warn("catalog entry malformed", "path", path, "error", err)
			report.Malformed = append(report.Malformed, path)
			continue
		}
		entry, err := EntryFromMetaInfo(mi)
		if err != nil {
			report.Malformed = append(report.Malformed, path)
			continue
		}
		entries = append(entries, entry)
		raw[entry.Hash] = data
	}
	return entries, raw
}
