package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/seedgo/internal/config"
	"github.com/vmunix/seedgo/internal/identify"
	"github.com/vmunix/seedgo/internal/openlibrary"
	"github.com/vmunix/seedgo/internal/tmdb"
	"github.com/vmunix/seedgo/internal/tracker"
	"github.com/vmunix/seedgo/internal/upload"
)

var version = "dev"

// app carries the loaded configuration and logger shared by subcommands.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// load reads the configuration and initializes the process logger.
// Configuration problems are usage errors (exit code 2).
func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	a.cfg = cfg

	level := slog.LevelInfo
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	return nil
}

// targets builds the tracker targets, optionally narrowed to a selection.
func (a *app) targets(selected []string) ([]upload.Target, error) {
	enabled := a.cfg.EnabledTrackers()
	if len(selected) > 0 {
		var narrowed []string
		for _, name := range selected {
			tc, ok := a.cfg.Trackers[name]
			if !ok || !tc.Enabled {
				return nil, &exitError{code: 2, err: fmt.Errorf("unknown or disabled tracker %q", name)}
			}
			narrowed = append(narrowed, name)
		}
		enabled = narrowed
	}
	if len(enabled) == 0 {
		return nil, &exitError{code: 2, err: fmt.Errorf("no enabled trackers configured")}
	}

	targets := make([]upload.Target, 0, len(enabled))
	for _, name := range enabled {
		targets = append(targets, tracker.NewTarget(name, a.cfg.Trackers[name], tracker.WithLogger(a.logger)))
	}
	return targets, nil
}

// resolver assembles the identification services from configuration.
func (a *app) resolver() *identify.Resolver {
	var services []identify.Service
	opts := []identify.ResolverOption{
		identify.WithThreshold(a.cfg.Matching.AcceptThreshold),
		identify.WithLogger(a.logger),
	}

	if key := a.cfg.General.TMDBAPIKey; key != "" {
		client := tmdb.NewClient(key)
		services = append(services, identify.NewTMDBService(client))
		opts = append(opts, identify.WithExternalIDs(client))
	}
	opts = append(opts, identify.WithBooks(openlibrary.NewClient(
		openlibrary.WithBaseURL(a.cfg.General.OpenLibraryURL))))

	return identify.NewResolver(services, opts...)
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "seedgo",
		Short: "Tracker upload and cross-seed automation",
		Long: `seedgo - tracker upload and cross-seed automation

Classifies a release, resolves external identifiers, checks configured
trackers for duplicates, builds the torrent and submits it per tracker.
Sync mode matches the local seeding set against a torrent catalog and
injects cross-seedable entries.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "config.toml", "Configuration file path")
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("seedgo {{.Version}}\n")

	rootCmd.AddCommand(newUploadCommand(a))
	rootCmd.AddCommand(newSyncCommand(a))
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newHistoryCommand(a))

	return rootCmd
}
