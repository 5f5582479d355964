package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/seedgo/internal/crossseed"
	"github.com/vmunix/seedgo/internal/qbittorrent"
)

func newSyncCommand(a *app) *cobra.Command {
	var (
		catalogDir string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Cross-seed the local seeding set from a torrent catalog",
		Long: `Snapshots each configured client's seeding set, matches it against the
.torrent files in the catalog directory, and injects matches using the
already-seeding copy's save path so no data is re-downloaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			if len(a.cfg.QBittorrent) == 0 {
				return &exitError{code: 2, err: fmt.Errorf("no qbittorrent instances configured")}
			}
			if catalogDir == "" {
				catalogDir = a.cfg.Paths.TorrentDir
			}

			matcher := crossseed.NewMatcher(crossseed.WithLayoutScore(a.cfg.Matching.LayoutScore))

			failed := false
			for _, qc := range a.cfg.QBittorrent {
				client := qbittorrent.NewClient(qc.WebUIURL, qc.Username, qc.Password)
				syncer := crossseed.NewSyncer(client, catalogDir,
					crossseed.WithMatcher(matcher),
					crossseed.WithCategory(qc.Category),
					crossseed.WithDryRun(dryRun),
					crossseed.WithSyncLogger(a.logger),
				)

				report, err := syncer.Run(cmd.Context())
				if err != nil {
					if errors.Is(err, crossseed.ErrSyncInProgress) {
						return err
					}
					a.logger.Error("sync failed", "client", qc.WebUIURL, "error", err)
					failed = true
					continue
				}
				printSyncReport(cmd, qc.WebUIURL, report, dryRun)
				if len(report.AddFailures) > 0 {
					failed = true
				}
			}
			if failed {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogDir, "catalog", "", "Directory of .torrent files to match (default: paths.torrent_dir)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report matches without injecting them")

	return cmd
}

func printSyncReport(cmd *cobra.Command, clientURL string, report *crossseed.SyncReport, dryRun bool) {
	verb := "injected"
	if dryRun {
		verb = "matched (dry run)"
	}
	cmd.Printf("%s: %d candidate(s), %d %s, %d malformed catalog entries\n",
		clientURL, len(report.Candidates), len(report.Added), verb, len(report.Malformed))

	if len(report.Candidates) == 0 {
		return
	}

	rows := make([][]string, 0, len(report.Candidates))
	for _, c := range report.Candidates {
		status := "added"
		switch {
		case dryRun:
			status = "candidate"
		case report.AddFailures[c.Remote.Hash] != nil:
			status = "failed: " + report.AddFailures[c.Remote.Hash].Error()
		}
		rows = append(rows, []string{
			c.Local.Name,
			c.Remote.Name,
			string(c.Rationale),
			fmt.Sprintf("%.2f", c.Score),
			humanize.IBytes(uint64(c.Remote.TotalSize)),
			status,
		})
	}
	cmd.Println(renderTable(
		[]string{"Seeding", "Catalog", "Match", "Score", "Size", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
}
