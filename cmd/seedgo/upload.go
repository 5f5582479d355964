package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vmunix/seedgo/internal/history"
	"github.com/vmunix/seedgo/internal/upload"
	"github.com/vmunix/seedgo/pkg/release"
)

func newUploadCommand(a *app) *cobra.Command {
	var (
		trackerNames  []string
		category      string
		preflightOnly bool
	)

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Classify, check and submit a release to the configured trackers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			ctx := cmd.Context()

			override := release.TypeUnknown
			if category != "" {
				ct, ok := release.ParseContentType(category)
				if !ok {
					return &exitError{code: 2, err: fmt.Errorf("unknown category %q", category)}
				}
				override = ct
			}

			targets, err := a.targets(trackerNames)
			if err != nil {
				return err
			}

			rel, err := release.FromPath(args[0])
			if err != nil {
				return fmt.Errorf("reading release: %w", err)
			}

			opts := []upload.OrchestratorOption{
				upload.WithLogger(a.logger),
				upload.WithPreflightOnly(preflightOnly),
			}
			if !preflightOnly {
				if err := os.MkdirAll(filepath.Dir(a.cfg.General.HistoryPath), 0o755); err != nil {
					return fmt.Errorf("creating history directory: %w", err)
				}
				store, err := history.Open(a.cfg.General.HistoryPath)
				if err != nil {
					return fmt.Errorf("opening history: %w", err)
				}
				defer store.Close()
				opts = append(opts, upload.WithRecorder(store))
			}

			orch := upload.NewOrchestrator(a.resolver(), upload.NewBuilder(), opts...)

			job, err := orch.Run(ctx, rel, targets, override)
			if job != nil {
				printJob(cmd, job)
			}
			if err != nil {
				return err
			}

			switch job.Overall {
			case upload.OverallFailed, upload.OverallPartialFailure:
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&trackerNames, "tracker", "t", nil, "Submit only to the named tracker (repeatable)")
	cmd.Flags().StringVar(&category, "category", "", "Override content type (movie, tv, boxset, music, ebook, other)")
	cmd.Flags().BoolVar(&preflightOnly, "preflight-only", false, "Run the duplicate check and stop before building")

	return cmd
}

func printJob(cmd *cobra.Command, job *upload.Job) {
	cmd.Printf("%s  [%s]  overall: %s\n", job.Release.Name, job.Release.Type, job.Overall)

	names := make([]string, 0, len(job.Outcomes))
	for name := range job.Outcomes {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		o := job.Outcomes[name]
		rows = append(rows, []string{name, o.Kind.String(), o.Reason})
	}
	cmd.Println(renderTable(
		[]string{"Tracker", "Outcome", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}
