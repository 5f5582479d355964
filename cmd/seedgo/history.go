package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/seedgo/internal/history"
)

func newHistoryCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent upload jobs and their per-tracker outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}

			store, err := history.Open(a.cfg.General.HistoryPath)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer store.Close()

			jobs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			if len(jobs) == 0 {
				cmd.Println("No upload jobs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, j := range jobs {
				rows = append(rows, []string{
					j.StartedAt.Local().Format("2006-01-02 15:04"),
					j.ReleaseName,
					j.ContentType,
					j.Overall,
					formatTargets(j.Targets),
				})
			}
			cmd.Println(renderTable(
				[]string{"Started", "Release", "Type", "Overall", "Targets"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of jobs to show")

	return cmd
}

func formatTargets(targets []history.TargetRecord) string {
	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		s := t.Tracker + ": " + t.Outcome
		if t.Reason != "" {
			s += " (" + t.Reason + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}
