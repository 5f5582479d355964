package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vmunix/seedgo/pkg/torrent"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.torrent>",
		Short: "Decode a torrent file and print its info-hash and layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading torrent: %w", err)
			}
			mi, err := torrent.Parse(data)
			if err != nil {
				return fmt.Errorf("parsing torrent: %w", err)
			}
			if err := mi.Info.Validate(); err != nil {
				return fmt.Errorf("invalid torrent: %w", err)
			}
			hash, err := mi.Info.HexHash()
			if err != nil {
				return fmt.Errorf("computing info-hash: %w", err)
			}

			cmd.Printf("Name:         %s\n", mi.Info.Name)
			cmd.Printf("Info hash:    %s\n", hash)
			cmd.Printf("Announce:     %s\n", mi.Announce)
			cmd.Printf("Piece length: %s\n", humanize.IBytes(uint64(mi.Info.PieceLength)))
			cmd.Printf("Total size:   %s\n", humanize.IBytes(uint64(mi.Info.TotalSize())))
			cmd.Printf("Private:      %t\n", mi.Info.Private)
			if source, ok := mi.Info.Extra["source"].(string); ok {
				cmd.Printf("Source:       %s\n", source)
			}

			files := mi.Info.FileList()
			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{f.Path, humanize.IBytes(uint64(f.Length))})
			}
			cmd.Println(renderTable(
				[]string{"File", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
