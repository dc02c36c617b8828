package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a note as PDF",
	Long:  `Export renders a note as a PDF document. Unlike assistant calls, export failures are reported.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		session := newSession(repo, nil)
		if _, err := session.OpenForEdit(args[0]); err != nil {
			fatal("Failed to open note", err)
		}
		defer session.Discard()

		data, err := session.Export(ctx)
		if err != nil {
			fatal("Failed to export note", err)
		}

		out := exportOut
		if out == "" {
			out = args[0] + ".pdf"
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			fatal("Failed to write PDF", err)
		}
		fmt.Printf("Exported to %s\n", out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to <id>.pdf)")
}
