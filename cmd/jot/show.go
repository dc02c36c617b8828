package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a note",
	Long:  `Show a note by its ID. Outputs the content by default, or the full record with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		n, ok := repo.Get(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
			os.Exit(1)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(n); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s\n%s · %s\n\n%s\n", title, n.Category, time.UnixMilli(n.UpdatedAt).Format(time.RFC1123), n.Content)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
