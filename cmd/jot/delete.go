package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note permanently",
	Long: `Delete permanently removes a note. There is no trash stage; the
action is gated by a confirmation prompt unless --yes is passed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		id := args[0]

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		n, ok := repo.Get(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", id)
			os.Exit(1)
		}

		if !deleteYes {
			title := n.Title
			if title == "" {
				title = "(untitled)"
			}
			if !confirm(fmt.Sprintf("Delete %q? This cannot be undone", title)) {
				fmt.Println("Aborted.")
				return
			}
		}

		if err := repo.Remove(ctx, id); err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Note deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
