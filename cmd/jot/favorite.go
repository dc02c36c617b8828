package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:     "favorite [id]",
	Aliases: []string{"fav"},
	Short:   "Toggle the favorite flag on a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		n, ok, err := repo.ToggleFavorite(ctx, args[0])
		if err != nil {
			fatal("Failed to toggle favorite", err)
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "Note not found: %s\n", args[0])
			os.Exit(1)
		}

		if n.Favorite {
			fmt.Printf("Favorited: %s\n", n.ID)
		} else {
			fmt.Printf("Unfavorited: %s\n", n.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
}
