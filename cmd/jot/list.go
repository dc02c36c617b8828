package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/jotvault/jot"
	"github.com/jotvault/jot/pkg/core"
)

var (
	listJSON      bool
	listSearch    string
	listCategory  string
	listFavorites bool
	listGlob      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently updated first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		category, err := parseCategoryFlag(listCategory)
		if err != nil {
			fatal("Invalid category", err)
		}
		if listGlob != "" && !doublestar.ValidatePattern(listGlob) {
			fatal("Invalid glob", fmt.Errorf("bad pattern %q", listGlob))
		}

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		collection := repo.All()
		filtered := jot.Filter(collection, jot.Query{
			Search:        listSearch,
			Category:      category,
			FavoritesOnly: listFavorites,
			TitleGlob:     listGlob,
		})

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if filtered == nil {
				filtered = []core.Note{}
			}
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, n := range filtered {
			printNote(n)
		}

		stats := jot.Counts(collection)
		fmt.Printf("\n%d shown / %d total, %d favorite(s)\n", len(filtered), stats.Total, stats.Favorites)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive search over title and content")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category (General, Personal, Work, Ideas, Urgent)")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only favorited notes")
	listCmd.Flags().StringVar(&listGlob, "glob", "", "Filter titles by glob pattern")
}
