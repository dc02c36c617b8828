package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jotvault/jot/pkg/core"
)

var (
	newTitle    string
	newContent  string
	newCategory string
	newFavorite bool
	newSuggest  bool
	newEnhance  bool
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a note",
	Long: `Create a note with the given content. With --suggest the assistant
proposes a title and category; with --enhance it rewrites the content.
Assistant failures never block the save.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		category, err := parseCategoryFlag(newCategory)
		if err != nil {
			fatal("Invalid category", err)
		}

		repo, cfg, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		var assistant core.Assistant
		if newSuggest || newEnhance {
			assistant, err = newAssistant(cfg)
			if err != nil {
				fatal("Assistant unavailable", err)
			}
		}

		session := newSession(repo, assistant)
		if _, err := session.OpenForCreate(); err != nil {
			fatal("Failed to open draft", err)
		}

		if newTitle != "" {
			session.SetTitle(newTitle)
		}
		if newContent != "" {
			session.SetContent(newContent)
		}
		if category != "" {
			session.SetCategory(category)
		}
		if newFavorite {
			session.SetFavorite(true)
		}

		if newEnhance {
			if err := session.RequestEnhance(ctx); err != nil {
				fatal("Enhance failed", err)
			}
			session.Wait()
		}
		if newSuggest {
			if err := session.RequestSuggestions(ctx); err != nil {
				fatal("Suggest failed", err)
			}
			session.Wait()
		}

		n, err := session.Commit(ctx)
		if err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note created: %s\n", n.ID)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "Note title")
	newCmd.Flags().StringVar(&newContent, "content", "", "Note content")
	newCmd.Flags().StringVarP(&newCategory, "category", "c", "", "Note category")
	newCmd.Flags().BoolVar(&newFavorite, "favorite", false, "Mark as favorite")
	newCmd.Flags().BoolVar(&newSuggest, "suggest", false, "Ask the assistant for title and category")
	newCmd.Flags().BoolVar(&newEnhance, "enhance", false, "Ask the assistant to rewrite the content")
}
