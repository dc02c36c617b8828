package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jotvault/jot/pkg/core"
)

var (
	editTitle    string
	editContent  string
	editCategory string
	editSuggest  bool
	editEnhance  bool
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit a note",
	Long: `Edit an existing note. Only the fields passed as flags change;
the stored note is untouched until the draft commits.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		category, err := parseCategoryFlag(editCategory)
		if err != nil {
			fatal("Invalid category", err)
		}

		repo, cfg, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		var assistant core.Assistant
		if editSuggest || editEnhance {
			assistant, err = newAssistant(cfg)
			if err != nil {
				fatal("Assistant unavailable", err)
			}
		}

		session := newSession(repo, assistant)
		if _, err := session.OpenForEdit(args[0]); err != nil {
			fatal("Failed to open draft", err)
		}

		if cmd.Flags().Changed("title") {
			session.SetTitle(editTitle)
		}
		if cmd.Flags().Changed("content") {
			session.SetContent(editContent)
		}
		if category != "" {
			session.SetCategory(category)
		}

		if editEnhance {
			if err := session.RequestEnhance(ctx); err != nil {
				fatal("Enhance failed", err)
			}
			session.Wait()
		}
		if editSuggest {
			if err := session.RequestSuggestions(ctx); err != nil {
				fatal("Suggest failed", err)
			}
			session.Wait()
		}

		n, err := session.Commit(ctx)
		if err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note updated: %s\n", n.ID)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVar(&editContent, "content", "", "New content")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
	editCmd.Flags().BoolVar(&editSuggest, "suggest", false, "Ask the assistant for title and category")
	editCmd.Flags().BoolVar(&editEnhance, "enhance", false, "Ask the assistant to rewrite the content")
}
