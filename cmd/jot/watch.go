package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jotvault/jot"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data directory and re-list on external changes",
	Long: `Watch keeps the collection loaded and re-lists it whenever the
store file is modified by another process. Only the file backend
supports watching.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		repo, _, err := openRepo(ctx)
		if err != nil {
			fatal("Failed to open notes", err)
		}

		events, err := repo.Watch(ctx)
		if err != nil {
			fatal("Failed to watch store", err)
		}

		fmt.Println("Watching for changes (ctrl-c to stop)...")
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				fmt.Println("\nCollection changed:")
				for _, n := range jot.Filter(repo.All(), jot.Query{}) {
					printNote(n)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
