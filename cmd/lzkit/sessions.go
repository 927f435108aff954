package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sessionsPrune int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored discovery sessions",
	Long: `List every session stored in the database, most recently updated
first.

With --prune=N, old checkpoints beyond the newest N per session are
deleted to keep the database small. Sessions themselves are never
deleted.

Example:
  lzkit sessions
  lzkit sessions --prune=10`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		if sessionsPrune > 0 {
			deleted, err := st.PruneCheckpoints(ctx, sessionsPrune)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Pruned %d old checkpoint(s)\n", deleted)
		}

		sessions, err := st.Sessions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(sessions) == 0 {
			fmt.Println("No stored sessions.")
			return
		}

		fmt.Printf("%-28s %-17s %-17s %9s %12s\n", "SESSION", "CREATED", "UPDATED", "PROGRESS", "CHECKPOINTS")
		for _, s := range sessions {
			fmt.Printf("%-28s %-17s %-17s %8.0f%% %12d\n",
				color.CyanString(s.ID),
				s.CreatedAt.Format("2006-01-02 15:04"),
				s.UpdatedAt.Format("2006-01-02 15:04"),
				s.Completion, s.Checkpoints)
		}
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsPrune, "prune", 0, "keep only the newest N checkpoints per session")
	rootCmd.AddCommand(sessionsCmd)
}
