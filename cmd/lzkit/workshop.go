package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/snapshot"
	"github.com/lzkit/lzkit/internal/workshop"
)

var workshopCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Run an interactive discovery workshop",
	Long: `Run an interactive discovery workshop in the terminal.

The workshop first reviews any low-confidence answers parked by document
analysis, then walks the unanswered catalog questions in priority order.
Answers are validated as you type them; validation is advisory and never
blocks an answer.

If a previous session was checkpointed, the workshop resumes it; otherwise
a fresh session starts. Progress checkpoints automatically, and a full
snapshot is exported when the workshop ends.

Inside the workshop:
  skip     move on to the next question
  status   show session progress
  gaps     show unanswered critical questions
  quit     end the workshop and export`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		mgr, reg, err := newManager(st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		state := mgr.Resume(ctx, st)
		if len(state.Answers) > 0 {
			fmt.Printf("Resumed session %s (%.0f%% complete, %d answers)\n",
				color.CyanString(state.SessionID), state.Completion, len(state.Answers))
		} else {
			fmt.Printf("Started session %s\n", color.CyanString(state.SessionID))
		}

		w, err := workshop.New(&workshop.Config{
			Sessions: mgr,
			Catalog:  reg,
			Logger:   logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to start workshop: %v\n", err)
			os.Exit(1)
		}
		if err := w.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Final export, regardless of checkpoint cadence.
		final := mgr.State()
		doc := snapshot.Build(final, reg)
		if err := st.SaveCheckpoint(ctx, final, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: saving final checkpoint: %v\n", err)
			os.Exit(1)
		}
		path := snapshot.DefaultPath(cfg.SnapshotDir, final.SessionID)
		if err := snapshot.WriteFile(path, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSession exported to %s\n", color.GreenString(path))
	},
}

func init() {
	rootCmd.AddCommand(workshopCmd)
}
