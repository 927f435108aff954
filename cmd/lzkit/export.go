package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/snapshot"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored session as a JSON snapshot",
	Long: `Export the stored session as a JSON snapshot.

The snapshot is the complete hand-off artifact: every answer with its
source and confidence, a progress summary, and the list of questions
still unanswered. It can be re-imported with 'lzkit import'.

Example:
  lzkit export
  lzkit export --output requirements.json`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		st, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()

		_, found, err := st.LoadLatest(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Fprintln(os.Stderr, "Error: no stored session to export")
			os.Exit(1)
		}

		mgr, reg, err := newManager(st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		state := mgr.Resume(ctx, st)

		path := exportOutput
		if path == "" {
			path = snapshot.DefaultPath(cfg.SnapshotDir, state.SessionID)
		}
		doc := snapshot.Build(state, reg)
		if err := snapshot.WriteFile(path, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported session %s (%d answers, %.0f%% complete) to %s\n",
			state.SessionID, len(state.Answers), state.Completion, color.GreenString(path))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: snapshot dir)")
	rootCmd.AddCommand(exportCmd)
}
