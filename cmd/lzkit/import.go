package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Import a session snapshot into the database",
	Long: `Import a previously exported snapshot file and store it as the
current session.

Only the answer records in the snapshot are authoritative; summary and
gap sections are recomputed against the current catalog, and answers to
question ids no longer in the catalog are dropped with a warning.

Example:
  lzkit import .lzkit/snapshots/discovery_discovery-3f2a91c0.json`,
	Args: cobra.ExactArgs(1),
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

		src := snapshot.FileSource{Path: args[0]}
		if _, found, err := src.LoadLatest(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		} else if !found {
			fmt.Fprintf(os.Stderr, "Error: %s holds no session\n", args[0])
			os.Exit(1)
		}

		state := mgr.Resume(ctx, src)
		doc := snapshot.Build(state, reg)
		if err := st.SaveCheckpoint(ctx, state, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: storing imported session: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported session %s (%d answers, %.0f%% complete)\n",
			color.CyanString(state.SessionID), len(state.Answers), state.Completion)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
