package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/ai"
	"github.com/lzkit/lzkit/internal/docs"
	"github.com/lzkit/lzkit/internal/snapshot"
)

var analyzeDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Extract answers from documents in the documents directory",
	Long: `Analyze uploaded documents and extract answers to unanswered
catalog questions.

Each unanswered question is matched against the document corpus and sent
to the extraction model. High-confidence answers are recorded directly;
low-confidence answers are parked for review in the next workshop. A
question that already has an answer is never touched.

Requires ANTHROPIC_API_KEY. Documents are read from the configured
documents directory (default "documents"); only text, markdown, and JSON
files are analyzed.

Example:
  lzkit analyze
  lzkit analyze --documents ./requirements-docs`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if err := cfg.ValidateForAnalysis(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if analyzeDir != "" {
			cfg.DocumentsDir = analyzeDir
		}

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
		fmt.Printf("Session %s: analyzing %s\n", color.CyanString(state.SessionID), cfg.DocumentsDir)

		oracle, err := ai.New(ai.Config{
			APIKey: cfg.AnthropicAPIKey,
			Model:  cfg.Model,
			Logger: logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		analyzer, err := docs.NewAnalyzer(docs.AnalyzerConfig{
			Store:       docs.DirStore{Dir: cfg.DocumentsDir},
			Extractor:   docs.TextExtractor{},
			Oracle:      oracle,
			Sessions:    mgr,
			Catalog:     reg,
			Logger:      logger,
			TopN:        cfg.SearchTopN,
			Concurrency: cfg.Concurrency,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		result, err := analyzer.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: analysis failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nAnalyzed %d unanswered questions:\n", result.Questions)
		fmt.Printf("  %s %d answered\n", color.GreenString("✓"), result.Accepted)
		fmt.Printf("  %s %d pending review (low confidence)\n", color.YellowString("?"), result.Deferred)
		fmt.Printf("  %s %d no answer found\n", color.HiBlackString("-"), result.NoAnswer)
		if result.Failed > 0 {
			fmt.Printf("  %s %d failed (see logs)\n", color.RedString("✗"), result.Failed)
		}

		final := mgr.State()
		doc := snapshot.Build(final, reg)
		if err := st.SaveCheckpoint(ctx, final, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: saving checkpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSession is now %.0f%% complete. Run %s to review and fill gaps.\n",
			final.Completion, color.CyanString("lzkit workshop"))
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDir, "documents", "", "documents directory (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
}
