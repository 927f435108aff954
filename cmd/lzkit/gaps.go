package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/catalog"
)

var (
	gapsCritical bool
	gapsPriority string
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List unanswered questions in the stored session",
	Long: `List unanswered catalog questions for the stored session, grouped
by category.

Example:
  lzkit gaps                       # all unanswered questions
  lzkit gaps --critical            # critical only
  lzkit gaps --priority=high       # one priority level`,
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
			fmt.Println("No stored session. Every question is a gap; run 'lzkit workshop' to start.")
			return
		}

		mgr, _, err := newManager(st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		mgr.Resume(ctx, st)

		var missing []catalog.Question
		switch {
		case gapsCritical:
			missing = mgr.MissingCritical()
		case gapsPriority != "":
			missing = mgr.Missing(catalog.Priority(gapsPriority))
		default:
			missing = mgr.Missing()
		}

		if len(missing) == 0 {
			fmt.Println(color.GreenString("No gaps — every matching question is answered."))
			return
		}

		fmt.Printf("%d unanswered question(s):\n\n", len(missing))
		var lastCategory catalog.Category
		for _, q := range missing {
			if q.Category != lastCategory {
				fmt.Printf("%s\n", color.New(color.Bold).Sprint(q.Category))
				lastCategory = q.Category
			}
			marker := "  "
			if q.Priority == catalog.PriorityCritical {
				marker = color.RedString("! ")
			}
			fmt.Printf("  %s[%s] %s\n", marker, q.ID, q.Text)
		}
	},
}

func init() {
	gapsCmd.Flags().BoolVar(&gapsCritical, "critical", false, "show only critical questions")
	gapsCmd.Flags().StringVar(&gapsPriority, "priority", "", "filter by priority (critical, high, medium, low)")
	rootCmd.AddCommand(gapsCmd)
}
