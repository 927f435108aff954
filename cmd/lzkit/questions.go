package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/catalog"
)

var (
	questionsCategory string
	questionsPriority string
	questionsVerbose  bool
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the discovery question catalog",
	Long: `List the built-in discovery question catalog.

Example:
  lzkit questions
  lzkit questions --category=networking
  lzkit questions --priority=critical
  lzkit questions --full               # include help text and examples`,
	Run: func(cmd *cobra.Command, args []string) {
		reg := catalog.Default()

		var questions []catalog.Question
		switch {
		case questionsCategory != "":
			questions = reg.ByCategory(catalog.Category(questionsCategory))
			if len(questions) == 0 {
				fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", questionsCategory)
				fmt.Fprintln(os.Stderr, "Categories:")
				for _, c := range catalog.Categories() {
					fmt.Fprintf(os.Stderr, "  %s\n", c)
				}
				os.Exit(1)
			}
		case questionsPriority != "":
			questions = reg.ByPriority(catalog.Priority(questionsPriority))
			if len(questions) == 0 {
				fmt.Fprintf(os.Stderr, "Error: unknown priority %q (critical, high, medium, low)\n", questionsPriority)
				os.Exit(1)
			}
		default:
			questions = reg.All()
		}

		bold := color.New(color.Bold).SprintFunc()
		var lastCategory catalog.Category
		for _, q := range questions {
			if q.Category != lastCategory {
				fmt.Printf("\n%s\n", bold(q.Category))
				lastCategory = q.Category
			}
			priority := string(q.Priority)
			if q.Priority == catalog.PriorityCritical {
				priority = color.RedString(priority)
			}
			fmt.Printf("  [%s] (%s) %s\n", q.ID, priority, q.Text)
			if questionsVerbose {
				if q.HelpText != "" {
					fmt.Printf("      %s\n", color.HiBlackString(q.HelpText))
				}
				for _, ex := range q.Examples {
					fmt.Printf("      e.g. %s\n", color.HiBlackString(ex))
				}
			}
		}
		fmt.Printf("\n%d question(s)\n", len(questions))
	},
}

func init() {
	questionsCmd.Flags().StringVar(&questionsCategory, "category", "", "filter by category")
	questionsCmd.Flags().StringVar(&questionsPriority, "priority", "", "filter by priority")
	questionsCmd.Flags().BoolVar(&questionsVerbose, "full", false, "include help text and examples")
	rootCmd.AddCommand(questionsCmd)
}
