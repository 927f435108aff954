package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show progress of the stored discovery session",
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
			fmt.Println("No stored session. Run 'lzkit workshop' or 'lzkit analyze' to start one.")
			return
		}

		mgr, _, err := newManager(st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		mgr.Resume(ctx, st)
		s := mgr.Summary()

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Session:"), s.SessionID)
		fmt.Printf("%s %s\n", bold("Started:"), s.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("%s %d/%d questions (%.0f%%)\n", bold("Answered:"), s.Answered, s.TotalQuestions, s.Completion)
		fmt.Printf("%s %d/%d (%.0f%%)\n", bold("Critical:"), s.Critical.Answered, s.Critical.Total, s.Critical.Percentage)
		if s.DocumentsAnalyzed > 0 {
			fmt.Printf("%s %d\n", bold("Documents analyzed:"), s.DocumentsAnalyzed)
		}
		fmt.Printf("%s %d from documents, %d from search, %d from user, %d assumptions\n",
			bold("Sources:"), s.FromDocuments, s.FromSearch, s.FromUser, s.FromAssumptions)

		fmt.Printf("\n%s\n", bold("By category:"))
		for _, cc := range s.ByCategory {
			marker := color.GreenString("✓")
			if cc.Answered < cc.Total {
				marker = color.YellowString("…")
			}
			fmt.Printf("  %s %-24s %d/%d\n", marker, cc.Category, cc.Answered, cc.Total)
		}

		if len(s.MissingCritical) > 0 {
			fmt.Printf("\n%s\n", color.RedString("Missing critical answers:"))
			for _, text := range s.MissingCritical {
				fmt.Printf("  • %s\n", text)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
