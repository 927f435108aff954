package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/catalog"
	"github.com/lzkit/lzkit/internal/validate"
)

var checkCmd = &cobra.Command{
	Use:   "check <question-id> <answer>",
	Short: "Validate an answer against best-practice rules",
	Long: `Validate a candidate answer for one catalog question without
recording it.

Validation is advisory: findings flag risky or incomplete answers (an
undersized address space, a backup strategy with no RPO target) but an
answer is never rejected. Questions without a registered rule pass
silently.

Example:
  lzkit check net_001 "10.0.0.0/16"
  lzkit check dr_001 "Nightly backups, RPO 24h, RTO 4h, geo-redundant"`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		questionID := args[0]
		answer := strings.Join(args[1:], " ")

		reg := catalog.Default()
		q, err := reg.Get(questionID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v: %s\n", err, questionID)
			os.Exit(1)
		}

		rules := validate.NewRegistry()
		if !rules.Has(questionID) {
			fmt.Printf("No validation rule for [%s] %s\n", q.ID, q.Text)
			return
		}

		findings := rules.Check(questionID, answer)
		if len(findings) == 0 {
			fmt.Println(color.GreenString("OK — no findings"))
			return
		}
		for _, f := range findings {
			printFinding(f)
		}
	},
}

func printFinding(f validate.Finding) {
	var tag string
	switch f.Severity {
	case validate.SeverityError:
		tag = color.RedString("ERROR")
	case validate.SeverityWarning:
		tag = color.YellowString("WARN")
	case validate.SeveritySuccess:
		tag = color.GreenString("OK")
	default:
		tag = color.CyanString("INFO")
	}
	fmt.Printf("  %s %s\n", tag, f.Message)
	if f.Recommendation != "" {
		fmt.Printf("       %s\n", color.HiBlackString(f.Recommendation))
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
