package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lzkit/lzkit/internal/validate"
)

var checkNameType string

var checkNameCmd = &cobra.Command{
	Use:   "checkname <name>",
	Short: "Validate a resource name against naming rules",
	Long: `Validate a concrete resource name against general naming rules
and, when --type is given, the recommended per-type prefix.

Example:
  lzkit checkname vnet-hub-prod --type=vnet
  lzkit checkname MyStorageAccount`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		findings := validate.ResourceName(args[0], strings.ToLower(checkNameType))
		if len(findings) == 0 {
			fmt.Println(color.GreenString("OK — no findings"))
			return
		}
		for _, f := range findings {
			printFinding(f)
		}
	},
}

func init() {
	checkNameCmd.Flags().StringVar(&checkNameType, "type", "", "resource type (vnet, subnet, nsg, vm, storage, keyvault, law)")
	rootCmd.AddCommand(checkNameCmd)
}
