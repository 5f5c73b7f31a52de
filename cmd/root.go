// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	inputFlag  string
	outputFlag string
	reportFlag string
	rulesFlag  string
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "megasupervendas",
	Short: "Clean and normalize the MegaSuperVendas sales dataset",
	Long: `megasupervendas reads a raw sales export, repairs inconsistent text,
status, currency and date formats, reconciles product/brand/seller entities,
fills missing values statistically, removes price outliers, recomputes order
totals and writes a cleaned CSV plus a Markdown change report.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inputFlag, "input", "", "Path to the raw sales file (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVar(&outputFlag, "output", "", "Path for the cleaned CSV")
	rootCmd.PersistentFlags().StringVar(&reportFlag, "report", "", "Path for the Markdown change report")
	rootCmd.PersistentFlags().StringVar(&rulesFlag, "rules", "", "Optional YAML file overriding the cleaning ruleset")
}
