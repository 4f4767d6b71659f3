package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Trading performance statistics",
	Long: `Compute win rate, expectancy, profit factor and account performance
over the full trade table. Only closed trades participate.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	analytics.WriteSummary(os.Stdout, l.Summary())
	return nil
}
