package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/ledger"
)

var (
	cfgFile string
	verbose bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "tradelog",
	Short: "A personal trading-performance ledger",
	Long: `Tradelog records trades and account-balance snapshots and derives
performance metrics from them.

It provides tools for:
  - Recording trades with derived P/L, risk/reward and holding period
  - Keeping an editable account-balance history
  - Win rate, expectancy, profit factor and drawdown statistics
  - Monthly performance aggregates with year/month filtering
  - CSV or SQLite storage backends`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "tradelog.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// openLedger loads the configuration and wires the ledger over it. A missing
// config file means defaults.
func openLedger() (*ledger.Ledger, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return l, cfg, nil
}
