package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/analytics"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/ledger"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and browse trades",
	Long: `Record, list and delete trades in the ledger.

Subcommands:
  add    - Record a new trade (derived fields are computed on save)
  list   - Show the trade table with P/L and balance impact
  show   - Render one trade as an Org-mode journal block
  delete - Remove a trade by position or id

Examples:
  tradelog trade add --date 2024-03-01 --ticker aapl --entry 100 --stop 90 --target 130 --size 10
  tradelog trade list
  tradelog trade delete 2`,
}

var tradeInput ledger.TradeInput

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the trade table",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <index|id>",
	Short: "Render one trade as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <index|id>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	f := tradeAddCmd.Flags()
	f.StringVar(&tradeInput.EntryDate, "date", "", "entry date (YYYY-MM-DD)")
	f.StringVar(&tradeInput.Ticker, "ticker", "", "instrument ticker")
	f.StringVar(&tradeInput.Setup, "setup", "", "setup / trade category")
	f.StringVar(&tradeInput.Direction, "direction", "", "Long or Short (default Long)")
	f.Float64Var(&tradeInput.EntryPrice, "entry", 0, "entry price")
	f.Float64Var(&tradeInput.StopLoss, "stop", 0, "stop-loss price")
	f.Float64Var(&tradeInput.Target, "target", 0, "target price")
	f.Float64Var(&tradeInput.Size, "size", 0, "position size")
	f.StringVar(&tradeInput.ExitDate, "exit-date", "", "exit date (YYYY-MM-DD)")
	f.Float64Var(&tradeInput.ExitPrice, "exit", 0, "exit price (omit to leave the trade open)")
	f.StringVar(&tradeInput.Notes, "notes", "", "free-text notes")
	f.StringVar(&tradeInput.Screenshot, "screenshot", "", "path to a chart screenshot")

	tradeAddCmd.MarkFlagRequired("date")
	tradeAddCmd.MarkFlagRequired("ticker")
	tradeAddCmd.MarkFlagRequired("entry")
	tradeAddCmd.MarkFlagRequired("size")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	t, err := l.SubmitTrade(tradeInput)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Saved trade %s %s (%s)\n", t.Ticker, t.EntryDate.Format(journal.DateFormat), t.ID)
	if t.Closed {
		fmt.Printf("  P/L: %.2f (%.2f%%)  R/R: %s  Held: %d days\n",
			t.PL, t.PLPercent, journal.FormatRR(t.RR), t.HoldingDays)
	} else {
		fmt.Printf("  Open position  R/R: %s\n", journal.FormatRR(t.RR))
	}
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	trades := l.Trades()
	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}
	current := l.Summary().CurrentBalance

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATE\tTICKER\tSETUP\tDIR\tENTRY\tEXIT\tP/L\tP/L %\tR/R\tIMPACT")
	for i, t := range trades {
		exit, pl, plPct, impact := "", "", "", "n/a"
		if t.Closed {
			exit = fmt.Sprintf("%g", t.ExitPrice)
			pl = fmt.Sprintf("%.2f", t.PL)
			plPct = fmt.Sprintf("%.2f", t.PLPercent)
			if pct, ok := analytics.BalanceImpact(t.PL, current); ok {
				impact = fmt.Sprintf("%.2f%%", pct)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%g\t%s\t%s\t%s\t%s\t%s\n",
			i, t.EntryDate.Format(journal.DateFormat), t.Ticker, t.Setup, t.Direction,
			t.EntryPrice, exit, pl, plPct, journal.FormatRR(t.RR), impact)
	}
	return w.Flush()
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	t, _, err := findTrade(l.Trades(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(journal.FormatTradeOrg(t))
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	if index, convErr := strconv.Atoi(args[0]); convErr == nil {
		if err := l.DeleteTrade(index); err != nil {
			return err
		}
	} else if err := l.DeleteTradeByID(args[0]); err != nil {
		return err
	}
	fmt.Println("✓ Trade deleted")
	return nil
}

// findTrade resolves a positional index or a record id against the table.
func findTrade(trades []journal.TradeRecord, key string) (journal.TradeRecord, int, error) {
	if index, err := strconv.Atoi(key); err == nil {
		if index < 0 || index >= len(trades) {
			return journal.TradeRecord{}, 0, journal.ErrNotFound
		}
		return trades[index], index, nil
	}
	for i, t := range trades {
		if t.ID == key {
			return t, i, nil
		}
	}
	return journal.TradeRecord{}, 0, journal.ErrNotFound
}
