package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradelog/analytics"
	"github.com/rustyeddy/tradelog/journal"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Manage the account-balance history",
	Long: `Record and maintain dated account-balance snapshots.

Subcommands:
  add    - Append a snapshot
  list   - Show the history, optionally filtered and sorted
  edit   - Rewrite one snapshot, addressed by its id
  delete - Remove one snapshot by id
  stats  - Drawdown and monthly-change statistics

Examples:
  tradelog balance add 2024-03-31 10500.00
  tradelog balance list --year 2024 --month 3 --sort-by balance --desc
  tradelog balance edit 01HRX... 2024-03-31 10750.00`,
}

var (
	balanceYear   int
	balanceMonth  int
	balanceSortBy string
	balanceDesc   bool
)

var balanceAddCmd = &cobra.Command{
	Use:   "add <YYYY-MM-DD> <amount>",
	Short: "Append a balance snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runBalanceAdd,
}

var balanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the balance history",
	Args:  cobra.NoArgs,
	RunE:  runBalanceList,
}

var balanceEditCmd = &cobra.Command{
	Use:   "edit <id> <YYYY-MM-DD> <amount>",
	Short: "Rewrite one snapshot",
	Args:  cobra.ExactArgs(3),
	RunE:  runBalanceEdit,
}

var balanceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove one snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBalanceDelete,
}

var balanceStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Balance-history statistics",
	Args:  cobra.NoArgs,
	RunE:  runBalanceStats,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.AddCommand(balanceAddCmd)
	balanceCmd.AddCommand(balanceListCmd)
	balanceCmd.AddCommand(balanceEditCmd)
	balanceCmd.AddCommand(balanceDeleteCmd)
	balanceCmd.AddCommand(balanceStatsCmd)

	for _, c := range []*cobra.Command{balanceListCmd, balanceStatsCmd} {
		c.Flags().IntVar(&balanceYear, "year", 0, "restrict to a calendar year")
		c.Flags().IntVar(&balanceMonth, "month", 0, "restrict to a month (1-12)")
	}
	balanceListCmd.Flags().StringVar(&balanceSortBy, "sort-by", "", "sort column: date or balance")
	balanceListCmd.Flags().BoolVar(&balanceDesc, "desc", false, "sort descending")
}

func runBalanceAdd(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return &journal.ValidationError{Field: "balance", Reason: fmt.Sprintf("not a number: %q", args[1])}
	}

	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	snap, err := l.AddSnapshot(args[0], amount)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Recorded %s %.2f (%s)\n", snap.Date.Format(journal.DateFormat), snap.Balance, snap.ID)
	return nil
}

func runBalanceList(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	snaps := l.FilteredHistory(balanceYear, time.Month(balanceMonth))
	switch balanceSortBy {
	case "":
	case "date":
		snaps = analytics.SortHistory(snaps, analytics.ByDate, balanceDesc)
	case "balance":
		snaps = analytics.SortHistory(snaps, analytics.ByBalance, balanceDesc)
	default:
		return fmt.Errorf("unknown sort column %q (want date or balance)", balanceSortBy)
	}

	if len(snaps) == 0 {
		fmt.Println("No balance history.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tBALANCE")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%.2f\n", s.ID, s.Date.Format(journal.DateFormat), s.Balance)
	}
	return w.Flush()
}

func runBalanceEdit(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return &journal.ValidationError{Field: "balance", Reason: fmt.Sprintf("not a number: %q", args[2])}
	}

	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.UpdateSnapshot(args[0], args[1], amount); err != nil {
		return err
	}
	fmt.Println("✓ Snapshot updated")
	return nil
}

func runBalanceDelete(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.DeleteSnapshot(args[0]); err != nil {
		return err
	}
	fmt.Println("✓ Snapshot deleted")
	return nil
}

func runBalanceStats(cmd *cobra.Command, args []string) error {
	l, _, err := openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	analytics.WriteHistoryStats(os.Stdout, l.HistoryStats(balanceYear, time.Month(balanceMonth)))
	return nil
}
