package analytics

import (
	"fmt"
	"io"
	"math"
)

// WriteSummary renders the trade summary as a plain-text report.
func WriteSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trading Performance")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Closed Trades: %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Avg Gain:      %.2f\n", s.AvgGain)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "Expectancy:    %.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Profit Factor: %s\n", formatRatio(s.ProfitFactor))
	fmt.Fprintf(w, "Largest Win:   %.2f\n", s.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", s.LargestLoss)
	fmt.Fprintf(w, "Avg Trade:     %.2f\n", s.AvgTrade)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance:   %.2f\n", s.StartingBalance)
	fmt.Fprintf(w, "Current Balance: %.2f\n", s.CurrentBalance)
	fmt.Fprintf(w, "Net P/L:         %.2f\n", s.NetPL)
	fmt.Fprintln(w)
}

// WriteHistoryStats renders the balance-history statistics as a plain-text
// report.
func WriteHistoryStats(w io.Writer, st HistoryStats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Balance History")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Snapshots:    %d\n", st.Count)
	fmt.Fprintf(w, "Mean:         %.2f\n", st.Mean)
	fmt.Fprintf(w, "Min:          %.2f\n", st.Min)
	fmt.Fprintf(w, "Max:          %.2f\n", st.Max)
	fmt.Fprintf(w, "Std Dev:      %.2f\n", st.StdDev)
	fmt.Fprintf(w, "Max Drawdown: %.2f\n", st.MaxDrawdown)

	if len(st.MonthlyChange) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Monthly Change")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, m := range st.MonthlyChange {
			fmt.Fprintf(w, "%s  %+.2f\n", m, m.Change)
		}
		fmt.Fprintf(w, "Months Positive: %d\n", st.MonthsPositive)
		fmt.Fprintf(w, "Months Negative: %d\n", st.MonthsNegative)
	}
	fmt.Fprintln(w)
}

func formatRatio(x float64) string {
	if math.IsInf(x, 1) {
		return "Infinite"
	}
	return fmt.Sprintf("%.2f", x)
}
