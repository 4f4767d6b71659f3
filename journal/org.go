package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block suitable for
// pasting into a written journal. It keeps all structured facts in a
// PROPERTIES drawer for easy search and leaves narrative placeholders
// (Thesis/Execution/Review) to fill in by hand.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s (%s)", t.Ticker, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ENTRY_DATE: %s\n", t.EntryDate.Format(DateFormat)))
	b.WriteString(fmt.Sprintf(":TICKER: %s\n", t.Ticker))
	b.WriteString(fmt.Sprintf(":SETUP: %s\n", t.Setup))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %g\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %g\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":TARGET: %g\n", t.Target))
	b.WriteString(fmt.Sprintf(":SIZE: %g\n", t.Size))
	b.WriteString(fmt.Sprintf(":RR: %s\n", FormatRR(t.RR)))
	if t.Closed {
		b.WriteString(fmt.Sprintf(":EXIT_DATE: %s\n", t.ExitDate.Format(DateFormat)))
		b.WriteString(fmt.Sprintf(":EXIT_PRICE: %g\n", t.ExitPrice))
		b.WriteString(fmt.Sprintf(":PL: %.2f\n", t.PL))
		b.WriteString(fmt.Sprintf(":PL_PCT: %.2f\n", t.PLPercent))
		b.WriteString(fmt.Sprintf(":HOLDING_DAYS: %d\n", t.HoldingDays))
	}
	if t.Screenshot != "" {
		b.WriteString(fmt.Sprintf(":SCREENSHOT: %s\n", t.Screenshot))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	if t.Notes != "" {
		b.WriteString("*** Notes\n")
		b.WriteString(fmt.Sprintf("- %s\n\n", t.Notes))
	}
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
