package journal

import "time"

// BalanceSnapshot is one (date, balance) observation of account equity.
//
// The ID is assigned once at creation and is the only key edits and deletes
// address. Two snapshots may share the same date and balance (intraday
// corrections); table order is insertion order.
type BalanceSnapshot struct {
	ID      string
	Date    time.Time
	Balance float64
}
