package journal

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the day-granularity date format used in both stores.
const DateFormat = "2006-01-02"

// Direction selects the sign convention for a trade's P/L: a Long profits
// when the exit is above the entry, a Short when it is below.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// ParseDirection normalizes user input to a Direction. Empty input defaults
// to Long, which matches plain buy/sell records that carry no side.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	}
	return "", &ValidationError{Field: "direction", Reason: fmt.Sprintf("unknown direction %q", s)}
}

// TradeRecord is one row of the trade ledger.
//
// The derived fields (PL, PLPercent, RR, HoldingDays) are always recomputed
// from the primary fields at save time and are never accepted from user
// input. A trade with no exit price is open: its P/L fields are absent, not
// zero, and serialize as empty.
type TradeRecord struct {
	ID        string
	EntryDate time.Time
	Ticker    string // stored uppercased
	Setup     string
	Direction Direction

	EntryPrice float64
	StopLoss   float64
	Target     float64
	Size       float64

	ExitDate  time.Time
	ExitPrice float64
	Closed    bool

	PL          float64
	PLPercent   float64
	RR          float64 // math.Inf(1) when entry price equals stop
	HoldingDays int

	Notes      string
	Screenshot string
}

// Recompute refreshes the derived fields from the primary fields. The R/R
// ratio depends only on entry, stop and target and is kept for open trades;
// the P/L fields and holding period are cleared until an exit price exists.
func (t *TradeRecord) Recompute() {
	t.Closed = t.ExitPrice != 0
	if !t.Closed {
		t.PL, t.PLPercent, t.HoldingDays = 0, 0, 0
		t.RR = rrRatio(t.EntryPrice, t.StopLoss, t.Target)
		return
	}
	d := Derive(t.EntryDate, t.ExitDate, t.EntryPrice, t.ExitPrice,
		t.StopLoss, t.Target, t.Size, t.Direction)
	t.PL = d.PL
	t.PLPercent = d.PLPercent
	t.RR = d.RR
	t.HoldingDays = d.HoldingDays
}
