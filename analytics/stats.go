// Package analytics computes aggregate performance statistics over the trade
// table and the balance history. All functions are pure: they consume the
// loaded tables and never touch the backing stores.
package analytics

import (
	"math"

	"github.com/rustyeddy/tradelog/journal"
)

// Summary aggregates realized performance over the trade table. Only closed
// trades participate; an open trade carries no P/L.
type Summary struct {
	TotalTrades int
	Wins        int
	Losses      int // zero P/L counts as a loss

	WinRate      float64 // percent, always within [0, 100]
	AvgGain      float64
	AvgLoss      float64
	Expectancy   float64
	ProfitFactor float64 // math.Inf(1) when gross losses are zero and wins exist

	NetPL       float64
	AvgTrade    float64
	LargestWin  float64
	LargestLoss float64

	// CumulativePL is the running P/L prefix sum in table order. Table
	// order is insertion order; the engine does not re-sort by date.
	CumulativePL []float64

	StartingBalance float64
	CurrentBalance  float64
}

// Summarize computes the Summary for the given trade table. An empty table
// (or one with no closed trades) yields the zero statistics, never a fault.
func Summarize(trades []journal.TradeRecord, startingBalance float64) Summary {
	s := Summary{
		StartingBalance: startingBalance,
		CurrentBalance:  startingBalance,
	}

	var winSum, lossSum float64
	for _, t := range trades {
		if !t.Closed {
			continue
		}
		s.TotalTrades++
		s.NetPL += t.PL
		s.CumulativePL = append(s.CumulativePL, s.NetPL)
		if t.PL > 0 {
			s.Wins++
			winSum += t.PL
			if t.PL > s.LargestWin {
				s.LargestWin = t.PL
			}
		} else {
			s.Losses++
			lossSum += t.PL
			if t.PL < s.LargestLoss {
				s.LargestLoss = t.PL
			}
		}
	}
	if s.TotalTrades == 0 {
		return s
	}

	s.WinRate = float64(s.Wins) / float64(s.TotalTrades) * 100
	if s.Wins > 0 {
		s.AvgGain = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}
	p := s.WinRate / 100
	s.Expectancy = p*s.AvgGain + (1-p)*s.AvgLoss

	switch {
	case lossSum != 0:
		s.ProfitFactor = winSum / math.Abs(lossSum)
	case winSum > 0:
		s.ProfitFactor = math.Inf(1)
	}

	s.AvgTrade = s.NetPL / float64(s.TotalTrades)
	s.CurrentBalance = startingBalance + s.NetPL
	return s
}

// BalanceImpact reports a trade's P/L as a percentage of the current account
// balance. ok is false when the balance is not positive, where a percentage
// of the base has no meaning.
func BalanceImpact(pl, currentBalance float64) (pct float64, ok bool) {
	if currentBalance <= 0 {
		return 0, false
	}
	return pl / currentBalance * 100, true
}
