package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rustyeddy/tradelog/journal"
)

// MonthChange is the balance delta for one calendar-month bucket: the last
// balance observed in the bucket minus the previous bucket's last balance.
type MonthChange struct {
	Year   int
	Month  time.Month
	Change float64
}

func (m MonthChange) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// HistoryStats summarizes a balance history.
type HistoryStats struct {
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64 // sample standard deviation

	// MaxDrawdown is the largest decline from a prior peak, as a
	// non-positive number (0 when the balance never dips below its peak).
	MaxDrawdown float64

	MonthlyChange  []MonthChange // buckets ascending by year+month
	MonthsPositive int
	MonthsNegative int
}

// SummarizeHistory computes HistoryStats over the snapshots in table order.
// An empty history yields the zero statistics.
func SummarizeHistory(snaps []journal.BalanceSnapshot) HistoryStats {
	var st HistoryStats
	if len(snaps) == 0 {
		return st
	}

	st.Count = len(snaps)
	st.Min = snaps[0].Balance
	st.Max = snaps[0].Balance

	var sum float64
	peak := math.Inf(-1)
	for _, s := range snaps {
		sum += s.Balance
		if s.Balance < st.Min {
			st.Min = s.Balance
		}
		if s.Balance > st.Max {
			st.Max = s.Balance
		}
		if s.Balance > peak {
			peak = s.Balance
		}
		if dd := s.Balance - peak; dd < st.MaxDrawdown {
			st.MaxDrawdown = dd
		}
	}
	st.Mean = sum / float64(len(snaps))

	if len(snaps) > 1 {
		var ss float64
		for _, s := range snaps {
			d := s.Balance - st.Mean
			ss += d * d
		}
		st.StdDev = math.Sqrt(ss / float64(len(snaps)-1))
	}

	st.MonthlyChange = monthlyChanges(snaps)
	for _, m := range st.MonthlyChange {
		if m.Change > 0 {
			st.MonthsPositive++
		} else if m.Change < 0 {
			st.MonthsNegative++
		}
	}
	return st
}

// monthlyChanges buckets snapshots by calendar month. The last balance per
// bucket follows table order; buckets are compared chronologically. The
// first bucket has no prior baseline and reports a change of 0.
func monthlyChanges(snaps []journal.BalanceSnapshot) []MonthChange {
	type bucket struct {
		year  int
		month time.Month
	}
	last := make(map[bucket]float64)
	var order []bucket
	for _, s := range snaps {
		b := bucket{s.Date.Year(), s.Date.Month()}
		if _, seen := last[b]; !seen {
			order = append(order, b)
		}
		last[b] = s.Balance
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].month < order[j].month
	})

	out := make([]MonthChange, 0, len(order))
	var prev float64
	for i, b := range order {
		var change float64
		if i > 0 {
			change = last[b] - prev
		}
		prev = last[b]
		out = append(out, MonthChange{Year: b.year, Month: b.month, Change: change})
	}
	return out
}

// FilterHistory returns the snapshots whose date falls in the given calendar
// year and/or month. Zero means no constraint on that component. Relative
// order is preserved and the input is never modified; an empty result is a
// valid "no data" outcome, not an error.
func FilterHistory(snaps []journal.BalanceSnapshot, year int, month time.Month) []journal.BalanceSnapshot {
	out := make([]journal.BalanceSnapshot, 0, len(snaps))
	for _, s := range snaps {
		if year != 0 && s.Date.Year() != year {
			continue
		}
		if month != 0 && s.Date.Month() != month {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SortColumn selects the balance-history sort key.
type SortColumn int

const (
	ByDate SortColumn = iota
	ByBalance
)

// SortHistory returns a stably sorted copy of the history. Display order
// only; the backing store is never touched.
func SortHistory(snaps []journal.BalanceSnapshot, col SortColumn, descending bool) []journal.BalanceSnapshot {
	out := append([]journal.BalanceSnapshot(nil), snaps...)

	less := func(i, j int) bool { return out[i].Date.Before(out[j].Date) }
	if col == ByBalance {
		less = func(i, j int) bool { return out[i].Balance < out[j].Balance }
	}
	if descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(out, less)
	return out
}
