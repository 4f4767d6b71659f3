package journal

import (
	"math"
	"time"
)

// Derived holds the calculator outputs for a closed trade.
type Derived struct {
	PL          float64
	PLPercent   float64
	RR          float64
	HoldingDays int
}

// Derive computes the derived fields of a closed trade from its primary
// fields, with 2-decimal rounding applied to each result.
//
// Chronological order of the dates is not checked: a negative holding period
// is returned as entered so the caller can surface the data-entry error
// instead of silently correcting it. The same applies to a stop or target on
// the wrong side of the entry; only an exactly-zero risk per unit turns the
// R/R ratio into the infinite sentinel.
func Derive(entryDate, exitDate time.Time, entry, exit, stop, target, size float64, dir Direction) Derived {
	d := Derived{
		HoldingDays: int(exitDate.Sub(entryDate).Hours() / 24),
		RR:          rrRatio(entry, stop, target),
	}

	pl := (exit - entry) * size
	if dir == Short {
		pl = -pl
	}
	d.PL = round2(pl)

	// Defined 0 sentinel instead of a division fault on a zero-cost basis.
	if base := entry * size; base != 0 {
		d.PLPercent = round2(pl / base * 100)
	}

	return d
}

// rrRatio is reward per unit over risk per unit. A zero risk denominator
// (entry price equal to stop) yields +Inf, which is a sentinel value here,
// not an error.
func rrRatio(entry, stop, target float64) float64 {
	risk := entry - stop
	if risk == 0 {
		return math.Inf(1)
	}
	return round2((target - entry) / risk)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
