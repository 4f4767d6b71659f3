package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradelog/journal"
)

func snap(id string, date time.Time, balance float64) journal.BalanceSnapshot {
	return journal.BalanceSnapshot{ID: id, Date: date, Balance: balance}
}

func quarterHistory() []journal.BalanceSnapshot {
	return []journal.BalanceSnapshot{
		snap("B1", day(2024, 1, 31), 1000),
		snap("B2", day(2024, 2, 28), 1200),
		snap("B3", day(2024, 3, 31), 1100),
	}
}

func TestSummarizeHistory(t *testing.T) {
	t.Parallel()

	st := SummarizeHistory(quarterHistory())

	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, 1100.0, st.Mean, 1e-9)
	assert.InDelta(t, 1000.0, st.Min, 1e-9)
	assert.InDelta(t, 1200.0, st.Max, 1e-9)
	assert.InDelta(t, 100.0, st.StdDev, 1e-9)

	// The only dip is March below February's peak.
	assert.InDelta(t, -100.0, st.MaxDrawdown, 1e-9)

	require.Len(t, st.MonthlyChange, 3)
	assert.Equal(t, "2024-01", st.MonthlyChange[0].String())
	assert.Zero(t, st.MonthlyChange[0].Change)
	assert.InDelta(t, 200.0, st.MonthlyChange[1].Change, 1e-9)
	assert.InDelta(t, -100.0, st.MonthlyChange[2].Change, 1e-9)
	assert.Equal(t, 1, st.MonthsPositive)
	assert.Equal(t, 1, st.MonthsNegative)
}

func TestSummarizeHistoryEmpty(t *testing.T) {
	t.Parallel()

	st := SummarizeHistory(nil)

	assert.Zero(t, st.Count)
	assert.Zero(t, st.Mean)
	assert.Zero(t, st.StdDev)
	assert.Empty(t, st.MonthlyChange)
}

func TestSummarizeHistorySingleSnapshot(t *testing.T) {
	t.Parallel()

	st := SummarizeHistory([]journal.BalanceSnapshot{snap("B1", day(2024, 1, 31), 1000)})

	assert.Equal(t, 1, st.Count)
	assert.Zero(t, st.StdDev)
	assert.Zero(t, st.MaxDrawdown)
	require.Len(t, st.MonthlyChange, 1)
	assert.Zero(t, st.MonthlyChange[0].Change)
}

func TestSummarizeHistoryNeverFallingDrawdownIsZero(t *testing.T) {
	t.Parallel()

	st := SummarizeHistory([]journal.BalanceSnapshot{
		snap("B1", day(2024, 1, 31), 1000),
		snap("B2", day(2024, 2, 28), 1100),
		snap("B3", day(2024, 3, 31), 1300),
	})

	assert.Zero(t, st.MaxDrawdown)
}

func TestMonthlyChangesBucketsOutOfOrderInput(t *testing.T) {
	t.Parallel()

	// Rows recorded out of chronological order: the last balance per month
	// follows table order, buckets are reported chronologically.
	st := SummarizeHistory([]journal.BalanceSnapshot{
		snap("B1", day(2024, 2, 28), 1200),
		snap("B2", day(2024, 1, 31), 1000),
		snap("B3", day(2024, 2, 14), 1150),
	})

	require.Len(t, st.MonthlyChange, 2)
	assert.Equal(t, "2024-01", st.MonthlyChange[0].String())
	assert.Equal(t, "2024-02", st.MonthlyChange[1].String())
	// February's bucket value is 1150, the last February row in the table.
	assert.InDelta(t, 150.0, st.MonthlyChange[1].Change, 1e-9)
}

func TestFilterHistory(t *testing.T) {
	t.Parallel()

	snaps := []journal.BalanceSnapshot{
		snap("B1", day(2023, 3, 31), 900),
		snap("B2", day(2024, 3, 31), 1100),
		snap("B3", day(2024, 4, 30), 1200),
	}

	t.Run("year and month", func(t *testing.T) {
		got := FilterHistory(snaps, 2024, time.March)
		require.Len(t, got, 1)
		assert.Equal(t, "B2", got[0].ID)
	})

	t.Run("year wildcard", func(t *testing.T) {
		got := FilterHistory(snaps, 0, time.March)
		require.Len(t, got, 2)
		assert.Equal(t, "B1", got[0].ID)
		assert.Equal(t, "B2", got[1].ID)
	})

	t.Run("month wildcard", func(t *testing.T) {
		got := FilterHistory(snaps, 2024, 0)
		assert.Len(t, got, 2)
	})

	t.Run("no match", func(t *testing.T) {
		got := FilterHistory(snaps, 2022, 0)
		assert.Empty(t, got)
	})

	t.Run("input untouched", func(t *testing.T) {
		FilterHistory(snaps, 2024, 0)
		assert.Equal(t, "B1", snaps[0].ID)
		assert.Len(t, snaps, 3)
	})
}

func TestSortHistory(t *testing.T) {
	t.Parallel()

	snaps := []journal.BalanceSnapshot{
		snap("B1", day(2024, 3, 31), 1100),
		snap("B2", day(2024, 1, 31), 1000),
		snap("B3", day(2024, 2, 28), 1200),
	}

	byDate := SortHistory(snaps, ByDate, false)
	assert.Equal(t, []string{"B2", "B3", "B1"}, ids(byDate))

	byDateDesc := SortHistory(snaps, ByDate, true)
	assert.Equal(t, []string{"B1", "B3", "B2"}, ids(byDateDesc))

	byBalance := SortHistory(snaps, ByBalance, false)
	assert.Equal(t, []string{"B2", "B1", "B3"}, ids(byBalance))

	// The input order is never modified.
	assert.Equal(t, []string{"B1", "B2", "B3"}, ids(snaps))
}

func TestSortHistoryStableOnTies(t *testing.T) {
	t.Parallel()

	snaps := []journal.BalanceSnapshot{
		snap("B1", day(2024, 1, 31), 1000),
		snap("B2", day(2024, 1, 31), 1000),
		snap("B3", day(2024, 1, 15), 900),
	}

	got := SortHistory(snaps, ByDate, false)
	assert.Equal(t, []string{"B3", "B1", "B2"}, ids(got))
}

func ids(snaps []journal.BalanceSnapshot) []string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.ID
	}
	return out
}
