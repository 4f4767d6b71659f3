package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/journal"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Account.StartingBalance = 10000
	cfg.Store.TradesFile = filepath.Join(dir, "trades.csv")
	cfg.Store.HistoryFile = filepath.Join(dir, "history.csv")

	log := logrus.New()
	log.SetOutput(os.Stderr)

	l, err := New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l, dir
}

func closedInput(ticker string) TradeInput {
	return TradeInput{
		EntryDate:  "2024-03-01",
		Ticker:     ticker,
		Setup:      "Breakout",
		Direction:  "Long",
		EntryPrice: 100,
		StopLoss:   90,
		Target:     130,
		Size:       10,
		ExitDate:   "2024-03-11",
		ExitPrice:  150,
	}
}

func TestSubmitTradeDerivesAndPersists(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	got, err := l.SubmitTrade(closedInput("aapl "))
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "AAPL", got.Ticker)
	assert.True(t, got.Closed)
	assert.InDelta(t, 500.0, got.PL, 1e-9)
	assert.InDelta(t, 50.0, got.PLPercent, 1e-9)
	assert.InDelta(t, 3.0, got.RR, 1e-9)
	assert.Equal(t, 10, got.HoldingDays)

	trades := l.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, got.ID, trades[0].ID)
}

func TestSubmitTradeOpenPosition(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	in := closedInput("AAPL")
	in.ExitPrice = 0
	in.ExitDate = ""

	got, err := l.SubmitTrade(in)
	require.NoError(t, err)
	assert.False(t, got.Closed)
	assert.Zero(t, got.PL)
}

func TestSubmitTradeValidation(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	tests := []struct {
		name   string
		mutate func(*TradeInput)
		field  string
	}{
		{"bad entry date", func(in *TradeInput) { in.EntryDate = "03/01/2024" }, "entry_date"},
		{"missing entry date", func(in *TradeInput) { in.EntryDate = "" }, "entry_date"},
		{"missing ticker", func(in *TradeInput) { in.Ticker = "  " }, "ticker"},
		{"bad direction", func(in *TradeInput) { in.Direction = "sideways" }, "direction"},
		{"zero entry price", func(in *TradeInput) { in.EntryPrice = 0 }, "entry_price"},
		{"negative size", func(in *TradeInput) { in.Size = -1 }, "size"},
		{"negative exit price", func(in *TradeInput) { in.ExitPrice = -5 }, "exit_price"},
		{"closed without exit date", func(in *TradeInput) { in.ExitDate = "" }, "exit_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := closedInput("AAPL")
			tt.mutate(&in)

			_, err := l.SubmitTrade(in)
			var verr *journal.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	// Nothing persisted by the failed submissions.
	assert.Empty(t, l.Trades())
}

func TestDeleteTradeByIndex(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.SubmitTrade(closedInput("AAPL"))
	require.NoError(t, err)
	_, err = l.SubmitTrade(closedInput("MSFT"))
	require.NoError(t, err)
	_, err = l.SubmitTrade(closedInput("NVDA"))
	require.NoError(t, err)

	require.NoError(t, l.DeleteTrade(1))

	trades := l.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, "AAPL", trades[0].Ticker)
	assert.Equal(t, "NVDA", trades[1].Ticker)

	assert.ErrorIs(t, l.DeleteTrade(5), journal.ErrNotFound)
	assert.ErrorIs(t, l.DeleteTrade(-1), journal.ErrNotFound)
}

func TestDeleteTradeByID(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	first, err := l.SubmitTrade(closedInput("AAPL"))
	require.NoError(t, err)
	_, err = l.SubmitTrade(closedInput("MSFT"))
	require.NoError(t, err)

	require.NoError(t, l.DeleteTradeByID(first.ID))

	trades := l.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "MSFT", trades[0].Ticker)

	assert.ErrorIs(t, l.DeleteTradeByID("no-such-id"), journal.ErrNotFound)
}

func TestSnapshotLifecycle(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	first, err := l.AddSnapshot("2024-01-31", 1000)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := l.AddSnapshot("2024-02-28", 1200)
	require.NoError(t, err)

	require.NoError(t, l.UpdateSnapshot(second.ID, "2024-02-29", 1250))

	snaps := l.History()
	require.Len(t, snaps, 2)
	assert.InDelta(t, 1000.0, snaps[0].Balance, 1e-9)
	assert.InDelta(t, 1250.0, snaps[1].Balance, 1e-9)
	assert.True(t, snaps[1].Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, l.DeleteSnapshot(first.ID))
	snaps = l.History()
	require.Len(t, snaps, 1)
	assert.Equal(t, second.ID, snaps[0].ID)

	assert.ErrorIs(t, l.UpdateSnapshot("no-such-id", "2024-01-01", 1), journal.ErrNotFound)
	assert.ErrorIs(t, l.DeleteSnapshot("no-such-id"), journal.ErrNotFound)
}

func TestAddSnapshotBadDate(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.AddSnapshot("January 31", 1000)
	var verr *journal.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "date", verr.Field)
}

func TestReadsDegradeToEmptyOnCorruptFile(t *testing.T) {
	t.Parallel()

	l, dir := newTestLedger(t)

	_, err := l.SubmitTrade(closedInput("AAPL"))
	require.NoError(t, err)
	_, err = l.AddSnapshot("2024-01-31", 1000)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "trades.csv"), []byte("garbage\nrows"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.csv"), []byte("garbage\nrows"), 0644))

	assert.Empty(t, l.Trades())
	assert.Empty(t, l.History())
	assert.Zero(t, l.Summary().TotalTrades)
}

func TestDeleteOnCorruptTablePropagates(t *testing.T) {
	t.Parallel()

	l, dir := newTestLedger(t)

	_, err := l.SubmitTrade(closedInput("AAPL"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "trades.csv"), []byte("a,b\nc\n"), 0644))

	err = l.DeleteTrade(0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, journal.ErrNotFound)
}

func TestSummaryUsesStartingBalance(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.SubmitTrade(closedInput("AAPL")) // +500
	require.NoError(t, err)

	in := closedInput("MSFT")
	in.ExitPrice = 80 // -200
	_, err = l.SubmitTrade(in)
	require.NoError(t, err)

	s := l.Summary()
	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 300.0, s.NetPL, 1e-9)
	assert.InDelta(t, 10300.0, s.CurrentBalance, 1e-9)
}

func TestFilteredHistoryAndStats(t *testing.T) {
	t.Parallel()

	l, _ := newTestLedger(t)

	_, err := l.AddSnapshot("2024-01-31", 1000)
	require.NoError(t, err)
	_, err = l.AddSnapshot("2024-02-28", 1200)
	require.NoError(t, err)
	_, err = l.AddSnapshot("2024-03-31", 1100)
	require.NoError(t, err)

	march := l.FilteredHistory(2024, time.March)
	require.Len(t, march, 1)
	assert.InDelta(t, 1100.0, march[0].Balance, 1e-9)

	st := l.HistoryStats(0, 0)
	assert.Equal(t, 3, st.Count)
	assert.InDelta(t, -100.0, st.MaxDrawdown, 1e-9)
	assert.Equal(t, 1, st.MonthsPositive)
	assert.Equal(t, 1, st.MonthsNegative)
}

func TestNewRejectsUnknownStoreType(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.Type = "redis"

	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestNewSQLiteBackend(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.Type = config.StoreSQLite
	cfg.Store.DBPath = filepath.Join(t.TempDir(), "ledger.sqlite")

	l, err := New(cfg, nil)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.SubmitTrade(closedInput("AAPL"))
	require.NoError(t, err)
	assert.Len(t, l.Trades(), 1)
}
