// Package ledger is the boundary the presentation layer calls. It wires the
// configured stores to the analytics engine, validates user input, and keeps
// every load-modify-rewrite sequence inside a single call.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradelog/analytics"
	"github.com/rustyeddy/tradelog/config"
	"github.com/rustyeddy/tradelog/journal"
	"github.com/rustyeddy/tradelog/pkg/id"
)

// Ledger owns the authoritative trade table and balance history. The stores
// are its only mutation surface; nothing in memory is updated ahead of a
// successful store write.
type Ledger struct {
	trades  journal.TradeStore
	history journal.BalanceStore
	cfg     *config.Config
	log     *logrus.Logger
	closer  func() error
}

// New builds a Ledger over the store backend selected by cfg.Store.Type.
func New(cfg *config.Config, log *logrus.Logger) (*Ledger, error) {
	if log == nil {
		log = logrus.New()
	}
	l := &Ledger{cfg: cfg, log: log}

	switch cfg.Store.Type {
	case config.StoreCSV:
		l.trades = journal.NewCSVTradeStore(cfg.Store.TradesFile)
		l.history = journal.NewCSVBalanceStore(cfg.Store.HistoryFile)
	case config.StoreSQLite:
		db, err := journal.OpenSQLite(cfg.Store.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		l.trades = db.Trades()
		l.history = db.Balances()
		l.closer = db.Close
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}
	return l, nil
}

// NewWithStores wires explicit repositories; used by tests and embedders.
func NewWithStores(trades journal.TradeStore, history journal.BalanceStore, cfg *config.Config, log *logrus.Logger) *Ledger {
	if log == nil {
		log = logrus.New()
	}
	return &Ledger{trades: trades, history: history, cfg: cfg, log: log}
}

func (l *Ledger) Close() error {
	if l.closer != nil {
		return l.closer()
	}
	return nil
}

// TradeInput carries the primary fields of a trade as submitted. Dates
// arrive in YYYY-MM-DD form; derived values cannot be supplied and are
// always recomputed here.
type TradeInput struct {
	EntryDate  string
	Ticker     string
	Setup      string
	Direction  string // empty defaults to Long
	EntryPrice float64
	StopLoss   float64
	Target     float64
	Size       float64
	ExitDate   string
	ExitPrice  float64 // zero leaves the trade open
	Notes      string
	Screenshot string
}

// SubmitTrade validates the input, derives the calculated fields, and
// appends the record. Nothing is persisted when validation fails.
func (l *Ledger) SubmitTrade(in TradeInput) (journal.TradeRecord, error) {
	var zero journal.TradeRecord

	entryDate, err := parseDate("entry_date", in.EntryDate)
	if err != nil {
		return zero, err
	}
	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" {
		return zero, &journal.ValidationError{Field: "ticker", Reason: "required"}
	}
	dir, err := journal.ParseDirection(in.Direction)
	if err != nil {
		return zero, err
	}
	if in.EntryPrice <= 0 {
		return zero, &journal.ValidationError{Field: "entry_price", Reason: "must be positive"}
	}
	if in.Size <= 0 {
		return zero, &journal.ValidationError{Field: "size", Reason: "must be positive"}
	}

	t := journal.TradeRecord{
		ID:         id.New(),
		EntryDate:  entryDate,
		Ticker:     ticker,
		Setup:      in.Setup,
		Direction:  dir,
		EntryPrice: in.EntryPrice,
		StopLoss:   in.StopLoss,
		Target:     in.Target,
		Size:       in.Size,
		ExitPrice:  in.ExitPrice,
		Notes:      in.Notes,
		Screenshot: in.Screenshot,
	}
	if in.ExitPrice != 0 {
		if in.ExitPrice < 0 {
			return zero, &journal.ValidationError{Field: "exit_price", Reason: "must be positive"}
		}
		t.ExitDate, err = parseDate("exit_date", in.ExitDate)
		if err != nil {
			return zero, err
		}
	}
	t.Recompute()

	if err := l.trades.Append(t); err != nil {
		return zero, fmt.Errorf("save trade: %w", err)
	}
	return t, nil
}

// Trades returns the full ordered trade table. An unreadable or corrupt
// table degrades to an empty one with a logged warning; reading must never
// take the process down.
func (l *Ledger) Trades() []journal.TradeRecord {
	trades, err := l.trades.LoadAll()
	if err != nil {
		l.log.WithError(err).Warn("trade table unreadable, treating as empty")
		return nil
	}
	return trades
}

// DeleteTrade removes the trade at the given position in table order.
// The table is reloaded immediately before the rewrite so the removal
// affects exactly one row. Unlike reads, a load failure here propagates:
// rewriting on top of an unreadable table would discard data.
func (l *Ledger) DeleteTrade(index int) error {
	trades, err := l.trades.LoadAll()
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	if index < 0 || index >= len(trades) {
		return journal.ErrNotFound
	}
	trades = append(trades[:index], trades[index+1:]...)
	return l.trades.RewriteAll(trades)
}

// DeleteTradeByID removes the trade with the given id.
func (l *Ledger) DeleteTradeByID(tradeID string) error {
	trades, err := l.trades.LoadAll()
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	for i, t := range trades {
		if t.ID == tradeID {
			return l.trades.RewriteAll(append(trades[:i], trades[i+1:]...))
		}
	}
	return journal.ErrNotFound
}

// AddSnapshot appends one balance observation, assigning its id.
func (l *Ledger) AddSnapshot(date string, balance float64) (journal.BalanceSnapshot, error) {
	d, err := parseDate("date", date)
	if err != nil {
		return journal.BalanceSnapshot{}, err
	}
	snap := journal.BalanceSnapshot{ID: id.New(), Date: d, Balance: balance}
	if err := l.history.Append(snap); err != nil {
		return journal.BalanceSnapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// UpdateSnapshot rewrites the snapshot with the given id in place, leaving
// every other row untouched.
func (l *Ledger) UpdateSnapshot(snapID, date string, balance float64) error {
	d, err := parseDate("date", date)
	if err != nil {
		return err
	}
	snaps, err := l.history.LoadAll()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for i := range snaps {
		if snaps[i].ID == snapID {
			snaps[i].Date = d
			snaps[i].Balance = balance
			return l.history.RewriteAll(snaps)
		}
	}
	return journal.ErrNotFound
}

// DeleteSnapshot removes the snapshot with the given id.
func (l *Ledger) DeleteSnapshot(snapID string) error {
	snaps, err := l.history.LoadAll()
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	for i := range snaps {
		if snaps[i].ID == snapID {
			return l.history.RewriteAll(append(snaps[:i], snaps[i+1:]...))
		}
	}
	return journal.ErrNotFound
}

// History returns the full balance history in table order, degrading to
// empty on a read failure like Trades.
func (l *Ledger) History() []journal.BalanceSnapshot {
	snaps, err := l.history.LoadAll()
	if err != nil {
		l.log.WithError(err).Warn("balance history unreadable, treating as empty")
		return nil
	}
	return snaps
}

// FilteredHistory restricts the history to a calendar year and/or month;
// zero means no constraint.
func (l *Ledger) FilteredHistory(year int, month time.Month) []journal.BalanceSnapshot {
	return analytics.FilterHistory(l.History(), year, month)
}

// Summary computes the trade statistics against the configured starting
// balance.
func (l *Ledger) Summary() analytics.Summary {
	return analytics.Summarize(l.Trades(), l.cfg.Account.StartingBalance)
}

// HistoryStats computes balance-history statistics over the filtered
// history.
func (l *Ledger) HistoryStats(year int, month time.Month) analytics.HistoryStats {
	return analytics.SummarizeHistory(l.FilteredHistory(year, month))
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &journal.ValidationError{Field: field, Reason: "required"}
	}
	d, err := time.Parse(journal.DateFormat, s)
	if err != nil {
		return time.Time{}, &journal.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("want YYYY-MM-DD, got %q", s),
		}
	}
	return d, nil
}
