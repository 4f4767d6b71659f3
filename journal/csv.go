package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RRInfinite is the serialized sentinel for the R/R ratio of a zero-risk
// trade. "Infinite" is accepted on read for tables written by older tools.
const RRInfinite = "inf"

var tradeHeader = []string{
	"id", "entry_date", "ticker", "setup", "direction",
	"entry_price", "stop_loss", "target", "size",
	"exit_date", "exit_price", "pl", "pl_percent", "rr", "holding_days",
	"notes", "screenshot",
}

var balanceHeader = []string{"id", "date", "balance"}

// CSVTradeStore persists the trade table as a header-plus-rows CSV file.
// Derived numeric fields are written with the 2-decimal rounding already
// applied; primary prices keep full precision.
type CSVTradeStore struct {
	path string
}

func NewCSVTradeStore(path string) *CSVTradeStore {
	return &CSVTradeStore{path: path}
}

func (s *CSVTradeStore) Append(t TradeRecord) error {
	return appendRow(s.path, tradeHeader, encodeTrade(t))
}

func (s *CSVTradeStore) LoadAll() ([]TradeRecord, error) {
	rows, err := readRows(s.path, len(tradeHeader))
	if err != nil || rows == nil {
		return nil, err
	}
	trades := make([]TradeRecord, 0, len(rows))
	for i, row := range rows {
		t, err := decodeTrade(row)
		if err != nil {
			return nil, &ParseError{File: s.path, Line: i + 2, Err: err}
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func (s *CSVTradeStore) RewriteAll(trades []TradeRecord) error {
	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, encodeTrade(t))
	}
	return rewrite(s.path, tradeHeader, rows)
}

// CSVBalanceStore persists the balance history as a header-plus-rows CSV
// file, one row per snapshot with its surrogate id first.
type CSVBalanceStore struct {
	path string
}

func NewCSVBalanceStore(path string) *CSVBalanceStore {
	return &CSVBalanceStore{path: path}
}

func (s *CSVBalanceStore) Append(b BalanceSnapshot) error {
	return appendRow(s.path, balanceHeader, encodeSnapshot(b))
}

func (s *CSVBalanceStore) LoadAll() ([]BalanceSnapshot, error) {
	rows, err := readRows(s.path, len(balanceHeader))
	if err != nil || rows == nil {
		return nil, err
	}
	snaps := make([]BalanceSnapshot, 0, len(rows))
	for i, row := range rows {
		b, err := decodeSnapshot(row)
		if err != nil {
			return nil, &ParseError{File: s.path, Line: i + 2, Err: err}
		}
		snaps = append(snaps, b)
	}
	return snaps, nil
}

func (s *CSVBalanceStore) RewriteAll(snaps []BalanceSnapshot) error {
	rows := make([][]string, 0, len(snaps))
	for _, b := range snaps {
		rows = append(rows, encodeSnapshot(b))
	}
	return rewrite(s.path, balanceHeader, rows)
}

// appendRow adds one data row, writing the header first when the file is new.
func appendRow(path string, header, row []string) error {
	_, statErr := os.Stat(path)
	newFile := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	werr := error(nil)
	if newFile {
		werr = w.Write(header)
	}
	if werr == nil {
		werr = w.Write(row)
	}
	w.Flush()
	if werr == nil {
		werr = w.Error()
	}
	if werr != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, werr)
	}
	return f.Close()
}

// readRows returns the data rows of the table, nil when no file exists.
func readRows(path string, arity int) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = arity
	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// rewrite replaces the whole table in one step: the new content is written to
// a temp file in the same directory and renamed over the original, so a
// failed write never leaves a half-rewritten table behind.
func rewrite(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}

	w := csv.NewWriter(tmp)
	werr := w.Write(header)
	if werr == nil {
		werr = w.WriteAll(rows)
	}
	if werr == nil {
		werr = tmp.Close()
	} else {
		tmp.Close()
	}
	if werr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, werr)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func encodeTrade(t TradeRecord) []string {
	exitDate, exitPrice, pl, plPct, holding := "", "", "", "", ""
	if t.Closed {
		exitDate = t.ExitDate.Format(DateFormat)
		exitPrice = fnum(t.ExitPrice)
		pl = f2(t.PL)
		plPct = f2(t.PLPercent)
		holding = strconv.Itoa(t.HoldingDays)
	}
	return []string{
		t.ID,
		t.EntryDate.Format(DateFormat),
		t.Ticker,
		t.Setup,
		string(t.Direction),
		fnum(t.EntryPrice),
		fnum(t.StopLoss),
		fnum(t.Target),
		fnum(t.Size),
		exitDate,
		exitPrice,
		pl,
		plPct,
		FormatRR(t.RR),
		holding,
		t.Notes,
		t.Screenshot,
	}
}

func decodeTrade(row []string) (TradeRecord, error) {
	var t TradeRecord
	var err error

	t.ID = row[0]
	if t.EntryDate, err = parseDateField("entry_date", row[1]); err != nil {
		return t, err
	}
	t.Ticker = row[2]
	t.Setup = row[3]
	if t.Direction, err = ParseDirection(row[4]); err != nil {
		return t, err
	}
	if t.EntryPrice, err = parseFloatField("entry_price", row[5]); err != nil {
		return t, err
	}
	if t.StopLoss, err = parseFloatField("stop_loss", row[6]); err != nil {
		return t, err
	}
	if t.Target, err = parseFloatField("target", row[7]); err != nil {
		return t, err
	}
	if t.Size, err = parseFloatField("size", row[8]); err != nil {
		return t, err
	}
	if t.RR, err = ParseRR(row[13]); err != nil {
		return t, err
	}
	t.Notes = row[15]
	t.Screenshot = row[16]

	// An empty exit price marks an open trade; the remaining derived
	// columns are empty as well and stay at their zero values.
	if row[10] == "" {
		return t, nil
	}
	t.Closed = true
	if t.ExitDate, err = parseDateField("exit_date", row[9]); err != nil {
		return t, err
	}
	if t.ExitPrice, err = parseFloatField("exit_price", row[10]); err != nil {
		return t, err
	}
	if t.PL, err = parseFloatField("pl", row[11]); err != nil {
		return t, err
	}
	if t.PLPercent, err = parseFloatField("pl_percent", row[12]); err != nil {
		return t, err
	}
	if t.HoldingDays, err = strconv.Atoi(row[14]); err != nil {
		return t, fmt.Errorf("holding_days: %w", err)
	}
	return t, nil
}

func encodeSnapshot(b BalanceSnapshot) []string {
	return []string{b.ID, b.Date.Format(DateFormat), fnum(b.Balance)}
}

func decodeSnapshot(row []string) (BalanceSnapshot, error) {
	var b BalanceSnapshot
	var err error

	b.ID = row[0]
	if b.Date, err = parseDateField("date", row[1]); err != nil {
		return b, err
	}
	if b.Balance, err = parseFloatField("balance", row[2]); err != nil {
		return b, err
	}
	return b, nil
}

// FormatRR serializes an R/R ratio, mapping +Inf to the literal sentinel.
func FormatRR(x float64) string {
	if math.IsInf(x, 1) {
		return RRInfinite
	}
	return f2(x)
}

// ParseRR is the inverse of FormatRR.
func ParseRR(s string) (float64, error) {
	if s == RRInfinite || s == "Infinite" {
		return math.Inf(1), nil
	}
	return parseFloatField("rr", s)
}

func parseFloatField(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func parseDateField(field, s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func fnum(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }

func f2(x float64) string { return strconv.FormatFloat(x, 'f', 2, 64) }
