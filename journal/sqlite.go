package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the SQLite backend: one database file carrying both the
// trade table and the balance history. Table order is insertion order
// (rowid), matching the CSV backend.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Trades returns the TradeStore view of the database.
func (s *SQLiteStore) Trades() *SQLiteTradeStore { return &SQLiteTradeStore{db: s.db} }

// Balances returns the BalanceStore view of the database.
func (s *SQLiteStore) Balances() *SQLiteBalanceStore { return &SQLiteBalanceStore{db: s.db} }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type SQLiteTradeStore struct {
	db *sql.DB
}

func (s *SQLiteTradeStore) Append(t TradeRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO trades
		(id, entry_date, ticker, setup, direction, entry_price, stop_loss, target, size,
		 exit_date, exit_price, pl, pl_percent, rr, holding_days, notes, screenshot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.EntryDate.Format(DateFormat), t.Ticker, t.Setup, string(t.Direction),
		t.EntryPrice, t.StopLoss, t.Target, t.Size,
		nullDate(t), nullFloat(t.Closed, t.ExitPrice), nullFloat(t.Closed, t.PL),
		nullFloat(t.Closed, t.PLPercent), FormatRR(t.RR), nullInt(t.Closed, t.HoldingDays),
		t.Notes, t.Screenshot,
	)
	return err
}

func (s *SQLiteTradeStore) LoadAll() ([]TradeRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, entry_date, ticker, setup, direction, entry_price, stop_loss, target, size,
		       exit_date, exit_price, pl, pl_percent, rr, holding_days, notes, screenshot
		FROM trades ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var (
			t         TradeRecord
			entryDate string
			direction string
			exitDate  sql.NullString
			exitPrice sql.NullFloat64
			pl        sql.NullFloat64
			plPct     sql.NullFloat64
			rr        string
			holding   sql.NullInt64
		)
		if err := rows.Scan(
			&t.ID, &entryDate, &t.Ticker, &t.Setup, &direction,
			&t.EntryPrice, &t.StopLoss, &t.Target, &t.Size,
			&exitDate, &exitPrice, &pl, &plPct, &rr, &holding,
			&t.Notes, &t.Screenshot,
		); err != nil {
			return nil, err
		}
		if t.EntryDate, err = parseDateField("entry_date", entryDate); err != nil {
			return nil, err
		}
		if t.Direction, err = ParseDirection(direction); err != nil {
			return nil, err
		}
		if t.RR, err = ParseRR(rr); err != nil {
			return nil, err
		}
		if exitPrice.Valid {
			t.Closed = true
			t.ExitPrice = exitPrice.Float64
			t.PL = pl.Float64
			t.PLPercent = plPct.Float64
			t.HoldingDays = int(holding.Int64)
			if t.ExitDate, err = parseDateField("exit_date", exitDate.String); err != nil {
				return nil, err
			}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteTradeStore) RewriteAll(trades []TradeRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		tx.Rollback()
		return err
	}
	for _, t := range trades {
		if _, err := tx.Exec(`
			INSERT INTO trades
			(id, entry_date, ticker, setup, direction, entry_price, stop_loss, target, size,
			 exit_date, exit_price, pl, pl_percent, rr, holding_days, notes, screenshot)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.EntryDate.Format(DateFormat), t.Ticker, t.Setup, string(t.Direction),
			t.EntryPrice, t.StopLoss, t.Target, t.Size,
			nullDate(t), nullFloat(t.Closed, t.ExitPrice), nullFloat(t.Closed, t.PL),
			nullFloat(t.Closed, t.PLPercent), FormatRR(t.RR), nullInt(t.Closed, t.HoldingDays),
			t.Notes, t.Screenshot,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

type SQLiteBalanceStore struct {
	db *sql.DB
}

func (s *SQLiteBalanceStore) Append(b BalanceSnapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO balance_history (id, date, balance) VALUES (?, ?, ?)`,
		b.ID, b.Date.Format(DateFormat), b.Balance,
	)
	return err
}

func (s *SQLiteBalanceStore) LoadAll() ([]BalanceSnapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, date, balance FROM balance_history ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceSnapshot
	for rows.Next() {
		var (
			b    BalanceSnapshot
			date string
		)
		if err := rows.Scan(&b.ID, &date, &b.Balance); err != nil {
			return nil, err
		}
		if b.Date, err = parseDateField("date", date); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteBalanceStore) RewriteAll(snaps []BalanceSnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM balance_history`); err != nil {
		tx.Rollback()
		return err
	}
	for _, b := range snaps {
		if _, err := tx.Exec(`
			INSERT INTO balance_history (id, date, balance) VALUES (?, ?, ?)`,
			b.ID, b.Date.Format(DateFormat), b.Balance,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func nullDate(t TradeRecord) any {
	if !t.Closed {
		return nil
	}
	return t.ExitDate.Format(DateFormat)
}

func nullFloat(ok bool, v float64) any {
	if !ok {
		return nil
	}
	return v
}

func nullInt(ok bool, v int) any {
	if !ok {
		return nil
	}
	return v
}

var (
	_ TradeStore   = (*SQLiteTradeStore)(nil)
	_ BalanceStore = (*SQLiteBalanceStore)(nil)
	_ TradeStore   = (*CSVTradeStore)(nil)
	_ BalanceStore = (*CSVBalanceStore)(nil)
)
