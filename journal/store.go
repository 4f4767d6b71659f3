package journal

// TradeStore is the repository owning the authoritative trade table.
//
// All access is whole-table. Every load-modify-rewrite sequence is a critical
// section: callers must load immediately before mutating and rewrite
// immediately after, never interleaving two such sequences.
type TradeStore interface {
	// Append adds one row, creating the backing table if it does not exist.
	Append(TradeRecord) error
	// LoadAll returns the full ordered table, or an empty table when no
	// backing file exists yet. Corrupt stored data yields a *ParseError.
	LoadAll() ([]TradeRecord, error)
	// RewriteAll atomically replaces the entire table.
	RewriteAll([]TradeRecord) error
}

// BalanceStore is the repository owning the balance history, with the same
// whole-table discipline as TradeStore.
type BalanceStore interface {
	Append(BalanceSnapshot) error
	LoadAll() ([]BalanceSnapshot, error)
	RewriteAll([]BalanceSnapshot) error
}
