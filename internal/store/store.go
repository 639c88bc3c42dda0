package store

import (
	"errors"
	"fmt"
	"strings"
)

// Logical table names.
const (
	TableTransactions = "transactions"
	TableSchedule     = "schedule"
	TableRates        = "rates"
	TableMembers      = "members"
)

// Columns lists the expected header of each table, in storage order.
var Columns = map[string][]string{
	TableTransactions: {"date", "season", "match_id", "name", "number", "amount", "timestamp"},
	TableSchedule:     {"season", "section", "date", "opponent", "type", "stadium"},
	TableRates:        {"min_rank", "max_rank", "amount"},
	TableMembers:      {"name", "is_active", "display_order", "is_ranking_target"},
}

// Optional columns may be absent from legacy tables without failing
// validation.
var optional = map[string]map[string]bool{
	TableMembers: {"is_ranking_target": true},
}

// ErrMissingColumn is wrapped by CheckColumns failures.
var ErrMissingColumn = errors.New("missing column")

// Store is the tabular persistence boundary. The core reads whole-table
// snapshots, appends new ledger rows, and replaces the admin-edited
// tables wholesale. Row-level patching does not exist.
type Store interface {
	// Read returns the table header and all data rows.
	Read(table string) (header []string, rows [][]string, err error)
	// Append adds rows to the end of the table.
	Append(table string, rows [][]string) error
	// Replace swaps the entire table contents.
	Replace(table string, header []string, rows [][]string) error
	Close() error
}

// CheckColumns verifies the header carries every required column, so
// parsers downstream can assume column presence. The error names the
// table and the first missing column.
func CheckColumns(table string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range Columns[table] {
		if present[col] || optional[table][col] {
			continue
		}
		return fmt.Errorf("table %q: %w %q", table, ErrMissingColumn, col)
	}
	return nil
}
