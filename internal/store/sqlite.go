package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the four worksheets in a SQLite database. All cells
// are stored as TEXT, matching the loosely-typed tabular contract; row
// order is insertion order.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block submission writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	for table, cols := range Columns {
		defs := make([]string, len(cols))
		for i, c := range cols {
			defs[i] = c + " TEXT"
		}
		stmt := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY AUTOINCREMENT, %s)",
			table, strings.Join(defs, ", "),
		)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}

// Read returns the table's canonical header and every row in insertion
// order.
func (s *SQLiteStore) Read(table string) ([]string, [][]string, error) {
	cols, ok := Columns[table]
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", strings.Join(cols, ", "), table)
	res, err := s.db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer res.Close()

	var rows [][]string
	for res.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := res.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			row[i] = c.String
		}
		rows = append(rows, row)
	}
	if err := res.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", table, err)
	}

	header := make([]string, len(cols))
	copy(header, cols)
	return header, rows, nil
}

// Append adds rows (in canonical column order) to the table.
func (s *SQLiteStore) Append(table string, rows [][]string) error {
	cols, ok := Columns[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	if err := insertRows(tx, table, cols, rows); err != nil {
		tx.Rollback()
		return fmt.Errorf("append %s: %w", table, err)
	}
	return tx.Commit()
}

// Replace swaps the table contents atomically. The header maps the
// incoming rows onto the canonical columns; cells for absent columns
// are stored empty.
func (s *SQLiteStore) Replace(table string, header []string, rows [][]string) error {
	cols, ok := Columns[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace %s: %w", table, err)
	}
	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace %s: %w", table, err)
	}
	if err := insertRows(tx, table, cols, reorder(cols, header, rows)); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace %s: %w", table, err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

func insertRows(tx *sql.Tx, table string, cols []string, rows [][]string) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), placeholders,
	))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		args := make([]any, len(cols))
		for i := range cols {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

// reorder maps rows from the caller's header layout into canonical
// column order.
func reorder(cols, header []string, rows [][]string) [][]string {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == c {
				idx[i] = j
				break
			}
		}
	}

	out := make([][]string, len(rows))
	for n, row := range rows {
		mapped := make([]string, len(cols))
		for i, j := range idx {
			if j >= 0 && j < len(row) {
				mapped[i] = row[j]
			}
		}
		out[n] = mapped
	}
	return out
}
