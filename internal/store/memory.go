package store

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and when no database
// path is configured.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
}

type memTable struct {
	header []string
	rows   [][]string
}

// NewMemoryStore creates a MemoryStore with every known table empty.
func NewMemoryStore() *MemoryStore {
	tables := make(map[string]*memTable, len(Columns))
	for table, cols := range Columns {
		header := make([]string, len(cols))
		copy(header, cols)
		tables[table] = &memTable{header: header}
	}
	return &MemoryStore{tables: tables}
}

// Seed replaces a table's contents directly, for test setup.
func (m *MemoryStore) Seed(table string, header []string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = &memTable{header: header, rows: rows}
}

func (m *MemoryStore) Read(table string) ([]string, [][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[table]
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q", table)
	}
	header := make([]string, len(t.header))
	copy(header, t.header)
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append([]string(nil), r...)
	}
	return header, rows, nil
}

func (m *MemoryStore) Append(table string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	return nil
}

func (m *MemoryStore) Replace(table string, header []string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[table]; !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	t := &memTable{header: append([]string(nil), header...)}
	for _, r := range rows {
		t.rows = append(t.rows, append([]string(nil), r...))
	}
	m.tables[table] = t
	return nil
}

func (m *MemoryStore) Close() error { return nil }
