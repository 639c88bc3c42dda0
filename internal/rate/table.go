package rate

import (
	"strconv"
	"strings"

	"ClubLedger/internal/model"
)

// DefaultFallback is the amount charged when no rate entry covers the
// drawn number.
const DefaultFallback = 1000

// Table is the ordered set of rate tiers. Entries are admin-authored and
// free-form: nothing enforces full coverage or non-overlap, so Resolve
// scans in table order and the first matching interval wins.
type Table struct {
	Entries  []model.RateEntry
	Fallback int
}

// NewTable builds a Table with the default fallback amount.
func NewTable(entries []model.RateEntry) *Table {
	return &Table{Entries: entries, Fallback: DefaultFallback}
}

// Resolve maps a lottery number to its contribution amount.
// 0 means "no submission" and costs nothing. Numbers outside every
// interval (including the 9999 missed-draw sentinel when the table tops
// out at 9998) fall back to Table.Fallback.
func (t *Table) Resolve(number int) int {
	if number == model.NumberNone {
		return 0
	}
	for _, e := range t.Entries {
		if e.MinRank <= number && number <= e.MaxRank {
			return e.Amount
		}
	}
	return t.Fallback
}

// ParseRows converts raw rate rows into entries. Rows with non-numeric
// bounds or amount are skipped; a bad row must not take the table down.
func ParseRows(header []string, rows [][]string) []model.RateEntry {
	minCol := colIndex(header, "min_rank")
	maxCol := colIndex(header, "max_rank")
	amtCol := colIndex(header, "amount")

	entries := make([]model.RateEntry, 0, len(rows))
	for _, row := range rows {
		min, ok1 := cellInt(row, minCol)
		max, ok2 := cellInt(row, maxCol)
		amt, ok3 := cellInt(row, amtCol)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		entries = append(entries, model.RateEntry{MinRank: min, MaxRank: max, Amount: amt})
	}
	return entries
}

// Rows converts entries back to raw rows for a full-table replacement.
func Rows(entries []model.RateEntry) [][]string {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			strconv.Itoa(e.MinRank),
			strconv.Itoa(e.MaxRank),
			strconv.Itoa(e.Amount),
		}
	}
	return rows
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cellInt(row []string, col int) (int, bool) {
	if col < 0 || col >= len(row) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(row[col]))
	if err != nil {
		return 0, false
	}
	return n, true
}
