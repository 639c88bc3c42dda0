package ledger

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"ClubLedger/internal/model"
)

// ParseRows converts raw transaction rows into Transactions. Numeric
// fields may arrive as text; non-numeric values degrade to 0 rather than
// failing the whole load. Timestamps are parsed into time.Time so that
// ordering never depends on string-comparison quirks; an unparseable
// timestamp yields the zero time, which sorts before every real one.
func ParseRows(header []string, rows [][]string) []model.Transaction {
	dateCol := colIndex(header, "date")
	seasonCol := colIndex(header, "season")
	matchCol := colIndex(header, "match_id")
	nameCol := colIndex(header, "name")
	numberCol := colIndex(header, "number")
	amountCol := colIndex(header, "amount")
	tsCol := colIndex(header, "timestamp")

	txs := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		tx := model.Transaction{
			Date:    cell(row, dateCol),
			Season:  cell(row, seasonCol),
			MatchID: cell(row, matchCol),
			Name:    cell(row, nameCol),
			Number:  cellInt(row, numberCol),
			Amount:  cellInt(row, amountCol),
		}
		if raw := cell(row, tsCol); raw != "" {
			if ts, err := time.Parse(model.TimestampLayout, raw); err == nil {
				tx.Timestamp = ts
			}
		}
		txs = append(txs, tx)
	}
	return txs
}

// Canonicalize reduces the append-only ledger to its latest state: per
// (season, match_id, name) only the row with the greatest timestamp
// survives. On equal timestamps the later appended row wins. Every
// downstream aggregate must run on the canonical set; the operation is
// idempotent, so running it again is harmless.
func Canonicalize(txs []model.Transaction) []model.Transaction {
	winners := make(map[model.Key]int, len(txs))
	for i, tx := range txs {
		j, seen := winners[tx.Key()]
		if !seen || !tx.Timestamp.Before(txs[j].Timestamp) {
			winners[tx.Key()] = i
		}
	}

	keep := make([]int, 0, len(winners))
	for _, i := range winners {
		keep = append(keep, i)
	}
	sort.Ints(keep)

	out := make([]model.Transaction, len(keep))
	for n, i := range keep {
		out[n] = txs[i]
	}
	return out
}

// Row emits the append tuple for one transaction, in ledger column order.
func Row(tx model.Transaction) []string {
	ts := ""
	if !tx.Timestamp.IsZero() {
		ts = tx.Timestamp.Format(model.TimestampLayout)
	}
	return []string{
		tx.Date,
		tx.Season,
		tx.MatchID,
		tx.Name,
		strconv.Itoa(tx.Number),
		strconv.Itoa(tx.Amount),
		ts,
	}
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func cellInt(row []string, col int) int {
	n, err := strconv.Atoi(cell(row, col))
	if err != nil {
		return 0
	}
	return n
}
