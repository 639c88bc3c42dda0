package aggregate

import (
	"sort"

	"ClubLedger/internal/model"
)

// TopN is how many draws the best/worst listings show.
const TopN = 5

// Every function here expects the canonical, schedule-joined,
// season-filtered transaction set. Feeding raw ledger rows in would
// double-count superseded corrections.

// Ranking sums contributions per ranking-eligible member, sorted by
// total descending (name ascending on ties, so the result is stable
// under input reordering). The second return is the grand total.
func Ranking(txs []model.Transaction, eligible map[string]bool) ([]model.RankingEntry, int) {
	totals := make(map[string]int)
	grand := 0
	for _, tx := range txs {
		if !eligible[tx.Name] {
			continue
		}
		totals[tx.Name] += tx.Amount
		grand += tx.Amount
	}

	entries := make([]model.RankingEntry, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, model.RankingEntry{Name: name, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, grand
}

// Cumulative builds each eligible member's running contribution total
// over the season, one point per match, ordered by (date, timestamp).
func Cumulative(txs []model.Transaction, eligible map[string]bool) []model.MemberSeries {
	ordered := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if eligible[tx.Name] {
			ordered = append(ordered, tx)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	running := make(map[string]int)
	points := make(map[string][]model.CumulativePoint)
	for _, tx := range ordered {
		running[tx.Name] += tx.Amount
		points[tx.Name] = append(points[tx.Name], model.CumulativePoint{
			Date:  tx.Date,
			Total: running[tx.Name],
		})
	}

	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([]model.MemberSeries, len(names))
	for i, name := range names {
		series[i] = model.MemberSeries{Name: name, Points: points[name]}
	}
	return series
}

// BestDraws returns the n smallest lottery numbers drawn. No-submission
// rows (0) and the missed-draw sentinel (9999) never appear; ties keep
// the original row order.
func BestDraws(txs []model.Transaction, n int) []model.DrawRecord {
	return topDraws(txs, n, func(a, b int) bool { return a < b })
}

// WorstDraws returns the n largest real lottery numbers drawn.
func WorstDraws(txs []model.Transaction, n int) []model.DrawRecord {
	return topDraws(txs, n, func(a, b int) bool { return a > b })
}

func topDraws(txs []model.Transaction, n int, better func(a, b int) bool) []model.DrawRecord {
	records := make([]model.DrawRecord, 0, len(txs))
	for _, tx := range txs {
		if !tx.Counted() {
			continue
		}
		records = append(records, model.DrawRecord{
			Date:   tx.Date,
			Name:   tx.Name,
			Number: tx.Number,
			Amount: tx.Amount,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return better(records[i].Number, records[j].Number)
	})
	if len(records) > n {
		records = records[:n]
	}
	return records
}

// Averages computes each member's mean lottery number over counted
// draws, best average first. Members with no counted draws are omitted.
func Averages(txs []model.Transaction) []model.MemberAverage {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, tx := range txs {
		if !tx.Counted() {
			continue
		}
		sums[tx.Name] += tx.Number
		counts[tx.Name]++
	}

	avgs := make([]model.MemberAverage, 0, len(sums))
	for name, sum := range sums {
		avgs = append(avgs, model.MemberAverage{
			Name:    name,
			Average: float64(sum) / float64(counts[name]),
			Draws:   counts[name],
		})
	}
	sort.Slice(avgs, func(i, j int) bool {
		if avgs[i].Average != avgs[j].Average {
			return avgs[i].Average < avgs[j].Average
		}
		return avgs[i].Name < avgs[j].Name
	})
	return avgs
}

// MissedDraws counts forgot-to-draw rows per member, most misses first.
// Members with no misses are omitted.
func MissedDraws(txs []model.Transaction) []model.MissedCount {
	counts := make(map[string]int)
	for _, tx := range txs {
		if tx.Number == model.NumberMissed {
			counts[tx.Name]++
		}
	}

	missed := make([]model.MissedCount, 0, len(counts))
	for name, count := range counts {
		missed = append(missed, model.MissedCount{Name: name, Missed: count})
	}
	sort.Slice(missed, func(i, j int) bool {
		if missed[i].Missed != missed[j].Missed {
			return missed[i].Missed > missed[j].Missed
		}
		return missed[i].Name < missed[j].Name
	})
	return missed
}
