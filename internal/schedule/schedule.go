package schedule

import (
	"sort"
	"strings"

	"ClubLedger/internal/model"
)

// NoOpponent is the placeholder for transactions with no schedule match.
const NoOpponent = "-"

// ParseRows converts raw schedule rows into entries. All key fields are
// trimmed at ingestion so that season/section comparisons never fail on
// numeric-vs-text or whitespace differences.
func ParseRows(header []string, rows [][]string) []model.ScheduleEntry {
	seasonCol := colIndex(header, "season")
	sectionCol := colIndex(header, "section")
	dateCol := colIndex(header, "date")
	oppCol := colIndex(header, "opponent")
	typeCol := colIndex(header, "type")
	stadiumCol := colIndex(header, "stadium")

	entries := make([]model.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.ScheduleEntry{
			Season:   cell(row, seasonCol),
			Section:  cell(row, sectionCol),
			Date:     cell(row, dateCol),
			Opponent: cell(row, oppCol),
			Type:     cell(row, typeCol),
			Stadium:  cell(row, stadiumCol),
		})
	}
	return entries
}

// Join left-joins canonical transactions against the schedule on
// (season, match_id) = (season, section). The schedule is authoritative
// for the match date: the transaction's own date records when it was
// submitted, not when the match happened. Unmatched transactions keep
// their stored date and get "-" as opponent.
func Join(txs []model.Transaction, entries []model.ScheduleEntry) []model.Transaction {
	type key struct{ season, section string }
	index := make(map[key]model.ScheduleEntry, len(entries))
	for _, e := range entries {
		k := key{e.Season, e.Section}
		if _, dup := index[k]; !dup {
			index[k] = e
		}
	}

	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		if e, ok := index[key{tx.Season, tx.MatchID}]; ok {
			tx.Opponent = e.Opponent
			if e.Date != "" {
				tx.Date = e.Date
			}
		} else {
			tx.Opponent = NoOpponent
		}
		out[i] = tx
	}
	return out
}

// Seasons returns the distinct seasons present in the schedule, sorted
// ascending.
func Seasons(entries []model.ScheduleEntry) []string {
	seen := make(map[string]bool)
	var seasons []string
	for _, e := range entries {
		if e.Season != "" && !seen[e.Season] {
			seen[e.Season] = true
			seasons = append(seasons, e.Season)
		}
	}
	sort.Strings(seasons)
	return seasons
}

// FilterSeason restricts transactions to one season; SeasonAll passes
// everything through.
func FilterSeason(txs []model.Transaction, season string) []model.Transaction {
	if season == model.SeasonAll {
		return txs
	}
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Season == season {
			out = append(out, tx)
		}
	}
	return out
}

// CurrentSlice returns the schedule subset used to decide which matches
// are open for input. Input targeting always needs one concrete season,
// so SeasonAll falls back to the most recent season present.
func CurrentSlice(entries []model.ScheduleEntry, season string) []model.ScheduleEntry {
	if season == model.SeasonAll {
		seasons := Seasons(entries)
		if len(seasons) == 0 {
			return nil
		}
		season = seasons[len(seasons)-1]
	}
	out := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Season == season {
			out = append(out, e)
		}
	}
	return out
}

// HomeMatches filters a schedule slice down to home games.
func HomeMatches(entries []model.ScheduleEntry) []model.ScheduleEntry {
	out := make([]model.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == model.MatchHome {
			out = append(out, e)
		}
	}
	return out
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
