package model

// RankingEntry is one row of the contribution ranking.
type RankingEntry struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// CumulativePoint is one step of a member's running contribution total.
type CumulativePoint struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

// MemberSeries is the cumulative contribution series of one member.
type MemberSeries struct {
	Name   string            `json:"name"`
	Points []CumulativePoint `json:"points"`
}

// DrawRecord is one lottery draw as shown in the best/worst listings.
type DrawRecord struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Number int    `json:"number"`
	Amount int    `json:"amount"`
}

// MemberAverage is a member's mean lottery number over counted draws.
type MemberAverage struct {
	Name    string  `json:"name"`
	Average float64 `json:"average"`
	Draws   int     `json:"draws"`
}

// MissedCount is a member's count of forgot-to-draw submissions.
type MissedCount struct {
	Name   string `json:"name"`
	Missed int    `json:"missed"`
}

// SeasonViews bundles every derived view for one season selection.
type SeasonViews struct {
	Season     string          `json:"season"`
	Ranking    []RankingEntry  `json:"ranking"`
	GrandTotal int             `json:"grand_total"`
	Cumulative []MemberSeries  `json:"cumulative"`
	BestDraws  []DrawRecord    `json:"best_draws"`
	WorstDraws []DrawRecord    `json:"worst_draws"`
	Averages   []MemberAverage `json:"averages"`
	Missed     []MissedCount   `json:"missed"`
	History    []Transaction   `json:"history"`
}
