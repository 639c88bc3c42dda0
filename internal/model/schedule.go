package model

// SeasonAll is the pseudo-season selector meaning "no season filter".
const SeasonAll = "ALL"

// Match types as stored in the schedule table.
const (
	MatchHome = "Home"
	MatchAway = "Away"
)

// ScheduleEntry is one row of the match schedule. Section is the natural
// key joined against Transaction.MatchID within the same season.
type ScheduleEntry struct {
	Season   string `json:"season"`
	Section  string `json:"section"`
	Date     string `json:"date"` // YYYY-MM-DD
	Opponent string `json:"opponent"`
	Type     string `json:"type"`
	Stadium  string `json:"stadium"`
}
