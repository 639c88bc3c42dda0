package model

import "time"

const (
	// NumberNone marks a match with no submission from the member.
	NumberNone = 0
	// NumberMissed is the sentinel for "forgot to draw": billed like a
	// normal number but excluded from lottery-number statistics.
	NumberMissed = 9999
	// MaxNumber is the largest real lottery number.
	MaxNumber = 9998
)

// TimestampLayout is the wire format of transaction timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction is one member's submitted lottery number for one match.
// The contribution amount is frozen at submission time and never
// recomputed when the rate table changes later.
type Transaction struct {
	Date      string    `json:"date"` // YYYY-MM-DD; overwritten by the schedule date after joining
	Season    string    `json:"season"`
	MatchID   string    `json:"match_id"`
	Name      string    `json:"name"`
	Number    int       `json:"number"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`

	// Opponent is filled in by the schedule join; "-" when no schedule
	// row matches.
	Opponent string `json:"opponent,omitempty"`
}

// Key identifies the logical submission a transaction row belongs to.
// Rows sharing a key are corrections of the same submission.
type Key struct {
	Season  string
	MatchID string
	Name    string
}

// Key returns the canonicalization key of the transaction.
func (t Transaction) Key() Key {
	return Key{Season: t.Season, MatchID: t.MatchID, Name: t.Name}
}

// Counted reports whether the number participates in lottery-number
// statistics (best/worst/average).
func (t Transaction) Counted() bool {
	return t.Number != NumberNone && t.Number != NumberMissed
}
