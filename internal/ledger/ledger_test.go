package ledger

import (
	"reflect"
	"testing"
	"time"

	"ClubLedger/internal/model"
)

func ts(s string) time.Time {
	t, err := time.Parse(model.TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tx(season, matchID, name string, number, amount int, stamp string) model.Transaction {
	return model.Transaction{
		Date:      "2025-03-01",
		Season:    season,
		MatchID:   matchID,
		Name:      name,
		Number:    number,
		Amount:    amount,
		Timestamp: ts(stamp),
	}
}

func TestParseRows_CoercesNumericText(t *testing.T) {
	header := []string{"date", "season", "match_id", "name", "number", "amount", "timestamp"}
	rows := [][]string{
		{"2025-03-01", "2025", "第1節", "田中", "5", "5000", "2025-03-01 10:00:00"},
		{"2025-03-01", "2025", "第1節", "鈴木", "abc", "xyz", "2025-03-01 10:01:00"},
		{"2025-03-01", "2025", "第1節", "佐藤", " 12 ", " 2000 ", "not-a-timestamp"},
	}
	txs := ParseRows(header, rows)
	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if txs[0].Number != 5 || txs[0].Amount != 5000 {
		t.Errorf("row 0 parsed wrong: %+v", txs[0])
	}
	if txs[1].Number != 0 || txs[1].Amount != 0 {
		t.Errorf("non-numeric fields should degrade to 0, got %+v", txs[1])
	}
	if txs[2].Number != 12 || txs[2].Amount != 2000 {
		t.Errorf("whitespace-padded numbers should parse, got %+v", txs[2])
	}
	if !txs[2].Timestamp.IsZero() {
		t.Errorf("bad timestamp should yield zero time, got %v", txs[2].Timestamp)
	}
}

func TestCanonicalize_LatestWins(t *testing.T) {
	txs := []model.Transaction{
		tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:05:00"),
	}
	got := Canonicalize(txs)
	if len(got) != 1 {
		t.Fatalf("expected 1 canonical row, got %d", len(got))
	}
	if !got[0].Timestamp.Equal(ts("2025-03-01 10:05:00")) {
		t.Errorf("expected the later correction to win, got %v", got[0].Timestamp)
	}
}

func TestCanonicalize_OrderIndependent(t *testing.T) {
	// Two admins racing to append the same key: whichever order the rows
	// land in, the row with the later timestamp survives.
	a := tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00")
	b := tx("2025", "第1節", "田中", 42, 2000, "2025-03-01 10:05:00")

	for name, in := range map[string][]model.Transaction{
		"a-then-b": {a, b},
		"b-then-a": {b, a},
	} {
		got := Canonicalize(in)
		if len(got) != 1 {
			t.Fatalf("%s: expected 1 row, got %d", name, len(got))
		}
		if got[0].Number != 42 {
			t.Errorf("%s: expected number 42 to survive, got %d", name, got[0].Number)
		}
	}
}

func TestCanonicalize_DistinctKeysUntouched(t *testing.T) {
	txs := []model.Transaction{
		tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025", "第2節", "田中", 7, 5000, "2025-03-08 10:00:00"),
		tx("2025", "第1節", "鈴木", 80, 1000, "2025-03-01 11:00:00"),
		tx("2024", "第1節", "田中", 3, 5000, "2024-03-01 10:00:00"),
	}
	got := Canonicalize(txs)
	if len(got) != 4 {
		t.Fatalf("expected 4 rows (all distinct keys), got %d", len(got))
	}
	if !reflect.DeepEqual(got, txs) {
		t.Error("distinct keys should pass through in original order")
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	txs := []model.Transaction{
		tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025", "第1節", "田中", 9, 5000, "2025-03-01 10:05:00"),
		tx("2025", "第2節", "鈴木", 80, 1000, "2025-03-08 10:00:00"),
	}
	once := Canonicalize(txs)
	twice := Canonicalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("canonicalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestCanonicalize_EqualTimestampsLaterRowWins(t *testing.T) {
	txs := []model.Transaction{
		tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025", "第1節", "田中", 6, 5000, "2025-03-01 10:00:00"),
	}
	got := Canonicalize(txs)
	if len(got) != 1 || got[0].Number != 6 {
		t.Errorf("expected later appended row on timestamp tie, got %+v", got)
	}
}

func TestRow_RoundTrip(t *testing.T) {
	in := tx("2025", "第1節", "田中", 5, 5000, "2025-03-01 10:00:00")
	header := []string{"date", "season", "match_id", "name", "number", "amount", "timestamp"}
	out := ParseRows(header, [][]string{Row(in)})
	if len(out) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(out))
	}
	if !reflect.DeepEqual(out[0], in) {
		t.Errorf("round trip mismatch:\nin:  %+v\nout: %+v", in, out[0])
	}
}
