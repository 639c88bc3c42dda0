package aggregate

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

func tx(date, name string, number, amount int, stamp string) model.Transaction {
	return model.Transaction{
		Date: date, Season: "2025", MatchID: "第1節", Name: name,
		Number: number, Amount: amount, Timestamp: ts(stamp),
	}
}

func all(names ...string) map[string]bool {
	m := make(map[string]bool)
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestRanking_SumsAndSorts(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-08", "田中", 80, 1000, "2025-03-08 10:00:00"),
		tx("2025-03-01", "鈴木", 30, 2000, "2025-03-01 10:00:00"),
	}
	ranking, grand := Ranking(txs, all("田中", "鈴木"))
	want := []model.RankingEntry{
		{Name: "田中", Total: 6000},
		{Name: "鈴木", Total: 2000},
	}
	if !reflect.DeepEqual(ranking, want) {
		t.Errorf("Ranking = %+v, want %+v", ranking, want)
	}
	if grand != 8000 {
		t.Errorf("grand total = %d, want 8000", grand)
	}
}

func TestRanking_ExcludesNonEligible(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-01", "佐藤", 30, 2000, "2025-03-01 10:00:00"), // not a ranking target
	}
	ranking, grand := Ranking(txs, all("田中"))
	if len(ranking) != 1 || ranking[0].Name != "田中" {
		t.Errorf("non-eligible member leaked into ranking: %+v", ranking)
	}
	if grand != 5000 {
		t.Errorf("grand total = %d, want 5000", grand)
	}
}

func TestRanking_InputOrderInvariant(t *testing.T) {
	a := tx("2025-03-01", "田中", 5, 5000, "2025-03-01 10:00:00")
	b := tx("2025-03-08", "鈴木", 30, 2000, "2025-03-08 10:00:00")
	c := tx("2025-03-15", "田中", 80, 1000, "2025-03-15 10:00:00")

	r1, g1 := Ranking([]model.Transaction{a, b, c}, all("田中", "鈴木"))
	r2, g2 := Ranking([]model.Transaction{c, a, b}, all("田中", "鈴木"))
	if !reflect.DeepEqual(r1, r2) || g1 != g2 {
		t.Errorf("ranking depends on input order:\n%+v\n%+v", r1, r2)
	}
}

func TestCumulative_RunningTotalsNonDecreasing(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-15", "田中", 80, 1000, "2025-03-15 10:00:00"),
		tx("2025-03-01", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-08", "田中", 30, 2000, "2025-03-08 10:00:00"),
	}
	series := Cumulative(txs, all("田中"))
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}
	want := []model.CumulativePoint{
		{Date: "2025-03-01", Total: 5000},
		{Date: "2025-03-08", Total: 7000},
		{Date: "2025-03-15", Total: 8000},
	}
	if !reflect.DeepEqual(series[0].Points, want) {
		t.Errorf("points = %+v, want %+v", series[0].Points, want)
	}
	for i := 1; i < len(series[0].Points); i++ {
		if series[0].Points[i].Total < series[0].Points[i-1].Total {
			t.Error("cumulative series decreased")
		}
	}
}

func TestCumulative_ExcludesNonEligible(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "佐藤", 5, 5000, "2025-03-01 10:00:00"),
	}
	if series := Cumulative(txs, all("田中")); len(series) != 0 {
		t.Errorf("non-eligible member leaked into cumulative series: %+v", series)
	}
}

func TestBestWorstDraws_ExcludeSentinels(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", 5, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-01", "鈴木", 0, 0, "2025-03-01 10:00:00"),            // no submission
		tx("2025-03-01", "佐藤", model.NumberMissed, 5000, "2025-03-01 10:00:00"), // forgot
		tx("2025-03-08", "田中", 8000, 1000, "2025-03-08 10:00:00"),
	}
	best := BestDraws(txs, TopN)
	worst := WorstDraws(txs, TopN)
	if len(best) != 2 || len(worst) != 2 {
		t.Fatalf("expected 2 counted draws, best=%d worst=%d", len(best), len(worst))
	}
	if best[0].Number != 5 || best[1].Number != 8000 {
		t.Errorf("best order wrong: %+v", best)
	}
	if worst[0].Number != 8000 || worst[1].Number != 5 {
		t.Errorf("worst order wrong: %+v", worst)
	}
	for _, r := range append(best, worst...) {
		if r.Number == 0 || r.Number == model.NumberMissed {
			t.Errorf("sentinel leaked into draw stats: %+v", r)
		}
	}
}

func TestBestDraws_TiesKeepOriginalOrder(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", 7, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-08", "鈴木", 7, 5000, "2025-03-08 10:00:00"),
	}
	best := BestDraws(txs, 2)
	if best[0].Name != "田中" || best[1].Name != "鈴木" {
		t.Errorf("tie should keep original order: %+v", best)
	}
}

func TestBestDraws_TruncatesToN(t *testing.T) {
	var txs []model.Transaction
	for i := 1; i <= 8; i++ {
		txs = append(txs, tx("2025-03-01", "田中", i*10, 1000, "2025-03-01 10:00:00"))
	}
	if got := BestDraws(txs, TopN); len(got) != TopN {
		t.Errorf("expected %d rows, got %d", TopN, len(got))
	}
}

func TestAverages(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", 10, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-08", "田中", 20, 2000, "2025-03-08 10:00:00"),
		tx("2025-03-01", "鈴木", 0, 0, "2025-03-01 10:00:00"),                    // ignored
		tx("2025-03-08", "鈴木", model.NumberMissed, 5000, "2025-03-08 10:00:00"), // ignored
		tx("2025-03-15", "鈴木", 100, 1000, "2025-03-15 10:00:00"),
	}
	avgs := Averages(txs)
	want := []model.MemberAverage{
		{Name: "田中", Average: 15, Draws: 2},
		{Name: "鈴木", Average: 100, Draws: 1},
	}
	if !reflect.DeepEqual(avgs, want) {
		t.Errorf("Averages = %+v, want %+v", avgs, want)
	}
}

func TestMissedDraws(t *testing.T) {
	txs := []model.Transaction{
		tx("2025-03-01", "田中", model.NumberMissed, 5000, "2025-03-01 10:00:00"),
		tx("2025-03-08", "田中", model.NumberMissed, 5000, "2025-03-08 10:00:00"),
		tx("2025-03-01", "鈴木", 5, 5000, "2025-03-01 10:00:00"),
	}
	missed := MissedDraws(txs)
	want := []model.MissedCount{{Name: "田中", Missed: 2}}
	if !reflect.DeepEqual(missed, want) {
		t.Errorf("MissedDraws = %+v, want %+v", missed, want)
	}
}

func TestMissedDraw_StillRanksByAmount(t *testing.T) {
	// A 9999 row is excluded from number stats but its amount still counts.
	txs := []model.Transaction{
		tx("2025-03-01", "田中", model.NumberMissed, 5000, "2025-03-01 10:00:00"),
	}
	ranking, grand := Ranking(txs, all("田中"))
	if len(ranking) != 1 || ranking[0].Total != 5000 || grand != 5000 {
		t.Errorf("missed draw amount should count in ranking: %+v grand=%d", ranking, grand)
	}
	if len(BestDraws(txs, TopN)) != 0 {
		t.Error("missed draw leaked into best draws")
	}
}
