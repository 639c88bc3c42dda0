package roster

import (
	"testing"
)

var header = []string{"name", "is_active", "display_order", "is_ranking_target"}

func TestParseRows_Flags(t *testing.T) {
	rows := [][]string{
		{"田中", "TRUE", "1", "TRUE"},
		{"鈴木", "FALSE", "2", "FALSE"},
		{"佐藤", "true", "3", ""}, // lowercase flag, empty ranking target
	}
	members := ParseRows(header, rows)
	if len(members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(members))
	}
	if !members[0].Active || !members[0].RankingTarget {
		t.Errorf("田中 should be active ranking target: %+v", members[0])
	}
	if members[1].Active || members[1].RankingTarget {
		t.Errorf("鈴木 flags should both be false: %+v", members[1])
	}
	if !members[2].Active {
		t.Errorf("lowercase TRUE should parse: %+v", members[2])
	}
	if !members[2].RankingTarget {
		t.Errorf("empty is_ranking_target should default to true: %+v", members[2])
	}
}

func TestParseRows_MissingTargetColumnDefaultsTrue(t *testing.T) {
	legacy := []string{"name", "is_active", "display_order"}
	members := ParseRows(legacy, [][]string{{"田中", "TRUE", "1"}})
	if len(members) != 1 || !members[0].RankingTarget {
		t.Errorf("missing column should default ranking target to true: %+v", members)
	}
}

func TestParseRows_BadDisplayOrderDegrades(t *testing.T) {
	members := ParseRows(header, [][]string{{"田中", "TRUE", "abc", "TRUE"}})
	if members[0].DisplayOrder != 0 {
		t.Errorf("bad display order should degrade to 0, got %d", members[0].DisplayOrder)
	}
}

func TestParseRows_SkipsNamelessRows(t *testing.T) {
	members := ParseRows(header, [][]string{{"", "TRUE", "1", "TRUE"}})
	if len(members) != 0 {
		t.Errorf("rows without a name should be skipped, got %+v", members)
	}
}

func TestRankingTargets(t *testing.T) {
	members := ParseRows(header, [][]string{
		{"田中", "TRUE", "1", "TRUE"},
		{"佐藤", "TRUE", "2", "FALSE"},
	})
	targets := RankingTargets(members)
	if !targets["田中"] || targets["佐藤"] {
		t.Errorf("unexpected targets: %v", targets)
	}
}

func TestActive_SortedByDisplayOrder(t *testing.T) {
	members := ParseRows(header, [][]string{
		{"鈴木", "TRUE", "2", "TRUE"},
		{"田中", "TRUE", "1", "TRUE"},
		{"休会", "FALSE", "0", "TRUE"},
	})
	active := Active(members)
	if len(active) != 2 {
		t.Fatalf("expected 2 active members, got %d", len(active))
	}
	if active[0].Name != "田中" || active[1].Name != "鈴木" {
		t.Errorf("expected display order sort, got %+v", active)
	}
}

func TestRows_RoundTrip(t *testing.T) {
	in := [][]string{{"田中", "TRUE", "1", "FALSE"}}
	members := ParseRows(header, in)
	out := Rows(members)
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	for i, want := range in[0] {
		if out[0][i] != want {
			t.Errorf("column %d = %q, want %q", i, out[0][i], want)
		}
	}
}
