package roster

import (
	"sort"
	"strconv"
	"strings"

	"ClubLedger/internal/model"
)

// ParseRows converts raw member rows. The store keeps boolean flags as
// the literal strings "TRUE"/"FALSE"; they are normalized to bool here
// so no string comparison leaks into core logic. is_ranking_target may
// be missing entirely in legacy tables: both an absent column and an
// empty cell default to true.
func ParseRows(header []string, rows [][]string) []model.Member {
	nameCol := colIndex(header, "name")
	activeCol := colIndex(header, "is_active")
	orderCol := colIndex(header, "display_order")
	targetCol := colIndex(header, "is_ranking_target")

	members := make([]model.Member, 0, len(rows))
	for _, row := range rows {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		members = append(members, model.Member{
			Name:          name,
			Active:        flag(cell(row, activeCol), false),
			DisplayOrder:  cellInt(row, orderCol),
			RankingTarget: flag(cell(row, targetCol), true),
		})
	}
	return members
}

// Rows converts members back to raw rows for a full-table replacement.
func Rows(members []model.Member) [][]string {
	rows := make([][]string, len(members))
	for i, m := range members {
		rows[i] = []string{
			m.Name,
			flagString(m.Active),
			strconv.Itoa(m.DisplayOrder),
			flagString(m.RankingTarget),
		}
	}
	return rows
}

// RankingTargets returns the set of member names whose contributions
// count toward aggregated views.
func RankingTargets(members []model.Member) map[string]bool {
	targets := make(map[string]bool, len(members))
	for _, m := range members {
		if m.RankingTarget {
			targets[m.Name] = true
		}
	}
	return targets
}

// Active returns the members shown on the input form, in display order.
func Active(members []model.Member) []model.Member {
	out := make([]model.Member, 0, len(members))
	for _, m := range members {
		if m.Active {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

func flag(s string, missing bool) bool {
	switch strings.ToUpper(s) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	default:
		return missing
	}
}

func flagString(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
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
