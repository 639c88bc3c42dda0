package model

// Member is a club member. Active gates the input form; RankingTarget
// gates whether contributions count toward aggregated views.
type Member struct {
	Name          string `json:"name"`
	Active        bool   `json:"is_active"`
	DisplayOrder  int    `json:"display_order"`
	RankingTarget bool   `json:"is_ranking_target"`
}

// RateEntry maps the closed lottery-number interval [MinRank, MaxRank]
// to a contribution amount in yen.
type RateEntry struct {
	MinRank int `json:"min_rank"`
	MaxRank int `json:"max_rank"`
	Amount  int `json:"amount"`
}
