package competitiondomain

import "sort"

// DefaultLeaderboardLimit is the number of places shown per category.
const DefaultLeaderboardLimit = 5

// Leaderboard is the ranked top of one category.
type Leaderboard struct {
	Category Category      `json:"category"`
	Entries  []Participant `json:"entries"`
}

// Rank returns the active competitors of category ordered by score
// descending, truncated to limit. Equal scores keep their input order.
// A non-positive limit falls back to DefaultLeaderboardLimit.
func Rank(participants []Participant, category Category, limit int) []Participant {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	ranked := make([]Participant, 0, len(participants))
	for _, p := range participants {
		if !p.IsCompetitor() || !p.IsActive || p.Cup != category {
			continue
		}
		ranked = append(ranked, p)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankAll builds one leaderboard per known category, in display order.
func RankAll(participants []Participant, limit int) []Leaderboard {
	boards := make([]Leaderboard, 0, len(Categories))
	for _, c := range Categories {
		boards = append(boards, Leaderboard{
			Category: c,
			Entries:  Rank(participants, c, limit),
		})
	}
	return boards
}
