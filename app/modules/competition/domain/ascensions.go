package competitiondomain

import (
	"fmt"
	"sort"
	"time"
)

// RecentActivityLimit is the number of entries kept in the activity feed.
const RecentActivityLimit = 5

// ActivityItem is one line of a participant's recent activity feed.
type ActivityItem struct {
	AscensionID  int64     `json:"ascension_id"`
	BlockID      int64     `json:"block_id"`
	Label        string    `json:"label"`
	RelativeDate string    `json:"relative_date"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

// AscensionSummary aggregates a participant's completed blocks.
type AscensionSummary struct {
	ParticipantID     int64          `json:"participant_id"`
	RoutesCompleted   int            `json:"routes_completed"`
	BouldersCompleted int            `json:"boulders_completed"`
	TotalDistance     int            `json:"total_distance"`
	TotalPoints       int            `json:"total_points"`
	RecentActivity    []ActivityItem `json:"recent_activity"`
	// MissingBlockIDs lists referenced blocks absent from the snapshot.
	MissingBlockIDs []int64 `json:"missing_block_ids,omitempty"`
}

// SummarizeAscensions computes completion counts, distance and the recent
// activity feed for participant. Ascensions that reference a block missing
// from blocks contribute nothing and are reported in MissingBlockIDs.
// Relative dates are computed in now's location.
func SummarizeAscensions(participant Participant, ascensions []Ascension, blocks []Block, now time.Time) AscensionSummary {
	byID := indexBlocks(blocks)
	summary := AscensionSummary{
		ParticipantID:  participant.ID,
		RecentActivity: []ActivityItem{},
	}

	matched := make([]Ascension, 0, len(ascensions))
	for _, a := range ascensions {
		if a.ParticipantID != participant.ID {
			continue
		}
		block, ok := byID[a.BlockID]
		if !ok {
			summary.MissingBlockIDs = append(summary.MissingBlockIDs, a.BlockID)
			continue
		}
		matched = append(matched, a)

		switch block.BlockType {
		case BlockTypeRuta:
			summary.RoutesCompleted++
		case BlockTypeBoulder:
			summary.BouldersCompleted++
		}
		summary.TotalDistance += block.Distance
		summary.TotalPoints += a.EarnedPoints
	}

	SortAscensionsRecentFirst(matched)
	if len(matched) > RecentActivityLimit {
		matched = matched[:RecentActivityLimit]
	}
	for _, a := range matched {
		summary.RecentActivity = append(summary.RecentActivity, ActivityItem{
			AscensionID:  a.ID,
			BlockID:      a.BlockID,
			Label:        activityLabel(byID[a.BlockID], a),
			RelativeDate: RelativeDate(a.CreatedAt, now),
			Points:       a.EarnedPoints,
			CreatedAt:    a.CreatedAt,
		})
	}

	return summary
}

// SortAscensionsRecentFirst orders ascensions by created_at descending, ties
// broken by ascension id ascending.
func SortAscensionsRecentFirst(list []Ascension) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func activityLabel(block Block, a Ascension) string {
	kind := "Ruta"
	if block.BlockType == BlockTypeBoulder {
		kind = "Boulder"
	}
	return fmt.Sprintf("%s completada: %s - %s", kind, a.BlockLane, a.ScoreOptionLabel)
}

var spanishMonths = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// RelativeDate renders t as "Hoy", "Ayer" or a short Spanish date such as
// "6 dic", comparing calendar days in now's location.
func RelativeDate(t, now time.Time) string {
	local := t.In(now.Location())
	y, m, d := local.Date()

	ny, nm, nd := now.Date()
	if y == ny && m == nm && d == nd {
		return "Hoy"
	}
	yy, ym, yd := now.AddDate(0, 0, -1).Date()
	if y == yy && m == ym && d == yd {
		return "Ayer"
	}
	return fmt.Sprintf("%d %s", d, spanishMonths[m-1])
}

// AscensionPage is one page of a participant's ascension history.
type AscensionPage struct {
	Items      []Ascension `json:"items"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
	TotalItems int         `json:"total_items"`
	TotalPages int         `json:"total_pages"`
}

// DefaultAscensionsPerPage is the admin history page size.
const DefaultAscensionsPerPage = 10

// PageAscensions returns the 1-based page of list after ordering it most
// recent first. Out-of-range pages are clamped.
func PageAscensions(list []Ascension, page, perPage int) AscensionPage {
	if perPage <= 0 {
		perPage = DefaultAscensionsPerPage
	}
	sorted := make([]Ascension, len(list))
	copy(sorted, list)
	SortAscensionsRecentFirst(sorted)

	totalPages := (len(sorted) + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > len(sorted) {
		end = len(sorted)
	}

	return AscensionPage{
		Items:      sorted[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(sorted),
		TotalPages: totalPages,
	}
}

// AscensionsFor filters ascensions belonging to participantID.
func AscensionsFor(participantID int64, ascensions []Ascension) []Ascension {
	out := make([]Ascension, 0)
	for _, a := range ascensions {
		if a.ParticipantID == participantID {
			out = append(out, a)
		}
	}
	return out
}
