package competitiondomain

// NotAvailable is reported for a grade extreme when no valid grade exists.
const NotAvailable = "N/A"

// BlockCounts splits a block count by type.
type BlockCounts struct {
	Rutas    int `json:"rutas"`
	Boulders int `json:"boulders"`
	Total    int `json:"total"`
}

func (c *BlockCounts) add(t BlockType) {
	switch t {
	case BlockTypeRuta:
		c.Rutas++
	case BlockTypeBoulder:
		c.Boulders++
	}
	c.Total++
}

// GradeExtremes holds the easiest and hardest valid grades per block type.
type GradeExtremes struct {
	HighestRuta    string `json:"highest_ruta"`
	LowestRuta     string `json:"lowest_ruta"`
	HighestBoulder string `json:"highest_boulder"`
	LowestBoulder  string `json:"lowest_boulder"`
}

// SystemStats is the admin dashboard summary of a snapshot.
type SystemStats struct {
	// ActiveBlocks counts every active block once.
	ActiveBlocks BlockCounts `json:"active_blocks"`
	// PerCategory counts active eligible blocks per configured category.
	// A block may count toward several categories.
	PerCategory map[Category]BlockCounts `json:"per_category"`
	// PerCategorySum adds up PerCategory and may double count blocks.
	PerCategorySum BlockCounts `json:"per_category_sum"`
	// Totals counts each active block eligible for at least one category once.
	Totals BlockCounts `json:"totals"`

	GradeExtremes GradeExtremes `json:"grade_extremes"`
	// MalformedGrades lists ids of blocks whose grade could not be parsed.
	MalformedGrades []int64 `json:"malformed_grades,omitempty"`

	TotalUsers                   int                         `json:"total_users"`
	ActiveUsers                  int                         `json:"active_users"`
	ParticipantsByCategory       map[Category]int            `json:"participants_by_category"`
	ParticipantsByCategoryGender map[Category]map[Gender]int `json:"participants_by_category_gender"`
}

// SummarizeStatistics derives the system statistics for blocks and
// participants. It does not modify its inputs.
func SummarizeStatistics(blocks []Block, participants []Participant, table CategoryGradeTable) SystemStats {
	stats := SystemStats{
		PerCategory:                  make(map[Category]BlockCounts, len(table)),
		ParticipantsByCategory:       make(map[Category]int, len(Categories)),
		ParticipantsByCategoryGender: make(map[Category]map[Gender]int, len(Categories)),
	}

	for c := range table {
		stats.PerCategory[c] = BlockCounts{}
	}

	counted := make(map[int64]struct{}, len(blocks))
	for _, b := range blocks {
		if !b.Active {
			continue
		}
		stats.ActiveBlocks.add(b.BlockType)

		qualifies := false
		for c, grades := range table {
			if !grades.Allows(b.BlockType, b.Grade) {
				continue
			}
			counts := stats.PerCategory[c]
			counts.add(b.BlockType)
			stats.PerCategory[c] = counts
			stats.PerCategorySum.add(b.BlockType)
			qualifies = true
		}
		if _, seen := counted[b.ID]; qualifies && !seen {
			counted[b.ID] = struct{}{}
			stats.Totals.add(b.BlockType)
		}
	}

	stats.GradeExtremes, stats.MalformedGrades = gradeExtremes(blocks)

	for _, c := range Categories {
		stats.ParticipantsByCategory[c] = 0
		stats.ParticipantsByCategoryGender[c] = map[Gender]int{}
	}
	for _, p := range participants {
		if !p.IsCompetitor() {
			continue
		}
		stats.TotalUsers++
		if p.IsActive {
			stats.ActiveUsers++
		}
		stats.ParticipantsByCategory[p.Cup]++
		byGender, ok := stats.ParticipantsByCategoryGender[p.Cup]
		if !ok {
			byGender = map[Gender]int{}
			stats.ParticipantsByCategoryGender[p.Cup] = byGender
		}
		byGender[p.Gender]++
	}

	return stats
}

func gradeExtremes(blocks []Block) (GradeExtremes, []int64) {
	var (
		lowRuta, highRuta       *Grade
		lowBoulder, highBoulder *Grade
		malformed               []int64
	)

	for _, b := range blocks {
		if b.BlockType != BlockTypeRuta && b.BlockType != BlockTypeBoulder {
			continue
		}
		g, ok := ParseGrade(b.BlockType, b.Grade)
		if !ok {
			malformed = append(malformed, b.ID)
			continue
		}
		if b.BlockType == BlockTypeRuta {
			lowRuta, highRuta = widen(lowRuta, highRuta, g)
		} else {
			lowBoulder, highBoulder = widen(lowBoulder, highBoulder, g)
		}
	}

	return GradeExtremes{
		HighestRuta:    rawOrNA(highRuta),
		LowestRuta:     rawOrNA(lowRuta),
		HighestBoulder: rawOrNA(highBoulder),
		LowestBoulder:  rawOrNA(lowBoulder),
	}, malformed
}

func widen(low, high *Grade, g Grade) (*Grade, *Grade) {
	if low == nil || g.Compare(*low) < 0 {
		lg := g
		low = &lg
	}
	if high == nil || g.Compare(*high) > 0 {
		hg := g
		high = &hg
	}
	return low, high
}

func rawOrNA(g *Grade) string {
	if g == nil {
		return NotAvailable
	}
	return g.Raw
}

// GradeCount tallies blocks of one grade.
type GradeCount struct {
	Grade    string `json:"grade"`
	Active   int    `json:"active"`
	Inactive int    `json:"inactive"`
	Total    int    `json:"total"`
}

// CategoryGradeBreakdown is the per-grade block inventory of one category.
type CategoryGradeBreakdown struct {
	Category Category     `json:"category"`
	Rutas    []GradeCount `json:"rutas"`
	Boulders []GradeCount `json:"boulders"`
	Total    GradeCount   `json:"total"`
}

// GradeBreakdown counts active and inactive blocks per configured grade of
// category. Grades are listed in table order. It returns false when the
// category has no table entry.
func GradeBreakdown(blocks []Block, category Category, table CategoryGradeTable) (CategoryGradeBreakdown, bool) {
	grades, ok := table[category]
	if !ok {
		return CategoryGradeBreakdown{Category: category}, false
	}

	out := CategoryGradeBreakdown{
		Category: category,
		Rutas:    tallyGrades(blocks, BlockTypeRuta, grades.Rutas),
		Boulders: tallyGrades(blocks, BlockTypeBoulder, grades.Boulders),
	}
	for _, list := range [][]GradeCount{out.Rutas, out.Boulders} {
		for _, gc := range list {
			out.Total.Active += gc.Active
			out.Total.Inactive += gc.Inactive
			out.Total.Total += gc.Total
		}
	}
	return out, true
}

func tallyGrades(blocks []Block, t BlockType, grades []string) []GradeCount {
	counts := make([]GradeCount, len(grades))
	pos := make(map[string]int, len(grades))
	for i, g := range grades {
		counts[i].Grade = g
		pos[g] = i
	}
	for _, b := range blocks {
		if b.BlockType != t {
			continue
		}
		i, ok := pos[b.Grade]
		if !ok {
			continue
		}
		if b.Active {
			counts[i].Active++
		} else {
			counts[i].Inactive++
		}
		counts[i].Total++
	}
	return counts
}
