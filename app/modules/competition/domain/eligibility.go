package competitiondomain

// IsEligible reports whether block counts toward category under table.
// A category without an entry in the table is unrestricted.
func IsEligible(block Block, category Category, table CategoryGradeTable) bool {
	grades, ok := table[category]
	if !ok {
		return true
	}
	return grades.Allows(block.BlockType, block.Grade)
}

// IsConfigured reports whether table restricts category at all. Callers use it
// to warn about the permissive fallback in IsEligible.
func IsConfigured(category Category, table CategoryGradeTable) bool {
	_, ok := table[category]
	return ok
}

// AvailableBlocks returns the active blocks eligible for category that the
// participant has not completed yet, in input order.
func AvailableBlocks(blocks []Block, completed []Ascension, category Category, table CategoryGradeTable) []Block {
	done := make(map[int64]struct{}, len(completed))
	for _, a := range completed {
		done[a.BlockID] = struct{}{}
	}

	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if !b.Active {
			continue
		}
		if _, ok := done[b.ID]; ok {
			continue
		}
		if !IsEligible(b, category, table) {
			continue
		}
		out = append(out, b)
	}
	return out
}
