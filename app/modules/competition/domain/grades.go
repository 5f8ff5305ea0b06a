package competitiondomain

import (
	"regexp"
	"strconv"
)

// CategoryGrades holds the route and boulder grades that count for a category.
type CategoryGrades struct {
	Rutas    []string `yaml:"rutas" json:"rutas"`
	Boulders []string `yaml:"boulders" json:"boulders"`
}

// Allows reports whether a block of the given type and grade counts.
func (g CategoryGrades) Allows(blockType BlockType, grade string) bool {
	switch blockType {
	case BlockTypeRuta:
		return contains(g.Rutas, grade)
	case BlockTypeBoulder:
		return contains(g.Boulders, grade)
	default:
		return false
	}
}

// CategoryGradeTable maps each category to its eligible grades.
type CategoryGradeTable map[Category]CategoryGrades

// DefaultGradeTable returns the grade table used for the 2025 event.
func DefaultGradeTable() CategoryGradeTable {
	return CategoryGradeTable{
		CategoryKids: {
			Rutas:    []string{"5.8", "5.9"},
			Boulders: []string{"V0", "V1"},
		},
		CategoryPrincipiante: {
			Rutas:    []string{"5.9", "5.10a", "5.10b"},
			Boulders: []string{"V1", "V2", "V3"},
		},
		CategoryIntermedio: {
			Rutas:    []string{"5.10b", "5.10c", "5.10d", "5.11a", "5.11b"},
			Boulders: []string{"V3", "V4", "V5", "V6"},
		},
		CategoryAvanzado: {
			Rutas: []string{
				"5.11c", "5.11d",
				"5.12a", "5.12b", "5.12c", "5.12d",
				"5.13a", "5.13b", "5.13c", "5.13d",
			},
			Boulders: []string{"V7", "V8", "V9", "V10"},
		},
	}
}

// DefaultStatsGradeTable returns the wider table the admin dashboard counts
// blocks with. Its bands overlap more than the eligibility table's, so
// per-category statistics can include grades a participant cannot log.
func DefaultStatsGradeTable() CategoryGradeTable {
	return CategoryGradeTable{
		CategoryKids: {
			Rutas:    []string{"5.9", "5.10a"},
			Boulders: []string{"V0", "V1"},
		},
		CategoryPrincipiante: {
			Rutas:    []string{"5.9", "5.10a", "5.10b", "5.10c"},
			Boulders: []string{"V0", "V1", "V2"},
		},
		CategoryIntermedio: {
			Rutas:    []string{"5.10b", "5.10c", "5.10d", "5.11a", "5.11b", "5.11c"},
			Boulders: []string{"V2", "V3", "V4", "V5"},
		},
		CategoryAvanzado: {
			Rutas: []string{
				"5.10b", "5.10c", "5.10d",
				"5.11a", "5.11b", "5.11c", "5.11d",
				"5.12a", "5.12b", "5.12c", "5.12d",
				"5.13a", "5.13b", "5.13c", "5.13d",
			},
			Boulders: []string{"V3", "V4", "V5", "V6", "V7", "V8", "V9"},
		},
	}
}

var (
	routeGradePattern   = regexp.MustCompile(`^5\.(\d+)([a-d]?)$`)
	boulderGradePattern = regexp.MustCompile(`^V(\d+)$`)
)

// Grade is a parsed, comparable difficulty rating.
type Grade struct {
	Raw    string
	Type   BlockType
	Number int
	// Suffix ranks the route letter: a=1 .. d=4, none=5.
	Suffix int
}

// ParseGrade parses grade as a block of type t. It returns false when the
// grade does not match the format for that type.
func ParseGrade(t BlockType, grade string) (Grade, bool) {
	switch t {
	case BlockTypeRuta:
		m := routeGradePattern.FindStringSubmatch(grade)
		if m == nil {
			return Grade{}, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Grade{}, false
		}
		suffix := 5
		if m[2] != "" {
			suffix = int(m[2][0]-'a') + 1
		}
		return Grade{Raw: grade, Type: t, Number: n, Suffix: suffix}, true
	case BlockTypeBoulder:
		m := boulderGradePattern.FindStringSubmatch(grade)
		if m == nil {
			return Grade{}, false
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Grade{}, false
		}
		return Grade{Raw: grade, Type: t, Number: n}, true
	}
	return Grade{}, false
}

// Compare orders two grades of the same type. It returns -1, 0 or +1.
func (g Grade) Compare(o Grade) int {
	switch {
	case g.Number < o.Number:
		return -1
	case g.Number > o.Number:
		return 1
	case g.Suffix < o.Suffix:
		return -1
	case g.Suffix > o.Suffix:
		return 1
	}
	return 0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
