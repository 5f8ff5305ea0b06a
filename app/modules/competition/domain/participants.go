package competitiondomain

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ParticipantsByCategory returns the participants of category, optionally
// restricted to gender, ordered by first name using Spanish collation.
// An empty gender matches everyone.
func ParticipantsByCategory(participants []Participant, category Category, gender Gender) []Participant {
	out := make([]Participant, 0)
	for _, p := range participants {
		if p.Cup != category {
			continue
		}
		if gender != "" && p.Gender != gender {
			continue
		}
		out = append(out, p)
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].FirstName, out[j].FirstName) < 0
	})
	return out
}

// FindParticipant looks up a participant by id.
func FindParticipant(participants []Participant, id int64) (Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}
