package competitiondomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantsByCategory(t *testing.T) {
	ps := []Participant{
		{ID: 1, FirstName: "Óscar", Cup: CategoryKids, Gender: GenderMale},
		{ID: 2, FirstName: "ana", Cup: CategoryKids, Gender: GenderFemale},
		{ID: 3, FirstName: "Zoe", Cup: CategoryKids, Gender: GenderFemale},
		{ID: 4, FirstName: "Bruno", Cup: CategoryAvanzado, Gender: GenderMale},
		{ID: 5, FirstName: "Pablo", Cup: CategoryKids, Gender: GenderMale},
	}

	ids := func(list []Participant) []int64 {
		out := make([]int64, 0, len(list))
		for _, p := range list {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("all genders sorted with spanish collation", func(t *testing.T) {
		got := ParticipantsByCategory(ps, CategoryKids, "")
		assert.Equal(t, []int64{2, 1, 5, 3}, ids(got))
	})

	t.Run("filtered by gender", func(t *testing.T) {
		got := ParticipantsByCategory(ps, CategoryKids, GenderFemale)
		assert.Equal(t, []int64{2, 3}, ids(got))
	})

	t.Run("empty category", func(t *testing.T) {
		got := ParticipantsByCategory(ps, CategoryPrincipiante, "")
		assert.Empty(t, got)
	})
}

func TestFindParticipant(t *testing.T) {
	ps := []Participant{{ID: 1}, {ID: 2, Username: "dos"}}
	p, ok := FindParticipant(ps, 2)
	assert.True(t, ok)
	assert.Equal(t, "dos", p.Username)
	_, ok = FindParticipant(ps, 3)
	assert.False(t, ok)
}
