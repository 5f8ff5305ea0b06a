//go:build integration

package testutils

import (
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds competition collections from a seeded faker.
type TestDataGenerator struct {
	faker  *gofakeit.Faker
	nextID int64
}

// NewTestDataGenerator creates a generator; the same seed yields the same data.
func NewTestDataGenerator(seed uint64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed), nextID: 1}
}

func (g *TestDataGenerator) id() int64 {
	id := g.nextID
	g.nextID++
	return id
}

// GenerateParticipants creates n active competitors in cup.
func (g *TestDataGenerator) GenerateParticipants(n int, cup competitiondomain.Category) []competitiondomain.Participant {
	genders := []competitiondomain.Gender{competitiondomain.GenderFemale, competitiondomain.GenderMale}
	out := make([]competitiondomain.Participant, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.faker.FirstName(), g.faker.LastName()
		out = append(out, competitiondomain.Participant{
			ID:        g.id(),
			FirstName: first,
			LastName:  last,
			Username:  g.faker.Username(),
			Email:     g.faker.Email(),
			Gender:    genders[i%len(genders)],
			Cup:       cup,
			IsActive:  true,
		})
	}
	return out
}

// GenerateBlocks creates n active boulders with grades from grades, each with
// flash and second-attempt options.
func (g *TestDataGenerator) GenerateBlocks(n int, grades []string) []competitiondomain.Block {
	out := make([]competitiondomain.Block, 0, n)
	for i := 0; i < n; i++ {
		blockID := g.id()
		out = append(out, competitiondomain.Block{
			ID:        blockID,
			BlockType: competitiondomain.BlockTypeBoulder,
			Grade:     grades[i%len(grades)],
			Lane:      g.faker.LetterN(1) + g.faker.DigitN(2),
			Color:     g.faker.SafeColor(),
			Distance:  g.faker.IntRange(3, 15),
			Active:    true,
			CreatedAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
			ScoreOptions: []competitiondomain.ScoreOption{
				{ID: g.id(), BlockID: blockID, Key: "flash", Label: "Flash", Points: 1000, Order: 1},
				{ID: g.id(), BlockID: blockID, Key: "segundo", Label: "Segundo intento", Points: 500, Order: 2},
			},
		})
	}
	return out
}

// GenerateAscensions records one flash per participant on a random block.
func (g *TestDataGenerator) GenerateAscensions(participants []competitiondomain.Participant, blocks []competitiondomain.Block) []competitiondomain.Ascension {
	out := make([]competitiondomain.Ascension, 0, len(participants))
	for _, p := range participants {
		b := blocks[g.faker.IntRange(0, len(blocks)-1)]
		flash := b.ScoreOptions[0]
		out = append(out, competitiondomain.Ascension{
			ID:               g.id(),
			ParticipantID:    p.ID,
			BlockID:          b.ID,
			ScoreOptionID:    flash.ID,
			BlockLane:        b.Lane,
			ScoreOptionLabel: flash.Label,
			EarnedPoints:     flash.Points,
			CreatedAt:        time.Date(2025, 12, 6, 10, 0, 0, 0, time.UTC),
		})
	}
	return out
}

// GenerateSnapshot builds a consistent snapshot fetched at fetchedAt.
func (g *TestDataGenerator) GenerateSnapshot(fetchedAt time.Time) *competitiondomain.Snapshot {
	participants := g.GenerateParticipants(6, competitiondomain.CategoryIntermedio)
	blocks := g.GenerateBlocks(4, []string{"V3", "V4", "V5"})
	ascensions := g.GenerateAscensions(participants, blocks)
	return competitiondomain.NewSnapshot(fetchedAt, participants, blocks, ascensions, nil)
}
