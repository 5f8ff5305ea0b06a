package competitiondb

import (
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Snapshot is a stored copy of the backend collections.
type Snapshot struct {
	bun.BaseModel `bun:"table:competition_snapshots,alias:cs"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	FetchedAt time.Time `bun:"fetched_at,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`

	Participants []competitiondomain.Participant `bun:"participants,type:jsonb,notnull"`
	Blocks       []competitiondomain.Block       `bun:"blocks,type:jsonb,notnull"`
	Ascensions   []competitiondomain.Ascension   `bun:"ascensions,type:jsonb,notnull"`
	ScoreOptions []competitiondomain.ScoreOption `bun:"score_options,type:jsonb,notnull"`

	// Counts are stored alongside the payload so listings avoid decoding it.
	ParticipantCount int `bun:"participant_count,notnull"`
	BlockCount       int `bun:"block_count,notnull"`
	AscensionCount   int `bun:"ascension_count,notnull"`
	IssueCount       int `bun:"issue_count,notnull,default:0"`
}

// FromDomain converts a domain snapshot into its stored form.
func FromDomain(s *competitiondomain.Snapshot, issues int) *Snapshot {
	return &Snapshot{
		ID:               s.ID,
		FetchedAt:        s.FetchedAt,
		Participants:     nonNil(s.Participants),
		Blocks:           nonNil(s.Blocks),
		Ascensions:       nonNil(s.Ascensions),
		ScoreOptions:     nonNil(s.ScoreOptions),
		ParticipantCount: len(s.Participants),
		BlockCount:       len(s.Blocks),
		AscensionCount:   len(s.Ascensions),
		IssueCount:       issues,
	}
}

// ToDomain converts the stored row back into a domain snapshot.
func (s *Snapshot) ToDomain() *competitiondomain.Snapshot {
	return &competitiondomain.Snapshot{
		ID:           s.ID,
		FetchedAt:    s.FetchedAt,
		Participants: s.Participants,
		Blocks:       s.Blocks,
		Ascensions:   s.Ascensions,
		ScoreOptions: s.ScoreOptions,
	}
}

// nonNil keeps jsonb columns as [] instead of null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
