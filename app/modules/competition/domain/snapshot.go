package competitiondomain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSnapshotNotFound is returned when no snapshot has been taken yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is one copy of the backend collections. Snapshots are not
// modified after they are built.
type Snapshot struct {
	ID           uuid.UUID     `json:"id"`
	FetchedAt    time.Time     `json:"fetched_at"`
	Participants []Participant `json:"participants"`
	Blocks       []Block       `json:"blocks"`
	Ascensions   []Ascension   `json:"ascensions"`
	ScoreOptions []ScoreOption `json:"score_options"`
}

// NewSnapshot assembles a snapshot, attaching each block's options when the
// backend returned them separately.
func NewSnapshot(fetchedAt time.Time, participants []Participant, blocks []Block, ascensions []Ascension, options []ScoreOption) *Snapshot {
	byBlock := make(map[int64][]ScoreOption, len(blocks))
	for _, o := range options {
		byBlock[o.BlockID] = append(byBlock[o.BlockID], o)
	}

	withOptions := make([]Block, len(blocks))
	for i, b := range blocks {
		if len(b.ScoreOptions) == 0 {
			b.ScoreOptions = byBlock[b.ID]
		} else {
			b.ScoreOptions = append([]ScoreOption(nil), b.ScoreOptions...)
		}
		SortScoreOptions(b.ScoreOptions)
		withOptions[i] = b
	}

	return &Snapshot{
		ID:           uuid.New(),
		FetchedAt:    fetchedAt,
		Participants: participants,
		Blocks:       withOptions,
		Ascensions:   ascensions,
		ScoreOptions: options,
	}
}

// Participant looks up a participant by id.
func (s *Snapshot) Participant(id int64) (Participant, bool) {
	return FindParticipant(s.Participants, id)
}

// DataIssues reports soft inconsistencies between the collections.
type DataIssues struct {
	MissingBlocks       []int64 `json:"missing_blocks,omitempty"`
	MissingParticipants []int64 `json:"missing_participants,omitempty"`
	InvalidAscensions   []int64 `json:"invalid_ascensions,omitempty"`
	DuplicateAscensions []int64 `json:"duplicate_ascensions,omitempty"`
	InvalidScoreOptions []int64 `json:"invalid_score_options,omitempty"`
}

// Count returns the number of reported issues.
func (d DataIssues) Count() int {
	return len(d.MissingBlocks) + len(d.MissingParticipants) + len(d.InvalidAscensions) +
		len(d.DuplicateAscensions) + len(d.InvalidScoreOptions)
}

// Inspect cross-checks ascensions against blocks, participants and score
// options. Issues are reported, never fixed.
func (s *Snapshot) Inspect() DataIssues {
	var issues DataIssues

	blocks := indexBlocks(s.Blocks)
	participants := make(map[int64]struct{}, len(s.Participants))
	for _, p := range s.Participants {
		participants[p.ID] = struct{}{}
	}

	options := make(map[int64]ScoreOption)
	for _, b := range s.Blocks {
		if err := ValidateScoreOptions(b.ID, b.ScoreOptions); err != nil {
			issues.InvalidScoreOptions = append(issues.InvalidScoreOptions, b.ID)
		}
		for _, o := range b.ScoreOptions {
			options[o.ID] = o
		}
	}

	for _, a := range s.Ascensions {
		if _, ok := participants[a.ParticipantID]; !ok {
			issues.MissingParticipants = append(issues.MissingParticipants, a.ParticipantID)
		}
		if _, ok := blocks[a.BlockID]; !ok {
			issues.MissingBlocks = append(issues.MissingBlocks, a.BlockID)
			continue
		}
		if o, ok := options[a.ScoreOptionID]; ok {
			if err := ValidateAscension(a, o); err != nil {
				issues.InvalidAscensions = append(issues.InvalidAscensions, a.ID)
			}
		}
	}

	for _, d := range DuplicateAscensions(s.Ascensions) {
		issues.DuplicateAscensions = append(issues.DuplicateAscensions, d.ID)
	}
	return issues
}
