package competitionservice

import (
	"context"
	"errors"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/google/uuid"
)

var (
	// ErrParticipantNotFound is returned when the snapshot has no such participant.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrInvalidCategory is returned for a category outside the known set.
	ErrInvalidCategory = errors.New("unknown category")
)

// Service is the competition application service. Every read operation works
// on the latest snapshot.
type Service interface {
	// Sync fetches the backend collections and stores a new snapshot.
	Sync(ctx context.Context) (*SyncResult, error)

	// Latest returns the newest snapshot.
	Latest(ctx context.Context) (*competitiondomain.Snapshot, error)

	// Refresh caches a snapshot stored by another instance.
	Refresh(ctx context.Context, snapshotID uuid.UUID) (*competitiondomain.Snapshot, error)

	// Leaderboards ranks every category.
	Leaderboards(ctx context.Context, limit int) ([]competitiondomain.Leaderboard, error)

	// Leaderboard ranks one category.
	Leaderboard(ctx context.Context, category competitiondomain.Category, limit int) (*competitiondomain.Leaderboard, error)

	// Stats summarizes blocks and participants.
	Stats(ctx context.Context) (*competitiondomain.SystemStats, error)

	// GradeBreakdown counts blocks per grade for one category.
	GradeBreakdown(ctx context.Context, category competitiondomain.Category) (*competitiondomain.CategoryGradeBreakdown, error)

	// ParticipantSummary aggregates a participant's ascensions.
	ParticipantSummary(ctx context.Context, participantID int64) (*competitiondomain.AscensionSummary, error)

	// AvailableBlocks lists blocks the participant can still log.
	AvailableBlocks(ctx context.Context, participantID int64) ([]competitiondomain.Block, error)

	// ParticipantAscensions pages through a participant's ascension history.
	ParticipantAscensions(ctx context.Context, participantID int64, page int) (*competitiondomain.AscensionPage, error)

	// ParticipantsByCategory lists a category's participants by first name.
	ParticipantsByCategory(ctx context.Context, category competitiondomain.Category, gender competitiondomain.Gender) ([]competitiondomain.Participant, error)

	// LeaderboardWorkbook exports every leaderboard as an XLSX workbook.
	LeaderboardWorkbook(ctx context.Context) ([]byte, error)

	// StatsChart renders active blocks per category as a PNG.
	StatsChart(ctx context.Context) ([]byte, error)
}

// SyncResult describes a completed sync.
type SyncResult struct {
	Snapshot *competitiondomain.Snapshot
	Issues   competitiondomain.DataIssues
	// Persisted is false when the service runs without a database.
	Persisted bool
	Pruned    int64
}
