package competitionhandlers

import (
	"context"

	competitionservice "github.com/Black-And-White-Club/irock/app/modules/competition/application"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/google/uuid"
)

// FakeService answers every query with ErrSnapshotNotFound unless a Func
// field is set.
type FakeService struct {
	trace []string

	SyncFunc                   func(ctx context.Context) (*competitionservice.SyncResult, error)
	RefreshFunc                func(ctx context.Context, id uuid.UUID) (*competitiondomain.Snapshot, error)
	LeaderboardsFunc           func(ctx context.Context, limit int) ([]competitiondomain.Leaderboard, error)
	LeaderboardFunc            func(ctx context.Context, category competitiondomain.Category, limit int) (*competitiondomain.Leaderboard, error)
	StatsFunc                  func(ctx context.Context) (*competitiondomain.SystemStats, error)
	GradeBreakdownFunc         func(ctx context.Context, category competitiondomain.Category) (*competitiondomain.CategoryGradeBreakdown, error)
	ParticipantSummaryFunc     func(ctx context.Context, id int64) (*competitiondomain.AscensionSummary, error)
	AvailableBlocksFunc        func(ctx context.Context, id int64) ([]competitiondomain.Block, error)
	ParticipantAscensionsFunc  func(ctx context.Context, id int64, page int) (*competitiondomain.AscensionPage, error)
	ParticipantsByCategoryFunc func(ctx context.Context, category competitiondomain.Category, gender competitiondomain.Gender) ([]competitiondomain.Participant, error)
	LeaderboardWorkbookFunc    func(ctx context.Context) ([]byte, error)
	StatsChartFunc             func(ctx context.Context) ([]byte, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) Sync(ctx context.Context) (*competitionservice.SyncResult, error) {
	f.record("Sync")
	if f.SyncFunc != nil {
		return f.SyncFunc(ctx)
	}
	return &competitionservice.SyncResult{Snapshot: competitiondomain.NewSnapshot(fixedNow, nil, nil, nil, nil)}, nil
}

func (f *FakeService) Latest(ctx context.Context) (*competitiondomain.Snapshot, error) {
	f.record("Latest")
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) Refresh(ctx context.Context, id uuid.UUID) (*competitiondomain.Snapshot, error) {
	f.record("Refresh")
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx, id)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) Leaderboards(ctx context.Context, limit int) ([]competitiondomain.Leaderboard, error) {
	f.record("Leaderboards")
	if f.LeaderboardsFunc != nil {
		return f.LeaderboardsFunc(ctx, limit)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) Leaderboard(ctx context.Context, category competitiondomain.Category, limit int) (*competitiondomain.Leaderboard, error) {
	f.record("Leaderboard")
	if f.LeaderboardFunc != nil {
		return f.LeaderboardFunc(ctx, category, limit)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) Stats(ctx context.Context) (*competitiondomain.SystemStats, error) {
	f.record("Stats")
	if f.StatsFunc != nil {
		return f.StatsFunc(ctx)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) GradeBreakdown(ctx context.Context, category competitiondomain.Category) (*competitiondomain.CategoryGradeBreakdown, error) {
	f.record("GradeBreakdown")
	if f.GradeBreakdownFunc != nil {
		return f.GradeBreakdownFunc(ctx, category)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) ParticipantSummary(ctx context.Context, id int64) (*competitiondomain.AscensionSummary, error) {
	f.record("ParticipantSummary")
	if f.ParticipantSummaryFunc != nil {
		return f.ParticipantSummaryFunc(ctx, id)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) AvailableBlocks(ctx context.Context, id int64) ([]competitiondomain.Block, error) {
	f.record("AvailableBlocks")
	if f.AvailableBlocksFunc != nil {
		return f.AvailableBlocksFunc(ctx, id)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) ParticipantAscensions(ctx context.Context, id int64, page int) (*competitiondomain.AscensionPage, error) {
	f.record("ParticipantAscensions")
	if f.ParticipantAscensionsFunc != nil {
		return f.ParticipantAscensionsFunc(ctx, id, page)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) ParticipantsByCategory(ctx context.Context, category competitiondomain.Category, gender competitiondomain.Gender) ([]competitiondomain.Participant, error) {
	f.record("ParticipantsByCategory")
	if f.ParticipantsByCategoryFunc != nil {
		return f.ParticipantsByCategoryFunc(ctx, category, gender)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) LeaderboardWorkbook(ctx context.Context) ([]byte, error) {
	f.record("LeaderboardWorkbook")
	if f.LeaderboardWorkbookFunc != nil {
		return f.LeaderboardWorkbookFunc(ctx)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

func (f *FakeService) StatsChart(ctx context.Context) ([]byte, error) {
	f.record("StatsChart")
	if f.StatsChartFunc != nil {
		return f.StatsChartFunc(ctx)
	}
	return nil, competitiondomain.ErrSnapshotNotFound
}

var _ competitionservice.Service = (*FakeService)(nil)
