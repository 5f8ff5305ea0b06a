package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/Black-And-White-Club/irock/app/shared/results"
)

// snapshotOperation runs fn against the latest snapshot inside withTelemetry.
// A missing snapshot is a domain failure.
func snapshotOperation[S any](
	s *CompetitionService,
	ctx context.Context,
	operationName string,
	identifier string,
	fn func(snap *competitiondomain.Snapshot) (results.OperationResult[S, error], error),
) (S, error) {
	result, err := withTelemetry(s, ctx, operationName, identifier, func(ctx context.Context) (results.OperationResult[S, error], error) {
		snap, err := s.Latest(ctx)
		if err != nil {
			if errors.Is(err, competitiondomain.ErrSnapshotNotFound) {
				return results.FailureResult[S, error](competitiondomain.ErrSnapshotNotFound), nil
			}
			return results.OperationResult[S, error]{}, err
		}
		return fn(snap)
	})
	return unwrap(result, err)
}

func success[S any](v S) (results.OperationResult[S, error], error) {
	return results.SuccessResult[S, error](v), nil
}

func failure[S any](err error) (results.OperationResult[S, error], error) {
	return results.FailureResult[S, error](err), nil
}

func (s *CompetitionService) limitOrDefault(limit int) int {
	if limit <= 0 {
		return s.opts.LeaderboardLimit
	}
	return limit
}

// Leaderboards ranks every known category. limit <= 0 uses the configured limit.
func (s *CompetitionService) Leaderboards(ctx context.Context, limit int) ([]competitiondomain.Leaderboard, error) {
	return snapshotOperation(s, ctx, "Leaderboards", "all", func(snap *competitiondomain.Snapshot) (results.OperationResult[[]competitiondomain.Leaderboard, error], error) {
		return success(competitiondomain.RankAll(snap.Participants, s.limitOrDefault(limit)))
	})
}

// Leaderboard ranks one category.
func (s *CompetitionService) Leaderboard(ctx context.Context, category competitiondomain.Category, limit int) (*competitiondomain.Leaderboard, error) {
	return snapshotOperation(s, ctx, "Leaderboard", string(category), func(snap *competitiondomain.Snapshot) (results.OperationResult[*competitiondomain.Leaderboard, error], error) {
		if !category.Known() {
			return failure[*competitiondomain.Leaderboard](fmt.Errorf("%w: %q", ErrInvalidCategory, category))
		}
		return success(&competitiondomain.Leaderboard{
			Category: category,
			Entries:  competitiondomain.Rank(snap.Participants, category, s.limitOrDefault(limit)),
		})
	})
}

// Stats summarizes the latest snapshot.
func (s *CompetitionService) Stats(ctx context.Context) (*competitiondomain.SystemStats, error) {
	return snapshotOperation(s, ctx, "Stats", "all", func(snap *competitiondomain.Snapshot) (results.OperationResult[*competitiondomain.SystemStats, error], error) {
		stats := competitiondomain.SummarizeStatistics(snap.Blocks, snap.Participants, s.opts.StatsGradeTable)
		return success(&stats)
	})
}

// GradeBreakdown counts blocks per configured grade of category.
func (s *CompetitionService) GradeBreakdown(ctx context.Context, category competitiondomain.Category) (*competitiondomain.CategoryGradeBreakdown, error) {
	return snapshotOperation(s, ctx, "GradeBreakdown", string(category), func(snap *competitiondomain.Snapshot) (results.OperationResult[*competitiondomain.CategoryGradeBreakdown, error], error) {
		breakdown, ok := competitiondomain.GradeBreakdown(snap.Blocks, category, s.opts.StatsGradeTable)
		if !ok {
			return failure[*competitiondomain.CategoryGradeBreakdown](fmt.Errorf("%w: %q", ErrInvalidCategory, category))
		}
		return success(&breakdown)
	})
}

// ParticipantSummary aggregates the participant's ascensions.
func (s *CompetitionService) ParticipantSummary(ctx context.Context, participantID int64) (*competitiondomain.AscensionSummary, error) {
	return snapshotOperation(s, ctx, "ParticipantSummary", strconv.FormatInt(participantID, 10), func(snap *competitiondomain.Snapshot) (results.OperationResult[*competitiondomain.AscensionSummary, error], error) {
		p, ok := snap.Participant(participantID)
		if !ok {
			return failure[*competitiondomain.AscensionSummary](ErrParticipantNotFound)
		}
		summary := competitiondomain.SummarizeAscensions(p, snap.Ascensions, snap.Blocks, s.opts.Now().In(s.opts.Location))
		return success(&summary)
	})
}

// AvailableBlocks lists the active eligible blocks the participant has not completed.
func (s *CompetitionService) AvailableBlocks(ctx context.Context, participantID int64) ([]competitiondomain.Block, error) {
	return snapshotOperation(s, ctx, "AvailableBlocks", strconv.FormatInt(participantID, 10), func(snap *competitiondomain.Snapshot) (results.OperationResult[[]competitiondomain.Block, error], error) {
		p, ok := snap.Participant(participantID)
		if !ok {
			return failure[[]competitiondomain.Block](ErrParticipantNotFound)
		}
		if !competitiondomain.IsConfigured(p.Cup, s.opts.GradeTable) {
			s.logger.WarnContext(ctx, "No grade configuration for participant category",
				attr.ExtractCorrelationID(ctx),
				attr.ParticipantID(p.ID),
				attr.String("category", string(p.Cup)),
			)
		}
		completed := competitiondomain.AscensionsFor(p.ID, snap.Ascensions)
		return success(competitiondomain.AvailableBlocks(snap.Blocks, completed, p.Cup, s.opts.GradeTable))
	})
}

// ParticipantAscensions returns one page of the participant's history, newest first.
func (s *CompetitionService) ParticipantAscensions(ctx context.Context, participantID int64, page int) (*competitiondomain.AscensionPage, error) {
	return snapshotOperation(s, ctx, "ParticipantAscensions", strconv.FormatInt(participantID, 10), func(snap *competitiondomain.Snapshot) (results.OperationResult[*competitiondomain.AscensionPage, error], error) {
		p, ok := snap.Participant(participantID)
		if !ok {
			return failure[*competitiondomain.AscensionPage](ErrParticipantNotFound)
		}
		history := competitiondomain.AscensionsFor(p.ID, snap.Ascensions)
		paged := competitiondomain.PageAscensions(history, page, competitiondomain.DefaultAscensionsPerPage)
		return success(&paged)
	})
}

// ParticipantsByCategory lists participants of category, optionally of one gender.
func (s *CompetitionService) ParticipantsByCategory(ctx context.Context, category competitiondomain.Category, gender competitiondomain.Gender) ([]competitiondomain.Participant, error) {
	return snapshotOperation(s, ctx, "ParticipantsByCategory", string(category), func(snap *competitiondomain.Snapshot) (results.OperationResult[[]competitiondomain.Participant, error], error) {
		if !category.Known() {
			return failure[[]competitiondomain.Participant](fmt.Errorf("%w: %q", ErrInvalidCategory, category))
		}
		return success(competitiondomain.ParticipantsByCategory(snap.Participants, category, gender))
	})
}
