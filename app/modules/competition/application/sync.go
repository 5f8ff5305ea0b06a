package competitionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/Black-And-White-Club/irock/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sync fetches participants, blocks, ascensions and score options, stores the
// snapshot and publishes a refresh event. Inconsistencies between the
// collections are logged and counted but never fail the sync.
func (s *CompetitionService) Sync(ctx context.Context) (*SyncResult, error) {
	result, err := withTelemetry(s, ctx, "Sync", "backend", func(ctx context.Context) (results.OperationResult[*SyncResult, error], error) {
		snap, err := s.fetchSnapshot(ctx)
		if err != nil {
			return results.OperationResult[*SyncResult, error]{}, err
		}

		issues := snap.Inspect()
		s.reportIssues(ctx, snap, issues)

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*SyncResult, error], error) {
			return s.storeSnapshotLogic(ctx, db, snap, issues)
		})
	})
	out, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.remember(out.Snapshot)
	if s.metrics != nil {
		s.metrics.RecordSnapshotSize(ctx, len(out.Snapshot.Participants), len(out.Snapshot.Blocks), len(out.Snapshot.Ascensions))
	}

	payload := eventbus.SnapshotRefreshedPayload{
		SnapshotID:   out.Snapshot.ID.String(),
		FetchedAt:    out.Snapshot.FetchedAt,
		Participants: len(out.Snapshot.Participants),
		Blocks:       len(out.Snapshot.Blocks),
		Ascensions:   len(out.Snapshot.Ascensions),
		DataIssues:   out.Issues.Count(),
	}
	if err := s.publisher.PublishSnapshotRefreshed(ctx, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish snapshot refresh",
			attr.ExtractCorrelationID(ctx),
			attr.SnapshotID(payload.SnapshotID),
			attr.Error(err),
		)
	}
	return out, nil
}

func (s *CompetitionService) fetchSnapshot(ctx context.Context) (*competitiondomain.Snapshot, error) {
	participants, err := s.backend.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}
	blocks, err := s.backend.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}
	ascensions, err := s.backend.ListAscensions(ctx, nil)
	if err != nil {
		return nil, err
	}

	var options []competitiondomain.ScoreOption
	for _, b := range blocks {
		if len(b.ScoreOptions) > 0 {
			options = append(options, b.ScoreOptions...)
			continue
		}
		blockOptions, err := s.backend.ListScoreOptions(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", b.ID, err)
		}
		options = append(options, blockOptions...)
	}

	return competitiondomain.NewSnapshot(s.opts.Now(), participants, blocks, ascensions, options), nil
}

func (s *CompetitionService) reportIssues(ctx context.Context, snap *competitiondomain.Snapshot, issues competitiondomain.DataIssues) {
	kinds := []struct {
		kind string
		ids  []int64
	}{
		{"missing_block", issues.MissingBlocks},
		{"missing_participant", issues.MissingParticipants},
		{"invalid_ascension", issues.InvalidAscensions},
		{"duplicate_ascension", issues.DuplicateAscensions},
		{"invalid_score_options", issues.InvalidScoreOptions},
	}
	for _, k := range kinds {
		if len(k.ids) == 0 {
			continue
		}
		s.logger.WarnContext(ctx, "Snapshot data issue",
			attr.ExtractCorrelationID(ctx),
			attr.SnapshotID(snap.ID.String()),
			attr.String("kind", k.kind),
			attr.Any("ids", k.ids),
		)
		if s.metrics != nil {
			for range k.ids {
				s.metrics.RecordDataIssue(ctx, k.kind)
			}
		}
	}

	for _, p := range snap.Participants {
		if p.IsCompetitor() && !competitiondomain.IsConfigured(p.Cup, s.opts.GradeTable) {
			s.logger.WarnContext(ctx, "Participant category has no grade configuration",
				attr.ExtractCorrelationID(ctx),
				attr.ParticipantID(p.ID),
				attr.String("category", string(p.Cup)),
			)
		}
	}
}

func (s *CompetitionService) storeSnapshotLogic(ctx context.Context, db bun.IDB, snap *competitiondomain.Snapshot, issues competitiondomain.DataIssues) (results.OperationResult[*SyncResult, error], error) {
	out := &SyncResult{Snapshot: snap, Issues: issues}
	if s.repo == nil {
		return results.SuccessResult[*SyncResult, error](out), nil
	}

	if err := s.repo.Save(ctx, db, competitiondb.FromDomain(snap, issues.Count())); err != nil {
		return results.OperationResult[*SyncResult, error]{}, err
	}
	pruned, err := s.repo.Prune(ctx, db, s.opts.KeepSnapshots)
	if err != nil {
		return results.OperationResult[*SyncResult, error]{}, err
	}

	out.Persisted = true
	out.Pruned = pruned
	return results.SuccessResult[*SyncResult, error](out), nil
}

// Latest returns the newest snapshot. The in-memory copy is served when
// present; otherwise the repository is consulted.
func (s *CompetitionService) Latest(ctx context.Context) (*competitiondomain.Snapshot, error) {
	if snap := s.cached(); snap != nil {
		return snap, nil
	}

	result, err := withTelemetry(s, ctx, "Latest", "snapshot", func(ctx context.Context) (results.OperationResult[*competitiondomain.Snapshot, error], error) {
		return s.loadLatestLogic(ctx, nil)
	})
	snap, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.remember(snap)
	return snap, nil
}

func (s *CompetitionService) loadLatestLogic(ctx context.Context, db bun.IDB) (results.OperationResult[*competitiondomain.Snapshot, error], error) {
	if s.repo == nil {
		return results.FailureResult[*competitiondomain.Snapshot, error](competitiondomain.ErrSnapshotNotFound), nil
	}
	row, err := s.repo.Latest(ctx, db)
	if err != nil {
		if errors.Is(err, competitiondb.ErrNotFound) {
			return results.FailureResult[*competitiondomain.Snapshot, error](competitiondomain.ErrSnapshotNotFound), nil
		}
		return results.OperationResult[*competitiondomain.Snapshot, error]{}, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	return results.SuccessResult[*competitiondomain.Snapshot, error](row.ToDomain()), nil
}

// Refresh loads the snapshot another instance announced. It is a no-op when
// that snapshot is already cached.
func (s *CompetitionService) Refresh(ctx context.Context, snapshotID uuid.UUID) (*competitiondomain.Snapshot, error) {
	if snap := s.cached(); snap != nil && snap.ID == snapshotID {
		return snap, nil
	}

	result, err := withTelemetry(s, ctx, "Refresh", snapshotID.String(), func(ctx context.Context) (results.OperationResult[*competitiondomain.Snapshot, error], error) {
		if s.repo == nil {
			return results.FailureResult[*competitiondomain.Snapshot, error](competitiondomain.ErrSnapshotNotFound), nil
		}
		row, err := s.repo.GetByID(ctx, nil, snapshotID)
		if err != nil {
			if errors.Is(err, competitiondb.ErrNotFound) {
				return results.FailureResult[*competitiondomain.Snapshot, error](competitiondomain.ErrSnapshotNotFound), nil
			}
			return results.OperationResult[*competitiondomain.Snapshot, error]{}, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return results.SuccessResult[*competitiondomain.Snapshot, error](row.ToDomain()), nil
	})
	snap, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.remember(snap)
	return s.cached(), nil
}
