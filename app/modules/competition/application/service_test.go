package competitionservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/irock/app/shared/observability/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var fixedNow = time.Date(2025, 12, 6, 12, 0, 0, 0, time.UTC)

func fixtureParticipants() []competitiondomain.Participant {
	return []competitiondomain.Participant{
		{ID: 1, FirstName: "Ana", Cup: competitiondomain.CategoryKids, Gender: competitiondomain.GenderFemale, IsActive: true, Score: 1500},
		{ID: 2, FirstName: "Beto", Cup: competitiondomain.CategoryKids, Gender: competitiondomain.GenderMale, IsActive: true, Score: 900},
		{ID: 3, FirstName: "Staff", Cup: competitiondomain.CategoryKids, IsStaff: true, IsActive: true, Score: 5000},
		{ID: 4, FirstName: "Carla", Cup: competitiondomain.CategoryPrincipiante, Gender: competitiondomain.GenderFemale, IsActive: true, Score: 400},
	}
}

func fixtureBlocks() []competitiondomain.Block {
	options := competitiondomain.DefaultScoreOptions(10)
	for i := range options {
		options[i].ID = int64(101 + i)
	}
	return []competitiondomain.Block{
		{ID: 10, BlockType: competitiondomain.BlockTypeRuta, Grade: "5.8", Lane: "L1", Distance: 12, Active: true, ScoreOptions: options},
		{ID: 11, BlockType: competitiondomain.BlockTypeBoulder, Grade: "V0", Lane: "B1", Distance: 4, Active: true},
		{ID: 12, BlockType: competitiondomain.BlockTypeRuta, Grade: "5.12a", Lane: "L9", Distance: 20, Active: true},
	}
}

func fixtureAscensions() []competitiondomain.Ascension {
	return []competitiondomain.Ascension{
		{ID: 500, ParticipantID: 1, BlockID: 10, ScoreOptionID: 101, EarnedPoints: 1000, BlockLane: "L1", ScoreOptionLabel: "A Flash", CreatedAt: fixedNow.Add(-time.Hour)},
		{ID: 501, ParticipantID: 1, BlockID: 11, ScoreOptionID: 201, EarnedPoints: 500, BlockLane: "B1", ScoreOptionLabel: "Segundo Intento", CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{ID: 502, ParticipantID: 2, BlockID: 99, ScoreOptionID: 1, EarnedPoints: 100, CreatedAt: fixedNow.Add(-3 * time.Hour)},
	}
}

func newFixtureBackend() *FakeBackend {
	backend := NewFakeBackend()
	backend.ListParticipantsFunc = func(ctx context.Context) ([]competitiondomain.Participant, error) {
		return fixtureParticipants(), nil
	}
	backend.ListBlocksFunc = func(ctx context.Context) ([]competitiondomain.Block, error) {
		return fixtureBlocks(), nil
	}
	backend.ListAscensionsFunc = func(ctx context.Context, blockID *int64) ([]competitiondomain.Ascension, error) {
		return fixtureAscensions(), nil
	}
	backend.ListScoreOptionsFunc = func(ctx context.Context, blockID int64) ([]competitiondomain.ScoreOption, error) {
		options := competitiondomain.DefaultScoreOptions(blockID)
		for i := range options {
			options[i].ID = blockID*10 + int64(i) + 90
		}
		return options, nil
	}
	return backend
}

func newTestService(backend *FakeBackend, repo competitiondb.Repository, publisher *FakePublisher) *CompetitionService {
	return newTestServiceWith(backend, repo, publisher, slog.Default(), Options{})
}

func newTestServiceWith(backend *FakeBackend, repo competitiondb.Repository, publisher *FakePublisher, logger *slog.Logger, opts Options) *CompetitionService {
	opts.Location = time.UTC
	opts.Now = func() time.Time { return fixedNow }
	return NewCompetitionService(
		backend,
		repo,
		publisher,
		logger,
		metrics.NewNoop(),
		noop.NewTracerProvider().Tracer("test"),
		nil,
		opts,
	)
}

// syncedService returns a service that already holds the fixture snapshot.
func syncedService(t *testing.T) *CompetitionService {
	t.Helper()
	svc := newTestService(newFixtureBackend(), nil, &FakePublisher{})
	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	return svc
}

func TestSync(t *testing.T) {
	tests := []struct {
		name          string
		setupBackend  func(*FakeBackend)
		setupRepo     func(*FakeSnapshotRepo)
		withRepo      bool
		publishErr    error
		wantErr       bool
		wantPersisted bool
		wantRepoTrace []string
		wantPublished int
	}{
		{
			name:          "in memory only",
			wantPublished: 1,
		},
		{
			name:     "persists and prunes",
			withRepo: true,
			setupRepo: func(f *FakeSnapshotRepo) {
				f.PruneFunc = func(ctx context.Context, db bun.IDB, keep int) (int64, error) {
					return 2, nil
				}
			},
			wantPersisted: true,
			wantRepoTrace: []string{"Save", "Prune"},
			wantPublished: 1,
		},
		{
			name:     "repository error fails the sync",
			withRepo: true,
			setupRepo: func(f *FakeSnapshotRepo) {
				f.SaveFunc = func(ctx context.Context, db bun.IDB, snapshot *competitiondb.Snapshot) error {
					return errors.New("disk full")
				}
			},
			wantErr:       true,
			wantRepoTrace: []string{"Save"},
		},
		{
			name: "backend error fails the sync",
			setupBackend: func(f *FakeBackend) {
				f.ListBlocksFunc = func(ctx context.Context) ([]competitiondomain.Block, error) {
					return nil, errors.New("backend down")
				}
			},
			wantErr: true,
		},
		{
			name:          "publish error is not fatal",
			publishErr:    errors.New("nats down"),
			wantPublished: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFixtureBackend()
			if tt.setupBackend != nil {
				tt.setupBackend(backend)
			}
			repo := NewFakeSnapshotRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			publisher := &FakePublisher{Err: tt.publishErr}

			var r competitiondb.Repository
			if tt.withRepo {
				r = repo
			}
			svc := newTestService(backend, r, publisher)

			got, err := svc.Sync(context.Background())

			if tt.wantRepoTrace != nil {
				assert.Equal(t, tt.wantRepoTrace, repo.Trace())
			}
			assert.Len(t, publisher.Published, tt.wantPublished)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc.cached(), "failed sync must not replace the snapshot")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPersisted, got.Persisted)
			assert.Equal(t, fixedNow, got.Snapshot.FetchedAt)
			assert.Same(t, got.Snapshot, svc.cached())
		})
	}
}

func TestSync_AssemblesSnapshot(t *testing.T) {
	backend := newFixtureBackend()
	publisher := &FakePublisher{}
	svc := newTestService(backend, nil, publisher)

	got, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ListParticipants", "ListBlocks", "ListAscensions", "ListScoreOptions", "ListScoreOptions"}, backend.Trace(),
		"options are only fetched for blocks without nested options")
	require.Len(t, got.Snapshot.Blocks, 3)
	assert.Len(t, got.Snapshot.Blocks[1].ScoreOptions, 4)
	assert.Len(t, got.Snapshot.ScoreOptions, 12)

	assert.Equal(t, []int64{99}, got.Issues.MissingBlocks)
	assert.Empty(t, got.Issues.InvalidAscensions)

	require.Len(t, publisher.Published, 1)
	assert.Equal(t, got.Snapshot.ID.String(), publisher.Published[0].SnapshotID)
	assert.Equal(t, 4, publisher.Published[0].Participants)
	assert.Equal(t, got.Issues.Count(), publisher.Published[0].DataIssues)
}

func TestLatest(t *testing.T) {
	stored := competitiondb.FromDomain(competitiondomain.NewSnapshot(fixedNow, fixtureParticipants(), nil, nil, nil), 0)

	tests := []struct {
		name       string
		setupRepo  func(*FakeSnapshotRepo)
		withRepo   bool
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:    "no repository and nothing synced",
			wantErr: competitiondomain.ErrSnapshotNotFound,
		},
		{
			name:     "repository empty",
			withRepo: true,
			wantErr:  competitiondomain.ErrSnapshotNotFound,
		},
		{
			name:     "loaded from repository",
			withRepo: true,
			setupRepo: func(f *FakeSnapshotRepo) {
				f.LatestFunc = func(ctx context.Context, db bun.IDB) (*competitiondb.Snapshot, error) {
					return stored, nil
				}
			},
		},
		{
			name:     "repository error",
			withRepo: true,
			setupRepo: func(f *FakeSnapshotRepo) {
				f.LatestFunc = func(ctx context.Context, db bun.IDB) (*competitiondb.Snapshot, error) {
					return nil, errors.New("connection reset")
				}
			},
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeSnapshotRepo()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}
			var r competitiondb.Repository
			if tt.withRepo {
				r = repo
			}
			svc := newTestService(newFixtureBackend(), r, &FakePublisher{})

			got, err := svc.Latest(context.Background())
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				return
			case tt.wantAnyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, competitiondomain.ErrSnapshotNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, stored.ID, got.ID)

			// A second call is served from memory.
			_, err = svc.Latest(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []string{"Latest"}, repo.Trace())
		})
	}
}

func TestRemember_KeepsNewest(t *testing.T) {
	svc := newTestService(newFixtureBackend(), nil, &FakePublisher{})
	newer := competitiondomain.NewSnapshot(fixedNow, nil, nil, nil, nil)
	older := competitiondomain.NewSnapshot(fixedNow.Add(-time.Minute), nil, nil, nil, nil)

	svc.remember(newer)
	svc.remember(older)
	assert.Same(t, newer, svc.cached())
}

func TestRefresh(t *testing.T) {
	announced := competitiondomain.NewSnapshot(fixedNow, fixtureParticipants(), nil, nil, nil)
	stored := competitiondb.FromDomain(announced, 0)

	t.Run("loads announced snapshot", func(t *testing.T) {
		repo := NewFakeSnapshotRepo()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*competitiondb.Snapshot, error) {
			assert.Equal(t, announced.ID, id)
			return stored, nil
		}
		svc := newTestService(newFixtureBackend(), repo, &FakePublisher{})

		got, err := svc.Refresh(context.Background(), announced.ID)
		require.NoError(t, err)
		assert.Equal(t, announced.ID, got.ID)

		// Already cached: the repository is not asked again.
		_, err = svc.Refresh(context.Background(), announced.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"GetByID"}, repo.Trace())
	})

	t.Run("older snapshot does not replace newer cache", func(t *testing.T) {
		repo := NewFakeSnapshotRepo()
		repo.GetByIDFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (*competitiondb.Snapshot, error) {
			return stored, nil
		}
		svc := newTestService(newFixtureBackend(), repo, &FakePublisher{})
		newer := competitiondomain.NewSnapshot(fixedNow.Add(time.Minute), nil, nil, nil, nil)
		svc.remember(newer)

		got, err := svc.Refresh(context.Background(), announced.ID)
		require.NoError(t, err)
		assert.Same(t, newer, got)
	})

	t.Run("unknown snapshot", func(t *testing.T) {
		svc := newTestService(newFixtureBackend(), NewFakeSnapshotRepo(), &FakePublisher{})
		_, err := svc.Refresh(context.Background(), uuid.New())
		assert.ErrorIs(t, err, competitiondomain.ErrSnapshotNotFound)
	})

	t.Run("without repository", func(t *testing.T) {
		svc := newTestService(newFixtureBackend(), nil, &FakePublisher{})
		_, err := svc.Refresh(context.Background(), uuid.New())
		assert.ErrorIs(t, err, competitiondomain.ErrSnapshotNotFound)
	})
}
