package competitionservice

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Backend Client
// ------------------------

type FakeBackend struct {
	trace []string

	ListParticipantsFunc func(ctx context.Context) ([]competitiondomain.Participant, error)
	ListBlocksFunc       func(ctx context.Context) ([]competitiondomain.Block, error)
	ListAscensionsFunc   func(ctx context.Context, blockID *int64) ([]competitiondomain.Ascension, error)
	ListScoreOptionsFunc func(ctx context.Context, blockID int64) ([]competitiondomain.ScoreOption, error)
	LoginFunc            func(ctx context.Context, email, password string) (*competitionbackend.LoginResponse, error)
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{trace: []string{}}
}

func (f *FakeBackend) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeBackend) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeBackend) ListParticipants(ctx context.Context) ([]competitiondomain.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeBackend) ListBlocks(ctx context.Context) ([]competitiondomain.Block, error) {
	f.record("ListBlocks")
	if f.ListBlocksFunc != nil {
		return f.ListBlocksFunc(ctx)
	}
	return nil, nil
}

func (f *FakeBackend) ListAscensions(ctx context.Context, blockID *int64) ([]competitiondomain.Ascension, error) {
	f.record("ListAscensions")
	if f.ListAscensionsFunc != nil {
		return f.ListAscensionsFunc(ctx, blockID)
	}
	return nil, nil
}

func (f *FakeBackend) ListScoreOptions(ctx context.Context, blockID int64) ([]competitiondomain.ScoreOption, error) {
	f.record("ListScoreOptions")
	if f.ListScoreOptionsFunc != nil {
		return f.ListScoreOptionsFunc(ctx, blockID)
	}
	return nil, nil
}

func (f *FakeBackend) Login(ctx context.Context, email, password string) (*competitionbackend.LoginResponse, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return nil, competitionbackend.ErrInvalidCredentials
}

// ------------------------
// Fake Snapshot Repo
// ------------------------

type FakeSnapshotRepo struct {
	trace []string

	SaveFunc    func(ctx context.Context, db bun.IDB, snapshot *competitiondb.Snapshot) error
	LatestFunc  func(ctx context.Context, db bun.IDB) (*competitiondb.Snapshot, error)
	GetByIDFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) (*competitiondb.Snapshot, error)
	PruneFunc   func(ctx context.Context, db bun.IDB, keep int) (int64, error)
}

func NewFakeSnapshotRepo() *FakeSnapshotRepo {
	return &FakeSnapshotRepo{trace: []string{}}
}

func (f *FakeSnapshotRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeSnapshotRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeSnapshotRepo) Save(ctx context.Context, db bun.IDB, snapshot *competitiondb.Snapshot) error {
	f.record("Save")
	if f.SaveFunc != nil {
		return f.SaveFunc(ctx, db, snapshot)
	}
	return nil
}

func (f *FakeSnapshotRepo) Latest(ctx context.Context, db bun.IDB) (*competitiondb.Snapshot, error) {
	f.record("Latest")
	if f.LatestFunc != nil {
		return f.LatestFunc(ctx, db)
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeSnapshotRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*competitiondb.Snapshot, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, competitiondb.ErrNotFound
}

func (f *FakeSnapshotRepo) Prune(ctx context.Context, db bun.IDB, keep int) (int64, error) {
	f.record("Prune")
	if f.PruneFunc != nil {
		return f.PruneFunc(ctx, db, keep)
	}
	return 0, nil
}

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	Published []eventbus.SnapshotRefreshedPayload
	Err       error
}

func (f *FakePublisher) PublishSnapshotRefreshed(ctx context.Context, payload eventbus.SnapshotRefreshedPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Published = append(f.Published, payload)
	return f.Err
}

func (f *FakePublisher) Close() error { return nil }

// Interface assertions
var (
	_ competitionbackend.Client = (*FakeBackend)(nil)
	_ competitiondb.Repository  = (*FakeSnapshotRepo)(nil)
	_ eventbus.Publisher        = (*FakePublisher)(nil)
)
