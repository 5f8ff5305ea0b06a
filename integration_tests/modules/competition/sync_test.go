//go:build integration

package competition_test

import (
	"context"
	"testing"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_PersistsForOtherInstances(t *testing.T) {
	resetDB(t)
	ctx := context.Background()

	want := testutils.NewTestDataGenerator(7).GenerateSnapshot(syncTime)
	backend := testutils.NewFakeBackend(want)
	defer backend.Close()

	res, err := newService(t, backend.URL, nil).Sync(ctx)
	require.NoError(t, err)
	assert.True(t, res.Persisted)
	assert.Zero(t, res.Issues.Count())

	// A second instance has an empty cache and reads the stored snapshot.
	other := newService(t, backend.URL, nil)
	latest, err := other.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Snapshot.ID, latest.ID)

	board, err := other.Leaderboard(ctx, competitiondomain.CategoryIntermedio, 0)
	require.NoError(t, err)
	assert.Len(t, board.Entries, len(want.Participants))

	summary, err := other.ParticipantSummary(ctx, want.Participants[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1000, summary.TotalPoints)
}
