//go:build integration

package competition_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	competitionservice "github.com/Black-And-White-Club/irock/app/modules/competition/application"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/irock/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/irock/integration_tests/testutils"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

var syncTime = time.Date(2025, 12, 6, 10, 0, 0, 0, time.UTC)

func resetDB(t *testing.T) {
	t.Helper()
	require.NoError(t, testutils.TruncateSnapshots(context.Background(), testEnv.DB))
}

func newService(t *testing.T, backendURL string, publisher eventbus.Publisher) *competitionservice.CompetitionService {
	t.Helper()

	logger := slog.Default()
	tracer := noop.NewTracerProvider().Tracer("integration")

	client, err := competitionbackend.NewHTTPClient(backendURL, "svc", 5*time.Second, logger, tracer)
	require.NoError(t, err)

	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}

	return competitionservice.NewCompetitionService(
		client,
		competitiondb.NewRepository(testEnv.DB),
		publisher,
		logger,
		metrics.NewNoop(),
		tracer,
		testEnv.DB,
		competitionservice.Options{
			GradeTable: competitiondomain.DefaultGradeTable(),
			Location:   time.UTC,
			Now:        func() time.Time { return syncTime },
		},
	)
}
