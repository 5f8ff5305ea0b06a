package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/uptrace/bun"
)

const slowQueryThreshold = 250 * time.Millisecond

// queryHook logs failed and slow queries.
type queryHook struct {
	logger *slog.Logger
}

var _ bun.QueryHook = (*queryHook)(nil)

func newQueryHook(logger *slog.Logger) *queryHook {
	return &queryHook{logger: logger.With(attr.String("component", "bun"))}
}

func (h *queryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	switch {
	case event.Err != nil && !isNoRows(event.Err):
		h.logger.ErrorContext(ctx, "Query failed",
			attr.String("operation", event.Operation()),
			attr.Duration("duration", elapsed),
			attr.Error(event.Err),
			attr.ExtractCorrelationID(ctx),
		)
	case elapsed > slowQueryThreshold:
		h.logger.WarnContext(ctx, "Slow query",
			attr.String("operation", event.Operation()),
			attr.Duration("duration", elapsed),
			attr.ExtractCorrelationID(ctx),
		)
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
