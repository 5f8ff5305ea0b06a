package competitionhandlers

import (
	"net/http"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/google/uuid"
)

type syncResponse struct {
	SnapshotID   uuid.UUID                    `json:"snapshot_id"`
	FetchedAt    time.Time                    `json:"fetched_at"`
	Participants int                          `json:"participants"`
	Blocks       int                          `json:"blocks"`
	Ascensions   int                          `json:"ascensions"`
	Issues       competitiondomain.DataIssues `json:"issues"`
	Persisted    bool                         `json:"persisted"`
	Pruned       int64                        `json:"pruned"`
}

// HandleSync runs a sync immediately.
func (h *CompetitionHandlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleSync")
	defer span.End()

	result, err := h.service.Sync(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Manual sync failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		writeError(w, http.StatusBadGateway, "sync failed")
		return
	}

	snap := result.Snapshot
	writeJSON(w, http.StatusOK, syncResponse{
		SnapshotID:   snap.ID,
		FetchedAt:    snap.FetchedAt,
		Participants: len(snap.Participants),
		Blocks:       len(snap.Blocks),
		Ascensions:   len(snap.Ascensions),
		Issues:       result.Issues,
		Persisted:    result.Persisted,
		Pruned:       result.Pruned,
	})
}
