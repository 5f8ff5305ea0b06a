package competitionhandlers

import (
	"encoding/json"
	"errors"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// HandleSnapshotRefreshed caches the snapshot announced by a sync, which may
// have run on another instance. Undecodable messages are dropped.
func (h *CompetitionHandlers) HandleSnapshotRefreshed(msg *message.Message) error {
	ctx := attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
	ctx, span := h.tracer.Start(ctx, "CompetitionHandlers.HandleSnapshotRefreshed")
	defer span.End()

	var payload eventbus.SnapshotRefreshedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.logger.WarnContext(ctx, "Dropping malformed refresh event",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_uuid", msg.UUID),
			attr.Error(err),
		)
		return nil
	}
	id, err := uuid.Parse(payload.SnapshotID)
	if err != nil {
		h.logger.WarnContext(ctx, "Dropping refresh event with invalid snapshot id",
			attr.ExtractCorrelationID(ctx),
			attr.String("snapshot_id", payload.SnapshotID),
		)
		return nil
	}

	snap, err := h.service.Refresh(ctx, id)
	if err != nil {
		if errors.Is(err, competitiondomain.ErrSnapshotNotFound) {
			h.logger.DebugContext(ctx, "Announced snapshot not stored here", attr.SnapshotID(payload.SnapshotID))
			return nil
		}
		return err
	}

	h.logger.DebugContext(ctx, "Snapshot cache refreshed",
		attr.ExtractCorrelationID(ctx),
		attr.SnapshotID(snap.ID.String()),
	)
	return nil
}
