package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream retaining iRock events.
const StreamName = "IROCK"

// streamConfigs lists the streams created at startup.
var streamConfigs = []jetstream.StreamConfig{
	{
		Name:     StreamName,
		Subjects: []string{"irock.>"},
		MaxAge:   7 * 24 * time.Hour,
	},
}

// InitializeStreams creates the event streams if they do not exist yet.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	for _, cfg := range streamConfigs {
		_, err := js.Stream(ctx, cfg.Name)
		if errors.Is(err, jetstream.ErrStreamNotFound) {
			if _, err := js.CreateStream(ctx, cfg); err != nil {
				logger.Error("Failed to create JetStream stream", attr.String("stream", cfg.Name), attr.Error(err))
				return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
			}
			logger.Info("Created JetStream stream", attr.String("stream", cfg.Name))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to check stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}
