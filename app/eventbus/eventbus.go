package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// SnapshotRefreshedTopic is published after every successful sync.
const SnapshotRefreshedTopic = "irock.snapshot.refreshed.v1"

// SnapshotRefreshedPayload announces a new snapshot.
type SnapshotRefreshedPayload struct {
	SnapshotID   string    `json:"snapshot_id"`
	FetchedAt    time.Time `json:"fetched_at"`
	Participants int       `json:"participants"`
	Blocks       int       `json:"blocks"`
	Ascensions   int       `json:"ascensions"`
	DataIssues   int       `json:"data_issues"`
}

// Publisher publishes domain events.
type Publisher interface {
	PublishSnapshotRefreshed(ctx context.Context, payload SnapshotRefreshedPayload) error
	Close() error
}

// EventBus publishes events to NATS through Watermill. Subjects under
// "irock.>" are retained in a JetStream stream for late consumers.
type EventBus struct {
	publisher message.Publisher
	natsConn  *nc.Conn
	logger    *slog.Logger
}

// NewEventBus connects to NATS, ensures the event stream exists and creates
// the Watermill publisher.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (*EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true), nc.Timeout(10*time.Second))
	if err != nil {
		logger.Error("Failed to connect to NATS", attr.Error(err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}
	if err := InitializeStreams(ctx, js, logger); err != nil {
		natsConn.Close()
		return nil, err
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:       natsURL,
			Marshaler: &nats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			// Core NATS publish; the stream captures the subjects it binds.
			JetStream: nats.JetStreamConfig{Disabled: true},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		natsConn.Close()
		logger.Error("Failed to create Watermill publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	return &EventBus{
		publisher: publisher,
		natsConn:  natsConn,
		logger:    logger,
	}, nil
}

// PublishSnapshotRefreshed publishes payload on SnapshotRefreshedTopic.
func (eb *EventBus) PublishSnapshotRefreshed(ctx context.Context, payload SnapshotRefreshedPayload) error {
	msg, err := newMessage(ctx, payload)
	if err != nil {
		return err
	}

	eb.logger.DebugContext(ctx, "Publishing message",
		attr.String("topic", SnapshotRefreshedTopic),
		attr.String("message_id", msg.UUID),
	)

	if err := eb.publisher.Publish(SnapshotRefreshedTopic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			attr.String("topic", SnapshotRefreshedTopic),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish %s: %w", SnapshotRefreshedTopic, err)
	}
	return nil
}

// Close closes the publisher and the NATS connection.
func (eb *EventBus) Close() error {
	err := eb.publisher.Close()
	eb.natsConn.Close()
	return err
}

// NewSubscriber creates a core NATS Watermill subscriber for consumers of
// the published topics.
func NewSubscriber(natsURL string, logger *slog.Logger) (message.Subscriber, error) {
	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: &nats.NATSMarshaler{},
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
			JetStream: nats.JetStreamConfig{Disabled: true},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}
	return subscriber, nil
}

func newMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	if id := attr.CorrelationID(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	msg.SetContext(ctx)
	return msg, nil
}

// NoopPublisher drops events. It is used when NATS is not configured.
type NoopPublisher struct {
	Logger *slog.Logger
}

// PublishSnapshotRefreshed logs and drops the event.
func (p NoopPublisher) PublishSnapshotRefreshed(ctx context.Context, payload SnapshotRefreshedPayload) error {
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, "Event publishing disabled", attr.String("topic", SnapshotRefreshedTopic), attr.SnapshotID(payload.SnapshotID))
	}
	return nil
}

// Close is a no-op.
func (NoopPublisher) Close() error { return nil }

var (
	_ Publisher = (*EventBus)(nil)
	_ Publisher = NoopPublisher{}
)
