package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/coachdesk/coach-service/internal/models"
)

// TopicCoachChanges carries one message per successful mutation.
const TopicCoachChanges = "coach.changes"

// Event types
const (
	EventCoachCreated = "coach.created"
	EventCoachUpdated = "coach.updated"
	EventCoachDeleted = "coach.deleted"
)

// CoachEvent is the payload published on every mutation.
type CoachEvent struct {
	Type       string    `json:"type"`
	CoachID    string    `json:"coach_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Bus is an in-process pub/sub for coach change events. The service stays
// strictly request/response toward its clients; the bus only feeds local
// subscribers such as the change logger.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

// NewBus creates an in-process event bus.
func NewBus(logger *slog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &Bus{pubsub: pubsub, logger: logger}
}

// Publish emits a coach change event. Publish failures are logged, never
// surfaced: events are advisory and must not fail the mutation that
// already committed.
func (b *Bus) Publish(ctx context.Context, eventType string, coach *models.Coach) {
	evt := CoachEvent{
		Type:       eventType,
		CoachID:    coach.ID,
		Email:      coach.Email,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to marshal coach event", "error", err, "type", eventType)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(TopicCoachChanges, msg); err != nil {
		b.logger.ErrorContext(ctx, "Failed to publish coach event", "error", err, "type", eventType)
	}
}

// RunChangeLogger subscribes to coach change events and logs each one until
// ctx is cancelled.
func (b *Bus) RunChangeLogger(ctx context.Context) error {
	messages, err := b.pubsub.Subscribe(ctx, TopicCoachChanges)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var evt CoachEvent
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				b.logger.Error("Malformed coach event", "error", err, "message_id", msg.UUID)
				msg.Ack()
				continue
			}
			b.logger.Info("Coach changed",
				"event", evt.Type,
				"coach_id", evt.CoachID,
				"occurred_at", evt.OccurredAt)
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts down the bus and its subscribers.
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
