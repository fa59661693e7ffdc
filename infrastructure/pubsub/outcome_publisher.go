package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"ttphotos/infrastructure/logger"

	gcppubsub "cloud.google.com/go/pubsub"
)

// OutcomeEvent is the message published after every posting attempt.
type OutcomeEvent struct {
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Song      string    `json:"song,omitempty"`
	PublishID string    `json:"publish_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	At        time.Time `json:"at"`
}

// OutcomePublisher emits posting outcomes to a Pub/Sub topic. A nil
// *OutcomePublisher is valid and publishes nothing.
type OutcomePublisher struct {
	client *gcppubsub.Client
	topic  *gcppubsub.Topic
}

// NewOutcomePublisher connects to the project and creates the topic when it
// does not exist yet. It returns nil when no project is configured.
func NewOutcomePublisher(ctx context.Context, projectID, topicName string) *OutcomePublisher {
	if projectID == "" {
		logger.GetLogger().Info("Pub/Sub not configured, outcome events disabled")
		return nil
	}
	client, err := gcppubsub.NewClient(ctx, projectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub client unavailable, outcome events disabled")
		return nil
	}
	topic := client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub topic check failed, outcome events disabled")
		return nil
	}
	if !exists {
		if topic, err = client.CreateTopic(ctx, topicName); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub topic create failed, outcome events disabled")
			return nil
		}
	}
	return &OutcomePublisher{client: client, topic: topic}
}

// PublishOutcome sends the event and waits for the server id. Failures are
// logged, never propagated; events are best effort.
func (p *OutcomePublisher) PublishOutcome(ctx context.Context, event OutcomeEvent) {
	if p == nil || p.topic == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Outcome event marshal failed")
		return
	}
	result := p.topic.Publish(ctx, &gcppubsub.Message{Data: data})
	id, err := result.Get(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Outcome event publish failed")
		return
	}
	logger.GetLogger().
		WithField("message_id", id).
		WithField("user_id", event.UserID).
		WithField("status", event.Status).
		Info("Outcome event published")
}

func (p *OutcomePublisher) Close() {
	if p == nil {
		return
	}
	p.topic.Stop()
	if err := p.client.Close(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Pub/Sub close failed")
	}
}
