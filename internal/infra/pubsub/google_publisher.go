package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// GooglePubSubPublisher publishes events to Google Cloud Pub/Sub
type GooglePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (*GooglePubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	// Verify topic exists using the admin client
	topicName := "projects/" + projectID + "/topics/" + topicID
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicName,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "topic %s does not exist or is not accessible", topicName)
	}

	publisher := client.Publisher(topicID)

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &GooglePubSubPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishEvent publishes a storefront event to the topic
func (p *GooglePubSubPublisher) PublishEvent(ctx context.Context, event *service.StorefrontEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	attributes := map[string]string{
		"event_type": event.Type,
		"entity_id":  event.EntityID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	messageID, err := result.Get(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to publish event")
	}

	p.logger.Debug("Published event to Pub/Sub",
		slog.String("message_id", messageID),
		slog.String("type", event.Type),
		slog.String("entity_id", event.EntityID),
	)

	return nil
}

// Close stops the publisher and closes the client
func (p *GooglePubSubPublisher) Close() error {
	p.publisher.Stop()

	if err := p.client.Close(); err != nil {
		return errors.Wrap(err, "failed to close pubsub client")
	}

	return nil
}
