package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

// PubSubPushMessage mimics the Google Pub/Sub push message envelope so the
// local consumer can run the same handler in development.
type PubSubPushMessage struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage is the inner message of a push envelope
type PubSubMessage struct {
	Data        string            `json:"data"` // base64 encoded
	Attributes  map[string]string `json:"attributes"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
}

// LocalHTTPPublisher delivers events to a local HTTP endpoint, emulating a
// Pub/Sub push subscription for development environments
type LocalHTTPPublisher struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewLocalHTTPPublisher creates a publisher that POSTs push-format messages
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) *LocalHTTPPublisher {
	return &LocalHTTPPublisher{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// PublishEvent sends the event to the local endpoint in push format
func (p *LocalHTTPPublisher) PublishEvent(ctx context.Context, event *service.StorefrontEvent) error {
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

	pushMessage := PubSubPushMessage{
		Message: PubSubMessage{
			Data:        base64.StdEncoding.EncodeToString(data),
			Attributes:  attributes,
			MessageID:   event.EntityID,
			PublishTime: time.Now().UTC().Format(time.RFC3339),
		},
		Subscription: "local-subscription",
	}

	body, err := json.Marshal(pushMessage)
	if err != nil {
		return errors.Wrap(err, "failed to marshal push message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to deliver event")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("local endpoint returned status %d", resp.StatusCode)
	}

	p.logger.Debug("Delivered event to local endpoint",
		slog.String("type", event.Type),
		slog.String("entity_id", event.EntityID),
	)

	return nil
}

// Close is a no-op for the HTTP publisher
func (p *LocalHTTPPublisher) Close() error {
	return nil
}
