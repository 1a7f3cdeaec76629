package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursehub/internal/config"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Publisher defines an interface for publishing messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
// The client library picks up PUBSUB_EMULATOR_HOST on its own.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}
	var opts []option.ClientOption
	if cfg.GCPCredentialsFile != "" && cfg.PubSubEmulatorHost == "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsFile))
	}
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the message ID.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}

func (p *PubSubPublisher) Close() error {
	return p.client.Close()
}

// NoopPublisher drops every message. It is used when no topic is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) (string, error) {
	return "", nil
}

// Event types emitted after a collection write succeeded.
const (
	CourseCreated      = "course.created"
	CourseUpdated      = "course.updated"
	CourseDeleted      = "course.deleted"
	ModuleCreated      = "module.created"
	ModuleUpdated      = "module.updated"
	ModuleDeleted      = "module.deleted"
	ModuleAssigned     = "module.assigned"
	ModuleUnassigned   = "module.unassigned"
	LessonCreated      = "lesson.created"
	LessonUpdated      = "lesson.updated"
	LessonDeleted      = "lesson.deleted"
	LessonAssigned     = "lesson.assigned"
	ReferencesRepaired = "references.repaired"
)

// Event describes a change to one entity, optionally relative to a parent.
type Event struct {
	Type       string    `json:"type"`
	EntityID   int       `json:"entity_id"`
	ParentID   int       `json:"parent_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier publishes change events to a single topic.
type Notifier struct {
	publisher Publisher
	topic     string
}

// NewNotifier returns a Notifier for topic. An empty topic disables publishing.
func NewNotifier(publisher Publisher, topic string) *Notifier {
	if topic == "" || publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Notifier{publisher: publisher, topic: topic}
}

// Notify publishes e and returns the message ID.
func (n *Notifier) Notify(ctx context.Context, e Event) (string, error) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to encode event %s: %w", e.Type, err)
	}
	return n.publisher.Publish(ctx, n.topic, payload)
}
