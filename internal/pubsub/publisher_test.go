package pubsub

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"coursehub/internal/config"

	ps "cloud.google.com/go/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topics   []string
	payloads [][]byte
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, payload []byte) (string, error) {
	r.topics = append(r.topics, topic)
	r.payloads = append(r.payloads, payload)
	return "msg-1", nil
}

func TestNewPublisherInvalidProject(t *testing.T) {
	cfg := &config.Config{GCPProjectID: ""}
	if _, err := NewPublisher(context.Background(), cfg); err == nil {
		t.Fatal("expected error when project ID is empty")
	}
}

func TestNotifierEncodesEvent(t *testing.T) {
	rec := &recordingPublisher{}
	n := NewNotifier(rec, "catalog-events")

	id, err := n.Notify(context.Background(), Event{Type: ModuleAssigned, EntityID: 4, ParentID: 2})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	require.Len(t, rec.payloads, 1)
	assert.Equal(t, "catalog-events", rec.topics[0])

	var got Event
	require.NoError(t, json.Unmarshal(rec.payloads[0], &got))
	assert.Equal(t, ModuleAssigned, got.Type)
	assert.Equal(t, 4, got.EntityID)
	assert.Equal(t, 2, got.ParentID)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestNotifierWithoutTopicIsNoop(t *testing.T) {
	rec := &recordingPublisher{}
	n := NewNotifier(rec, "")

	id, err := n.Notify(context.Background(), Event{Type: CourseCreated, EntityID: 1})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, rec.payloads)
}

func TestPublishWithEmulator(t *testing.T) {
	emulator := os.Getenv("PUBSUB_EMULATOR_HOST")
	if emulator == "" {
		t.Skip("PUBSUB_EMULATOR_HOST is not set, skip emulator integration test")
	}

	ctx := context.Background()
	cfg := &config.Config{GCPProjectID: "test-project", PubSubEmulatorHost: emulator}
	pub, err := NewPublisher(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create PubSubPublisher: %v", err)
	}
	defer pub.Close()

	topicName := "test-topic"
	topic, err := pub.client.CreateTopic(ctx, topicName)
	if err != nil {
		t.Fatalf("failed to create topic: %v", err)
	}
	subName := "test-sub"
	sub, err := pub.client.CreateSubscription(ctx, subName, ps.SubscriptionConfig{Topic: topic})
	if err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}

	n := NewNotifier(pub, topicName)
	msgID, err := n.Notify(ctx, Event{Type: CourseDeleted, EntityID: 7})
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if msgID == "" {
		t.Fatal("expected non-empty message ID")
	}

	recvCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	c := make(chan []byte, 1)
	go func() {
		sub.Receive(recvCtx, func(ctx context.Context, m *ps.Message) {
			c <- m.Data
			m.Ack()
			cancel()
		})
	}()

	select {
	case data := <-c:
		var e Event
		if err := json.Unmarshal(data, &e); err != nil {
			t.Fatalf("failed to decode event: %v", err)
		}
		if e.Type != CourseDeleted || e.EntityID != 7 {
			t.Fatalf("unexpected event %+v", e)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for message from emulator subscription")
	}
}
