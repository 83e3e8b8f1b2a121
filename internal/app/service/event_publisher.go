package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/eon-group/expiring-link-service/internal/app/model"
)

// EventPublisher publishes link lifecycle events to NATS JetStream.
// Publishing is best-effort; callers log and move on when it fails.
type EventPublisher struct {
	js nats.JetStreamContext
}

// NewEventPublisher creates a publisher and makes sure the links stream
// exists so events are retained even before any consumer is attached.
func NewEventPublisher(js nats.JetStreamContext) (*EventPublisher, error) {
	if _, err := js.StreamInfo(model.LinkStreamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     model.LinkStreamName,
			Subjects: []string{model.LinkStreamSubjects},
			MaxBytes: model.LinkStreamMaxBytes,
		})
		if err != nil {
			return nil, fmt.Errorf("create links stream: %w", err)
		}
	}
	return &EventPublisher{js: js}, nil
}

// Publish emits one event for the given link identifier.
func (p *EventPublisher) Publish(eventType, identifier string) error {
	event := model.LinkEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		Identifier: identifier,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(subjectFor(eventType), data)
	return err
}

func subjectFor(eventType string) string {
	switch eventType {
	case model.LinkEventExpired:
		return model.LinkExpiredSubject
	default:
		return model.LinkCreatedSubject
	}
}
