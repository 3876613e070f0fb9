package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// EventType_CHAT_INTERACTION represents one answered product chat question.
	EventType_CHAT_INTERACTION EventType = "CHAT.INTERACTION"
)

// ChatInteractionEvent records one answered product chat question for the
// notifications pipeline.
type ChatInteractionEvent struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	Intents   []string  `json:"intents"`
	SourceIDs []int64   `json:"source_ids"`
	Degraded  bool      `json:"degraded"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing outbox events to the
// message broker.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event OutboxEvent) error
}
