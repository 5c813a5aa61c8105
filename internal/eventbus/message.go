package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// NewEventMessage encodes payload as JSON and carries the correlation id of ctx.
func NewEventMessage(ctx context.Context, topic string, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("topic", topic)

	correlationID := attr.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)
	return msg, nil
}

// DecodeEvent unmarshals the JSON payload of msg into T.
func DecodeEvent[T any](msg *message.Message) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", msg.Metadata.Get("topic"), err)
	}
	return out, nil
}

// ContextFromMessage returns the message context with its correlation id attached.
func ContextFromMessage(msg *message.Message) context.Context {
	return attr.WithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
}

// PublishWithRoomScope publishes msg on {baseTopic}.{roomID} so that clients
// can subscribe to a single room or use a wildcard for all of them.
func PublishWithRoomScope(pub message.Publisher, baseTopic string, roomID uuid.UUID, msg *message.Message) error {
	if roomID == uuid.Nil {
		return fmt.Errorf("roomID cannot be empty for room-scoped publish")
	}
	return pub.Publish(FormatRoomScopedTopic(baseTopic, roomID), msg)
}

// FormatRoomScopedTopic formats a topic with the room id suffix.
func FormatRoomScopedTopic(baseTopic string, roomID uuid.UUID) string {
	return fmt.Sprintf("%s.%s", baseTopic, roomID)
}
