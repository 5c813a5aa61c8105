package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamName(t *testing.T) {
	roomID := uuid.MustParse("7d1f1a52-8d7b-4d6c-9d6e-3a1b2c3d4e5f")

	assert.Equal(t, "match_result_recorded_v1", StreamName(MatchResultRecordedV1))
	assert.Equal(t,
		"standings_refreshed_v1_7d1f1a52-8d7b-4d6c-9d6e-3a1b2c3d4e5f",
		StreamName(FormatRoomScopedTopic(StandingsRefreshedV1, roomID)),
	)
}

func TestInMemoryBus_RoundTrip(t *testing.T) {
	bus := NewInMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := bus.Subscribe(ctx, RoomCreatedV1)
	require.NoError(t, err)

	msg, err := NewEventMessage(ctx, RoomCreatedV1, map[string]string{"code": "ABC123"})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(RoomCreatedV1, msg))

	select {
	case got := <-msgs:
		got.Ack()
		payload, err := DecodeEvent[map[string]string](got)
		require.NoError(t, err)
		assert.Equal(t, "ABC123", (*payload)["code"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}
