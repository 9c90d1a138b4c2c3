package realtime

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootVault_Go/internal/event"
)

func TestNotice_RoundTrip(t *testing.T) {
	notice, err := noticeFromEvent("node-a", event.NewInventoriesUpdatedEvent(testCampaign, 9, "move"))
	require.NoError(t, err)
	assert.Equal(t, "node-a", notice.Origin)
	assert.Equal(t, int64(9), notice.Version)

	evt, err := notice.toEvent()
	require.NoError(t, err)
	assert.Equal(t, event.InventoriesUpdated, evt.Type)
	assert.Equal(t, "node-a", evt.Origin())

	payload, err := event.DecodePayload[event.ChangePayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, testCampaign, payload.CampaignID)
	assert.Equal(t, "move", payload.Cause)
}

func TestNotice_Deleted(t *testing.T) {
	notice, err := noticeFromEvent("node-a", event.NewCampaignLifecycleEvent(event.CampaignDeleted, testCampaign, "d1"))
	require.NoError(t, err)

	evt, err := notice.toEvent()
	require.NoError(t, err)
	assert.Equal(t, event.CampaignDeleted, evt.Type)
}

func TestNotice_Unsupported(t *testing.T) {
	_, err := noticeFromEvent("node-a", event.Event{Type: event.ItemMoved})
	assert.Error(t, err)

	_, err = changeNotice{Type: "bogus"}.toEvent()
	assert.ErrorIs(t, err, errUnknownNotice)
}

func TestRedisBridge_SkipsRemoteEvents(t *testing.T) {
	// no server behind this client; a publish attempt would fail
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	b := NewRedisBridge(client, event.NewMemoryBus(), "node-a")

	remote := event.NewCampaignUpdatedEvent(testCampaign, 2, "rename")
	remote = remote.WithOrigin("node-b")
	assert.NoError(t, b.forward(context.Background(), remote))

	local := event.NewCampaignUpdatedEvent(testCampaign, 2, "rename")
	assert.NoError(t, b.forward(context.Background(), local), "redis failures are logged, not returned")
}

func TestRedisBridge_FailureDoesNotReplayLocalHandlers(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	bus := event.NewMemoryBus()
	var mu sync.Mutex
	deliveries := 0
	bus.Subscribe(event.InventoriesUpdated, func(context.Context, event.Event) error {
		mu.Lock()
		deliveries++
		mu.Unlock()
		return nil
	})
	NewRedisBridge(client, bus, "node-a").Attach()

	deadLetters := filepath.Join(t.TempDir(), "deadletter.jsonl")
	pub, err := event.NewResilientPublisher(bus, 3, 5*time.Millisecond, deadLetters)
	require.NoError(t, err)

	require.NoError(t, pub.Publish(context.Background(), event.NewInventoriesUpdatedEvent(testCampaign, 2, "move")))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, pub.Shutdown(context.Background()))

	mu.Lock()
	assert.Equal(t, 1, deliveries)
	mu.Unlock()
	content, err := os.ReadFile(deadLetters)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestRedisBridge_ReceiveRepublishesRemoteOnly(t *testing.T) {
	bus := event.NewMemoryBus()
	var seen []string
	bus.Subscribe(event.CampaignUpdated, func(_ context.Context, e event.Event) error {
		seen = append(seen, e.Origin())
		return nil
	})
	b := NewRedisBridge(nil, bus, "node-a")

	b.receive(context.Background(), &redis.Message{
		Channel: ChannelPrefix + testCampaign,
		Payload: `{"origin":"node-b","type":"campaign.updated","version":3,"cause":"rename"}`,
	})
	b.receive(context.Background(), &redis.Message{
		Channel: ChannelPrefix + testCampaign,
		Payload: `{"origin":"node-a","type":"campaign.updated","campaign_id":"ABCD1234","version":4}`,
	})
	b.receive(context.Background(), &redis.Message{Channel: ChannelPrefix + testCampaign, Payload: `not json`})

	assert.Equal(t, []string{"node-b"}, seen)
}
