package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootVault_Go/internal/database/memory"
	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/realtime"
	"github.com/osse101/LootVault_Go/internal/repository"
)

func TestWebsocketHandler_StreamsUntilCampaignDeleted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	now := time.Now()
	require.NoError(t, tx.CreateCampaign(ctx, domain.Campaign{ID: "LAIR0001", Name: "Dragon's Lair", OwnerID: "d1", MemberIDs: []string{"p1"}, CreatedAt: now}))
	require.NoError(t, tx.CreateInventory(ctx, domain.NewInventory("LAIR0001", "p1", "Pip", 0, now)))
	require.NoError(t, tx.Commit(ctx))

	bus := event.NewMemoryBus()
	hub := realtime.NewHub(store)
	hub.Attach(bus)
	t.Cleanup(hub.Close)

	r := chi.NewRouter()
	r.Get("/campaigns/{campaignID}/ws", NewWebsocketHandler(hub, nil).ServeHTTP)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/campaigns/lair0001/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	seen := map[string]bool{}
	for !(seen[realtime.MessageConnected] && seen[realtime.MessageCampaign] && seen[realtime.MessageInventories]) {
		var msg realtime.Message
		require.NoError(t, conn.ReadJSON(&msg))
		seen[msg.Type] = true
	}

	require.NoError(t, bus.Publish(ctx, event.NewCampaignLifecycleEvent(event.CampaignDeleted, "LAIR0001", "d1")))

	var last realtime.Message
	for last.Type != realtime.MessageClosed {
		last = realtime.Message{}
		require.NoError(t, conn.ReadJSON(&last))
	}
	assert.Equal(t, realtime.MessageClosed, last.Type)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}
