package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/realtime"
	"github.com/osse101/LootVault_Go/internal/sse"
)

// Websocket timing
const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512
)

// WebsocketHandler streams campaign snapshots over a websocket. Clients only
// listen; anything they send besides control frames is discarded.
type WebsocketHandler struct {
	feeds    sse.FeedOpener
	upgrader websocket.Upgrader
}

// NewWebsocketHandler creates a WebsocketHandler. checkOrigin may be nil to
// use the gorilla same-origin default.
func NewWebsocketHandler(feeds sse.FeedOpener, checkOrigin func(*http.Request) bool) *WebsocketHandler {
	return &WebsocketHandler{
		feeds: feeds,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeHTTP upgrades the connection and pumps the feed until either side stops
func (h *WebsocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	campaignID := CampaignIDParam(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client
		log.Warn(LogMsgWSUpgradeFailed, "campaign_id", campaignID, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	feed, err := h.feeds.OpenFeed(ctx, campaignID)
	if err != nil {
		log.Error(LogMsgWSFeedFailed, "campaign_id", campaignID, "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""), time.Now().Add(wsWriteWait))
		return
	}
	defer feed.Close()

	log.Info(LogMsgWSConnected, "campaign_id", campaignID)
	defer log.Info(LogMsgWSDisconnected, "campaign_id", campaignID)

	go readPump(conn, cancel)
	writePump(ctx, conn, feed)
}

// readPump keeps the read deadline fresh from pongs and cancels when the peer goes away
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends snapshots as they become ready and pings on a timer
func writePump(ctx context.Context, conn *websocket.Conn, feed *realtime.Feed) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	log := logger.FromContext(ctx)
	write := func(msg realtime.Message) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn(LogMsgWSWriteFailed, "campaign_id", feed.CampaignID, "error", err)
			return false
		}
		return true
	}

	if !write(realtime.NewMessage(realtime.MessageConnected, nil)) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-feed.Ended():
			for _, msg := range feed.Drain() {
				if !write(msg) {
					return
				}
			}
			write(realtime.NewMessage(realtime.MessageClosed, nil))
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
			return
		case <-feed.Ready():
			for _, msg := range feed.Drain() {
				if !write(msg) {
					return
				}
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
