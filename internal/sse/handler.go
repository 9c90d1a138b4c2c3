// Package sse streams campaign and inventory snapshots to browsers as
// server-sent events.
package sse

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/realtime"
)

// FeedOpener opens a snapshot feed for one campaign
type FeedOpener interface {
	OpenFeed(ctx context.Context, campaignID string) (*realtime.Feed, error)
}

// Handler returns an HTTP handler streaming the campaign named by
// campaignID(r). Access control happens before this handler runs.
func Handler(feeds FeedOpener, campaignID func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromContext(ctx)
		id := campaignID(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		feed, err := feeds.OpenFeed(ctx, id)
		if err != nil {
			log.Error(LogMsgFeedFailed, "campaign_id", id, "error", err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		defer feed.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		log.Info(LogMsgClientConnected, "campaign_id", id)
		defer log.Info(LogMsgClientDisconnected, "campaign_id", id)

		send := func(msg realtime.Message) bool {
			out, err := FormatSSEMessage(msg)
			if err != nil {
				log.Error(LogMsgFormatError, "type", msg.Type, "error", err)
				return true
			}
			if _, err := w.Write(out); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !send(realtime.NewMessage(realtime.MessageConnected, map[string]string{"campaign_id": id})) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case <-feed.Ready():
				for _, msg := range feed.Drain() {
					if !send(msg) {
						return
					}
				}

			case <-feed.Ended():
				// flush whatever the last load produced before closing
				for _, msg := range feed.Drain() {
					send(msg)
				}
				send(realtime.NewMessage(realtime.MessageClosed, nil))
				return

			case <-ticker.C:
				if !send(realtime.NewMessage(realtime.MessageKeepalive, nil)) {
					return
				}
			}
		}
	}
}
