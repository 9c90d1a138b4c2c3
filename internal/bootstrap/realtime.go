package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/osse101/LootVault_Go/internal/config"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/realtime"
)

// Realtime owns the subscription hub and, when REDIS_URL is set, the bridge
// that shares change events with other nodes.
type Realtime struct {
	Hub *realtime.Hub

	client *redis.Client
	cancel context.CancelFunc
	done   chan struct{}
}

// InitializeRealtime attaches a hub to bus and starts the redis bridge when
// configured. The bridge outlives ctx; call Close to stop it.
func InitializeRealtime(ctx context.Context, cfg *config.Config, source realtime.SnapshotSource, bus event.Bus) (*Realtime, error) {
	hub := realtime.NewHub(source)
	hub.Attach(bus)
	rt := &Realtime{Hub: hub}

	if cfg.RedisURL == "" {
		slog.Info(LogMsgRealtimeInitialized, "redis", false)
		return rt, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		hub.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidRedisURL, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		hub.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	nodeID := uuid.NewString()
	bridge := realtime.NewRedisBridge(client, bus, nodeID)
	bridge.Attach()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	rt.client = client
	rt.cancel = cancel
	rt.done = make(chan struct{})

	go func() {
		defer close(rt.done)
		if err := bridge.Run(runCtx); err != nil {
			slog.Error(LogMsgRedisBridgeStopped, "error", err)
			return
		}
		slog.Info(LogMsgRedisBridgeStopped)
	}()

	slog.Info(LogMsgRealtimeInitialized, "redis", true)
	slog.Info(LogMsgRedisBridgeStarted, "node_id", nodeID, "addr", opts.Addr)
	return rt, nil
}

// Close ends every open feed and stops the bridge
func (r *Realtime) Close() {
	r.Hub.Close()

	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	if err := r.client.Close(); err != nil {
		slog.Error(LogMsgRedisCloseFailed, "error", err)
	}
}
