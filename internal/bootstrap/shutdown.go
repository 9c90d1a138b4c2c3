package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/server"
)

// ShutdownComponents holds everything that needs an orderly stop
type ShutdownComponents struct {
	Server             *server.Server
	Realtime           *Realtime
	ResilientPublisher *event.ResilientPublisher
	Store              *Store
}

// GracefulShutdown stops components in dependency order:
//  1. realtime feeds, so streaming requests return
//  2. the HTTP server, draining in-flight requests
//  3. the event publisher, flushing pending retries
//  4. the store
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Realtime != nil {
		slog.Info(LogMsgClosingRealtime)
		components.Realtime.Close()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Store != nil {
		components.Store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
