package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/osse101/LootVault_Go/internal/bootstrap"
	"github.com/osse101/LootVault_Go/internal/campaign"
	"github.com/osse101/LootVault_Go/internal/config"
	"github.com/osse101/LootVault_Go/internal/identity"
	"github.com/osse101/LootVault_Go/internal/inventory"
	"github.com/osse101/LootVault_Go/internal/server"
	"github.com/osse101/LootVault_Go/internal/transfer"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	bootstrap.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}

	items, err := bootstrap.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		store.Close()
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		store.Close()
		return err
	}

	components := bootstrap.ShutdownComponents{
		ResilientPublisher: publisher,
		Store:              store,
	}

	rt, err := bootstrap.InitializeRealtime(ctx, cfg, store, bus)
	if err != nil {
		shutdown(components)
		return err
	}
	components.Realtime = rt

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:      bus,
		Subscriptions: rt.Hub,
	}); err != nil {
		shutdown(components)
		return err
	}

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		ServiceName:    cfg.ServiceName,
		Monitor:        server.DefaultMonitorConfig(),
		CheckOrigin:    checkOrigin(cfg.AllowedOrigins),
	}, server.Deps{
		Store:       store,
		Campaigns:   campaign.NewService(store, publisher, campaign.Config{DefaultMaxWeight: cfg.DefaultMaxWeight}),
		Inventories: inventory.NewService(store, publisher, items),
		Transfers:   transfer.NewService(store, publisher),
		Identities:  identity.NewService(store, identity.CacheConfig{Size: cfg.IdentityCacheSize, TTL: cfg.IdentityCacheTTL}),
		Feeds:       rt.Hub,
		Catalog:     items,
	})
	components.Server = srv

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdown(components)
	return err
}

func shutdown(components bootstrap.ShutdownComponents) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, components)
}

// checkOrigin allows the listed websocket origins. An empty list keeps the
// same-origin default.
func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
