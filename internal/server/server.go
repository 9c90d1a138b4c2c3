package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/LootVault_Go/internal/campaign"
	"github.com/osse101/LootVault_Go/internal/catalog"
	"github.com/osse101/LootVault_Go/internal/handler"
	"github.com/osse101/LootVault_Go/internal/identity"
	"github.com/osse101/LootVault_Go/internal/inventory"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/metrics"
	"github.com/osse101/LootVault_Go/internal/sse"
	"github.com/osse101/LootVault_Go/internal/transfer"
)

// Config holds the HTTP surface settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	ServiceName    string
	Monitor        MonitorConfig
	// CheckOrigin decides websocket origins; nil keeps the same-origin default
	CheckOrigin func(*http.Request) bool
}

// Deps are the services the routes call into
type Deps struct {
	Store       handler.Pinger
	Campaigns   campaign.Service
	Inventories inventory.Service
	Transfers   transfer.Service
	Identities  identity.Service
	Feeds       sse.FeedOpener
	Catalog     *catalog.Catalog
}

type Server struct {
	httpServer *http.Server
	router     http.Handler
}

// NewServer builds the router and the HTTP server around it
func NewServer(cfg Config, deps Deps) *Server {
	r := NewRouter(cfg, deps)
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// NewRouter wires middleware and every route
func NewRouter(cfg Config, deps Deps) chi.Router {
	monitor := NewClientMonitor(cfg.Monitor)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, monitor))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, monitor))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	catalogVersion := ""
	if deps.Catalog != nil {
		catalogVersion = deps.Catalog.Version()
	}

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(cfg.ServiceName, catalogVersion))
	r.Handle("/metrics", promhttp.Handler())

	campaigns := handler.NewCampaignHandler(deps.Campaigns)
	inventories := handler.NewInventoryHandler(deps.Inventories)
	moves := handler.NewMoveHandler(deps.Transfers)
	me := handler.NewIdentityHandler(deps.Identities)
	ws := handler.NewWebsocketHandler(deps.Feeds, cfg.CheckOrigin)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handler.IdentityMiddleware(deps.Identities))

		r.Get("/me", me.HandleGetMe)
		r.Put("/me/role", me.HandleSetRole)
		r.Get("/catalog", handler.HandleGetCatalog(deps.Catalog))

		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", campaigns.HandleCreate)
			r.Get("/", campaigns.HandleList)

			r.Route("/{campaignID}", func(r chi.Router) {
				r.Get("/", campaigns.HandleGet)
				r.Patch("/", campaigns.HandleUpdate)
				r.Delete("/", campaigns.HandleDelete)
				r.Post("/join", campaigns.HandleJoin)
				r.Post("/leave", campaigns.HandleLeave)
				r.Put("/shared-loot", campaigns.HandleUpdateSharedLoot)

				r.Get("/inventories", inventories.HandleList)
				r.Get("/inventories/summary", inventories.HandleSummaries)
				r.Put("/inventories/{playerID}", inventories.HandleUpdate)
				r.Post("/inventories/{playerID}/currency", inventories.HandleAdjustCurrency)

				r.Post("/items", inventories.HandleAddItem)
				r.Post("/items/catalog", inventories.HandleAddCatalogItem)
				r.Patch("/items/{itemID}", inventories.HandleEditItem)
				r.Delete("/items/{itemID}", inventories.HandleDeleteItem)

				r.Post("/moves", moves.HandleMove)

				r.With(campaigns.RequireViewer).Get("/events", sse.Handler(deps.Feeds, handler.CampaignIDParam))
				r.With(campaigns.RequireViewer).Get("/ws", ws.ServeHTTP)
			})
		})
	})

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range quietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop drains in-flight requests until ctx is done
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
