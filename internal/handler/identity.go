package handler

import (
	"context"
	"net/http"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/identity"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// Identity headers set by the upstream identity provider
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
)

type identityKey struct{}

// WithIdentity stores the requester in ctx
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the requester resolved by IdentityMiddleware
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// requester returns the identity for r. Routes behind IdentityMiddleware always have one.
func requester(r *http.Request) domain.Identity {
	id, _ := IdentityFromContext(r.Context())
	return id
}

// IdentityMiddleware resolves the identity headers into a stored identity,
// creating it on first sight.
func IdentityMiddleware(svc identity.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(HeaderUserID)
			if userID == "" {
				respondError(w, http.StatusUnauthorized, ErrMsgMissingIdentity)
				return
			}

			id, err := svc.EnsureIdentity(r.Context(), userID, r.Header.Get(HeaderUserName), r.Header.Get(HeaderUserEmail))
			if err != nil {
				respondServiceError(w, r, ErrMsgIdentityFailed, err)
				return
			}

			ctx := WithIdentity(r.Context(), *id)
			ctx = logger.WithUser(ctx, id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetRoleRequest switches the requester's active role
type SetRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,role"`
}

// IdentityHandler serves the requester's own identity
type IdentityHandler struct {
	svc identity.Service
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(svc identity.Service) *IdentityHandler {
	return &IdentityHandler{svc: svc}
}

// HandleGetMe returns the requester's identity
func (h *IdentityHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, requester(r))
}

// HandleSetRole switches the requester between dm and player
func (h *IdentityHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set role"); err != nil {
		return
	}

	me := requester(r)
	if err := h.svc.SetRole(r.Context(), me.UserID, req.Role); err != nil {
		respondServiceError(w, r, "Set role", err)
		return
	}

	me.Role = req.Role
	respondJSON(w, http.StatusOK, me)
}
