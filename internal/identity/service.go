// Package identity maps externally authenticated users to a display name and role.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Service manages identities
type Service interface {
	// EnsureIdentity records the user on first sight with the player role and
	// refreshes the name and email afterwards. The role is never reset.
	EnsureIdentity(ctx context.Context, userID, displayName, email string) (*domain.Identity, error)
	GetIdentity(ctx context.Context, userID string) (*domain.Identity, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
}

// CacheConfig sizes the identity cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

type service struct {
	repo  repository.Identity
	cache *identityCache
	now   func() time.Time
}

// NewService creates an identity service backed by repo.
func NewService(repo repository.Identity, cacheCfg CacheConfig) Service {
	return &service{
		repo:  repo,
		cache: newIdentityCache(cacheCfg.Size, cacheCfg.TTL),
		now:   time.Now,
	}
}

func (s *service) EnsureIdentity(ctx context.Context, userID, displayName, email string) (*domain.Identity, error) {
	userID = strings.TrimSpace(userID)
	displayName = strings.TrimSpace(displayName)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if userID == domain.SharedOwnerToken {
		return nil, fmt.Errorf("%w: user id %q is reserved", domain.ErrValidation, userID)
	}
	if displayName == "" {
		displayName = userID
	}
	displayName = truncateName(displayName, MaxDisplayNameLength)

	if cached, ok := s.cache.Get(userID); ok && cached.DisplayName == displayName && cached.Email == email {
		return cached, nil
	}

	now := s.now()
	identity, err := s.repo.UpsertIdentity(ctx, domain.Identity{
		UserID:      userID,
		DisplayName: displayName,
		Email:       email,
		Role:        domain.RolePlayer,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert identity: %w", err)
	}

	s.cache.Set(*identity)
	return identity, nil
}

func (s *service) GetIdentity(ctx context.Context, userID string) (*domain.Identity, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	identity, err := s.repo.GetIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(*identity)
	return identity, nil
}

func (s *service) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	if err := s.repo.SetRole(ctx, userID, role); err != nil {
		return err
	}
	s.cache.Invalidate(userID)

	logger.FromContext(ctx).Info("Role changed", "user_id", userID, "role", role)
	return nil
}

// truncateName cuts s to at most maxBytes without splitting a rune.
// Invalid sequences are replaced first so the result is always valid UTF-8.
func truncateName(s string, maxBytes int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if len(s) <= maxBytes {
		return s
	}
	cut := 0
	for cut < len(s) {
		_, size := utf8.DecodeRuneInString(s[cut:])
		if cut+size > maxBytes {
			break
		}
		cut += size
	}
	return s[:cut]
}
