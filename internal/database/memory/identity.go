package memory

import (
	"context"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// UpsertIdentity creates the identity or refreshes its name and email, keeping the role.
func (s *Store) UpsertIdentity(_ context.Context, identity domain.Identity) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.identities[identity.UserID]; ok {
		existing.DisplayName = identity.DisplayName
		existing.Email = identity.Email
		existing.UpdatedAt = identity.UpdatedAt
		s.identities[identity.UserID] = existing
		return &existing, nil
	}

	s.identities[identity.UserID] = identity
	return &identity, nil
}

// GetIdentity returns the identity for userID.
func (s *Store) GetIdentity(_ context.Context, userID string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.identities[userID]
	if !ok {
		return nil, fmt.Errorf("%w: identity %s", domain.ErrNotFound, userID)
	}
	return &identity, nil
}

// SetRole changes the active role of userID.
func (s *Store) SetRole(_ context.Context, userID string, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity, ok := s.identities[userID]
	if !ok {
		return fmt.Errorf("%w: identity %s", domain.ErrNotFound, userID)
	}
	identity.Role = role
	s.identities[userID] = identity
	return nil
}
