// Package memory is an in-process repository.Store. Records are deep-copied on
// the way in and out, and every write is checked against the record version.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/osse101/LootVault_Go/internal/concurrency"
	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Store keeps campaigns, inventories and identities in maps.
// mu guards the maps themselves; per-record locks serialize commits that touch
// the same campaign or inventory.
type Store struct {
	mu          sync.RWMutex
	locks       *concurrency.LockManager
	campaigns   map[string]domain.Campaign
	inventories map[string]domain.Inventory
	identities  map[string]domain.Identity
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		locks:       concurrency.NewLockManager(),
		campaigns:   make(map[string]domain.Campaign),
		inventories: make(map[string]domain.Inventory),
		identities:  make(map[string]domain.Identity),
	}
}

func campaignKey(campaignID string) string {
	return "campaign/" + campaignID
}

func inventoryKey(campaignID, playerID string) string {
	return "inventory/" + campaignID + "/" + playerID
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// BeginTx starts a transaction that stages writes until Commit.
func (s *Store) BeginTx(_ context.Context) (repository.Tx, error) {
	return &Tx{store: s}, nil
}

// GetCampaign returns a copy of the campaign record.
func (s *Store) GetCampaign(_ context.Context, campaignID string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getCampaignLocked(campaignID)
}

func (s *Store) getCampaignLocked(campaignID string) (*domain.Campaign, error) {
	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}
	out := c.Clone()
	return &out, nil
}

// ListCampaignsByOwner returns campaigns owned by ownerID, oldest first.
func (s *Store) ListCampaignsByOwner(_ context.Context, ownerID string) ([]domain.Campaign, error) {
	return s.listCampaigns(func(c domain.Campaign) bool { return c.OwnerID == ownerID }), nil
}

// ListCampaignsByMember returns campaigns userID joined, oldest first.
func (s *Store) ListCampaignsByMember(_ context.Context, userID string) ([]domain.Campaign, error) {
	return s.listCampaigns(func(c domain.Campaign) bool { return c.HasMember(userID) }), nil
}

func (s *Store) listCampaigns(match func(domain.Campaign) bool) []domain.Campaign {
	s.mu.RLock()
	out := make([]domain.Campaign, 0)
	for _, c := range s.campaigns {
		if match(c) {
			out = append(out, c.Clone())
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Campaign) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// GetInventory returns a copy of one player's inventory.
func (s *Store) GetInventory(_ context.Context, campaignID, playerID string) (*domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.inventories[inventoryKey(campaignID, playerID)]
	if !ok {
		return nil, fmt.Errorf("%w: inventory %s/%s", domain.ErrNotFound, campaignID, playerID)
	}
	out := inv.Clone()
	return &out, nil
}

// ListInventories returns the campaign's inventories in join order.
func (s *Store) ListInventories(_ context.Context, campaignID string) ([]domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}

	out := make([]domain.Inventory, 0, len(c.MemberIDs))
	for _, playerID := range c.MemberIDs {
		if inv, ok := s.inventories[inventoryKey(campaignID, playerID)]; ok {
			out = append(out, inv.Clone())
		}
	}
	return out, nil
}
