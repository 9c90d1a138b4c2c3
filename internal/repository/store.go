package repository

import (
	"context"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Campaign defines read access to campaign records outside a transaction
type Campaign interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	// ListCampaignsByOwner returns campaigns owned by ownerID, oldest first.
	ListCampaignsByOwner(ctx context.Context, ownerID string) ([]domain.Campaign, error)
	// ListCampaignsByMember returns campaigns userID joined as a player, oldest first.
	ListCampaignsByMember(ctx context.Context, userID string) ([]domain.Campaign, error)
}

// Inventory defines read access to inventory records outside a transaction
type Inventory interface {
	GetInventory(ctx context.Context, campaignID, playerID string) (*domain.Inventory, error)
	// ListInventories returns the campaign's inventories in join order.
	ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error)
}

// Identity defines persistence for externally authenticated users
type Identity interface {
	// UpsertIdentity creates the identity or refreshes its name and email.
	// An existing role is never overwritten.
	UpsertIdentity(ctx context.Context, identity domain.Identity) (*domain.Identity, error)
	GetIdentity(ctx context.Context, userID string) (*domain.Identity, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
}

// Store is a complete persistence backend
type Store interface {
	Campaign
	Inventory
	Identity

	BeginTx(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
}
