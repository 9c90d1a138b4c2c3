package repository

import (
	"context"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// Tx stages writes that land together on Commit or not at all.
// Every update and delete is conditional on the Version of the record passed in;
// a stale version fails with ErrVersionConflict, either from the write call or
// from Commit depending on the backend. A successful write stores Version+1.
type Tx interface {
	GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error)
	GetInventory(ctx context.Context, campaignID, playerID string) (*domain.Inventory, error)
	ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error)

	CreateCampaign(ctx context.Context, campaign domain.Campaign) error
	UpdateCampaign(ctx context.Context, campaign domain.Campaign) error
	DeleteCampaign(ctx context.Context, campaignID string, expectedVersion int64) error

	CreateInventory(ctx context.Context, inventory domain.Inventory) error
	UpdateInventory(ctx context.Context, inventory domain.Inventory) error
	DeleteInventory(ctx context.Context, campaignID, playerID string, expectedVersion int64) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
