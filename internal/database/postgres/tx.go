package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Tx runs each write immediately inside a pgx transaction. A stale version
// surfaces from the write itself rather than from Commit.
type Tx struct {
	tx pgx.Tx
}

var _ repository.Tx = (*Tx)(nil)

func (t *Tx) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return getCampaign(ctx, t.tx, campaignID)
}

func (t *Tx) GetInventory(ctx context.Context, campaignID, playerID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, campaignID, playerID)
}

func (t *Tx) ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error) {
	return listInventories(ctx, t.tx, campaignID)
}

func (t *Tx) CreateCampaign(ctx context.Context, campaign domain.Campaign) error {
	return insertCampaign(ctx, t.tx, campaign)
}

func (t *Tx) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	return updateCampaign(ctx, t.tx, campaign)
}

func (t *Tx) DeleteCampaign(ctx context.Context, campaignID string, expectedVersion int64) error {
	return deleteCampaign(ctx, t.tx, campaignID, expectedVersion)
}

func (t *Tx) CreateInventory(ctx context.Context, inventory domain.Inventory) error {
	return insertInventory(ctx, t.tx, inventory)
}

func (t *Tx) UpdateInventory(ctx context.Context, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, inventory)
}

func (t *Tx) DeleteInventory(ctx context.Context, campaignID, playerID string, expectedVersion int64) error {
	return deleteInventory(ctx, t.tx, campaignID, playerID, expectedVersion)
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return translate(err, ErrMsgFailedToCommitTransaction, "transaction")
	}
	return nil
}

func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}
