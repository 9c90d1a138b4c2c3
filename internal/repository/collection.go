package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/validation"
)

// Collection is the item list held by one owner: the campaign's shared loot
// or one player's inventory.
type Collection struct {
	Owner domain.Owner
	Items []domain.Item

	campaign  *domain.Campaign
	inventory *domain.Inventory
}

// LoadCollection reads the owner's items inside tx. campaign must have been
// read in the same transaction. A player owner that is not a campaign member
// is ErrNotFound.
func LoadCollection(ctx context.Context, tx Tx, campaign *domain.Campaign, owner domain.Owner) (*Collection, error) {
	switch owner.Kind() {
	case domain.OwnerShared:
		return &Collection{
			Owner:    owner,
			Items:    domain.CloneItems(campaign.SharedLoot),
			campaign: campaign,
		}, nil
	case domain.OwnerPlayer:
		if !campaign.HasMember(owner.PlayerID()) {
			return nil, fmt.Errorf("%w: player %s in campaign %s", domain.ErrNotFound, owner.PlayerID(), campaign.ID)
		}
		inv, err := tx.GetInventory(ctx, campaign.ID, owner.PlayerID())
		if err != nil {
			return nil, err
		}
		return &Collection{
			Owner:     owner,
			Items:     domain.CloneItems(inv.Items),
			inventory: inv,
		}, nil
	}
	return nil, fmt.Errorf("%w: invalid owner", domain.ErrValidation)
}

// Inventory returns the backing inventory, or nil for the shared pool.
func (c *Collection) Inventory() *domain.Inventory {
	return c.inventory
}

// Save stages the collection's items as a conditional write on its record.
func (c *Collection) Save(ctx context.Context, tx Tx, now time.Time) error {
	switch c.Owner.Kind() {
	case domain.OwnerShared:
		c.campaign.SharedLoot = c.Items
		c.campaign.UpdatedAt = now
		return tx.UpdateCampaign(ctx, *c.campaign)
	case domain.OwnerPlayer:
		c.inventory.Items = c.Items
		c.inventory.UpdatedAt = now
		return tx.UpdateInventory(ctx, *c.inventory)
	}
	return fmt.Errorf("%w: invalid owner", domain.ErrValidation)
}

// Replace swaps in a full replacement item list. Items without an id are new
// and get one; items with an id must already be held here, so a replacement
// can never pull in an item another owner holds.
func (c *Collection) Replace(items []domain.Item, now time.Time) error {
	out := domain.CloneItems(items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
			if out[i].CreatedAt.IsZero() {
				out[i].CreatedAt = now
			}
			continue
		}
		if domain.IndexOfItem(c.Items, out[i].ID) < 0 {
			return fmt.Errorf("%w: item %s is not held by %s", domain.ErrConflict, out[i].ID, c.Owner)
		}
	}

	if err := validation.ValidateItems(out); err != nil {
		return err
	}
	c.Items = out
	return nil
}
