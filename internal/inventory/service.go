// Package inventory reads and edits the item collections of a campaign: each
// player's inventory and, for single-item edits, the shared loot pool.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LootVault_Go/internal/catalog"
	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/permission"
	"github.com/osse101/LootVault_Go/internal/repository"
	"github.com/osse101/LootVault_Go/internal/validation"
)

// UpdateRequest replaces a player's items. Currency and MaxWeight are left
// unchanged when nil.
type UpdateRequest struct {
	Items     []domain.Item    `json:"items"`
	Currency  *domain.Currency `json:"currency,omitempty"`
	MaxWeight *float64         `json:"max_weight,omitempty"`
}

// ItemPatch changes the non-nil fields of an item
type ItemPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *domain.Category `json:"category,omitempty"`
	Rarity      *domain.Rarity   `json:"rarity,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Weight      *float64         `json:"weight,omitempty"`
	Value       *float64         `json:"value,omitempty"`
	ClearValue  bool             `json:"clear_value,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
	Attunement  *bool            `json:"attunement,omitempty"`
}

// Apply returns item with the patch applied
func (p ItemPatch) Apply(item domain.Item) domain.Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Rarity != nil {
		item.Rarity = *p.Rarity
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Weight != nil {
		item.Weight = *p.Weight
	}
	switch {
	case p.ClearValue:
		item.Value = nil
	case p.Value != nil:
		v := *p.Value
		item.Value = &v
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	if p.Attunement != nil {
		item.Attunement = *p.Attunement
	}
	return item
}

// Service defines the interface for inventory operations
type Service interface {
	GetInventories(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.Inventory, error)
	InventorySummaries(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.InventorySummary, error)
	UpdateInventory(ctx context.Context, campaignID, playerID string, req UpdateRequest, requester domain.Identity) (*domain.Inventory, error)
	AdjustCurrency(ctx context.Context, campaignID, playerID string, delta domain.CurrencyDelta, requester domain.Identity) (*domain.Inventory, error)

	AddItem(ctx context.Context, campaignID string, owner domain.Owner, item domain.Item, requester domain.Identity) (*domain.Item, error)
	AddCatalogItem(ctx context.Context, campaignID string, owner domain.Owner, key string, quantity int, requester domain.Identity) (*domain.Item, error)
	EditItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, patch ItemPatch, requester domain.Identity) (*domain.Item, error)
	DeleteItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, requester domain.Identity) error
}

type service struct {
	store       repository.Store
	publisher   event.Publisher
	catalog     *catalog.Catalog
	maxAttempts int
	now         func() time.Time
}

// NewService creates a new inventory service. items may be nil, in which case
// AddCatalogItem reports every key as not found.
func NewService(store repository.Store, publisher event.Publisher, items *catalog.Catalog) Service {
	return &service{
		store:       store,
		publisher:   publisher,
		catalog:     items,
		maxAttempts: repository.DefaultMaxAttempts,
		now:         time.Now,
	}
}

func (s *service) GetInventories(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.Inventory, error) {
	campaignID = domain.NormalizeCampaignID(campaignID)

	campaign, err := s.store.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !campaign.CanView(requester.UserID) {
		return nil, fmt.Errorf("%w: not a participant of campaign %s", domain.ErrForbidden, campaignID)
	}

	invs, err := s.store.ListInventories(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventories: %w", err)
	}
	return invs, nil
}

func (s *service) InventorySummaries(ctx context.Context, campaignID string, requester domain.Identity) ([]domain.InventorySummary, error) {
	invs, err := s.GetInventories(ctx, campaignID, requester)
	if err != nil {
		return nil, err
	}
	out := make([]domain.InventorySummary, 0, len(invs))
	for _, inv := range invs {
		out = append(out, inv.Summary())
	}
	return out, nil
}

func (s *service) UpdateInventory(ctx context.Context, campaignID, playerID string, req UpdateRequest, requester domain.Identity) (*domain.Inventory, error) {
	if req.Items == nil {
		return nil, fmt.Errorf("%w: items are required", domain.ErrValidation)
	}
	if req.Currency != nil {
		if err := validation.ValidateCurrency(*req.Currency); err != nil {
			return nil, err
		}
	}
	if req.MaxWeight != nil && *req.MaxWeight <= 0 {
		return nil, fmt.Errorf("%w: max weight must be positive", domain.ErrValidation)
	}

	inv, err := s.mutatePlayer(ctx, campaignID, playerID, requester, func(c *repository.Collection) error {
		if err := c.Replace(req.Items, s.now()); err != nil {
			return err
		}
		if req.Currency != nil {
			c.Inventory().Currency = *req.Currency
		}
		if req.MaxWeight != nil {
			c.Inventory().MaxWeight = *req.MaxWeight
		}
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, campaignID, requester, err)
	}

	logger.FromContext(ctx).Info(LogMsgInventoryUpdated,
		"campaign_id", inv.CampaignID, "player_id", playerID, "requester", requester.UserID, "items", len(inv.Items))
	event.PublishAll(ctx, s.publisher, event.NewInventoriesUpdatedEvent(inv.CampaignID, inv.Version, CauseInventoryUpdated))
	return inv, nil
}

// AdjustCurrency adds delta to the player's coins, saturating each
// denomination to [0, domain.MaxCoins]. A version race re-reads and re-applies the delta.
func (s *service) AdjustCurrency(ctx context.Context, campaignID, playerID string, delta domain.CurrencyDelta, requester domain.Identity) (*domain.Inventory, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("%w: currency delta is empty", domain.ErrValidation)
	}
	if err := validation.ValidateCurrencyDelta(delta); err != nil {
		return nil, err
	}

	inv, err := s.mutatePlayer(ctx, campaignID, playerID, requester, func(c *repository.Collection) error {
		c.Inventory().Currency = c.Inventory().Currency.Apply(delta)
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, campaignID, requester, err)
	}

	logger.FromContext(ctx).Info(LogMsgCurrencyAdjusted,
		"campaign_id", inv.CampaignID, "player_id", playerID, "requester", requester.UserID, "delta", delta)
	event.PublishAll(ctx, s.publisher, event.NewInventoriesUpdatedEvent(inv.CampaignID, inv.Version, CauseCurrencyAdjusted))
	return inv, nil
}

// AddItem gives item a fresh id and stacks it into the owner's collection.
// The returned item is the resulting entry, which after a merge is the
// existing stack.
func (s *service) AddItem(ctx context.Context, campaignID string, owner domain.Owner, item domain.Item, requester domain.Identity) (*domain.Item, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = s.now()
	if err := validation.ValidateItem(item); err != nil {
		return nil, err
	}
	return s.addItem(ctx, campaignID, owner, item, requester)
}

// AddCatalogItem instantiates the catalog template key and adds it like AddItem.
func (s *service) AddCatalogItem(ctx context.Context, campaignID string, owner domain.Owner, key string, quantity int, requester domain.Identity) (*domain.Item, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("%w: catalog item %q", domain.ErrNotFound, key)
	}
	def, err := s.catalog.Lookup(key)
	if err != nil {
		return nil, err
	}

	item := def.NewItem(uuid.NewString(), quantity, s.now())
	if err := validation.ValidateItem(item); err != nil {
		return nil, err
	}
	return s.addItem(ctx, campaignID, owner, item, requester)
}

func (s *service) addItem(ctx context.Context, campaignID string, owner domain.Owner, item domain.Item, requester domain.Identity) (*domain.Item, error) {
	var added domain.Item
	campaignID, version, err := s.mutate(ctx, campaignID, owner, requester, func(c *repository.Collection) error {
		var idx int
		c.Items, idx, _ = domain.StackInto(c.Items, item)
		added = c.Items[idx]
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, campaignID, requester, err)
	}

	logger.FromContext(ctx).Info(LogMsgItemAdded,
		"campaign_id", campaignID, "owner", owner.String(), "item_id", added.ID, "requester", requester.UserID)
	s.publishChange(ctx, campaignID, owner, version, CauseItemAdded)
	return &added, nil
}

// EditItem patches one item in place. An item that is no longer held by
// owner is ErrConflict.
func (s *service) EditItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, patch ItemPatch, requester domain.Identity) (*domain.Item, error) {
	var edited domain.Item
	campaignID, version, err := s.mutate(ctx, campaignID, owner, requester, func(c *repository.Collection) error {
		idx := domain.IndexOfItem(c.Items, itemID)
		if idx < 0 {
			return fmt.Errorf("%w: item %s is no longer held by %s", domain.ErrConflict, itemID, owner)
		}
		edited = patch.Apply(c.Items[idx])
		if err := validation.ValidateItem(edited); err != nil {
			return err
		}
		c.Items[idx] = edited
		return nil
	})
	if err != nil {
		return nil, s.rejected(ctx, campaignID, requester, err)
	}

	logger.FromContext(ctx).Info(LogMsgItemEdited,
		"campaign_id", campaignID, "owner", owner.String(), "item_id", itemID, "requester", requester.UserID)
	s.publishChange(ctx, campaignID, owner, version, CauseItemEdited)
	return &edited, nil
}

// DeleteItem removes one item. An item that is no longer held by owner is
// ErrConflict.
func (s *service) DeleteItem(ctx context.Context, campaignID string, owner domain.Owner, itemID string, requester domain.Identity) error {
	campaignID, version, err := s.mutate(ctx, campaignID, owner, requester, func(c *repository.Collection) error {
		var found bool
		c.Items, _, found = domain.RemoveItem(c.Items, itemID)
		if !found {
			return fmt.Errorf("%w: item %s is no longer held by %s", domain.ErrConflict, itemID, owner)
		}
		return nil
	})
	if err != nil {
		return s.rejected(ctx, campaignID, requester, err)
	}

	logger.FromContext(ctx).Info(LogMsgItemDeleted,
		"campaign_id", campaignID, "owner", owner.String(), "item_id", itemID, "requester", requester.UserID)
	s.publishChange(ctx, campaignID, owner, version, CauseItemDeleted)
	return nil
}

// mutate runs fn against owner's collection inside a retried transaction
// after the edit permission check, then saves it. It returns the normalized
// campaign id and the version the saved record now carries.
func (s *service) mutate(ctx context.Context, campaignID string, owner domain.Owner, requester domain.Identity, fn func(c *repository.Collection) error) (string, int64, error) {
	campaignID = domain.NormalizeCampaignID(campaignID)
	if !owner.Valid() {
		return campaignID, 0, fmt.Errorf("%w: owner is required", domain.ErrValidation)
	}

	var version int64
	_, err := repository.RunInTx(ctx, s.store, s.maxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		role, ok := permission.RoleIn(*campaign, requester.UserID)
		if !ok || !permission.CanEdit(role, requester.UserID, owner) {
			return fmt.Errorf("%w: %s may not edit items of %s", domain.ErrForbidden, requester.UserID, owner)
		}

		c, err := repository.LoadCollection(ctx, tx, campaign, owner)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := c.Save(ctx, tx, s.now()); err != nil {
			return err
		}

		if inv := c.Inventory(); inv != nil {
			version = inv.Version + 1
		} else {
			version = campaign.Version + 1
		}
		return nil
	})
	return campaignID, version, err
}

// mutatePlayer is mutate for a player's inventory, returning the saved inventory.
func (s *service) mutatePlayer(ctx context.Context, campaignID, playerID string, requester domain.Identity, fn func(c *repository.Collection) error) (*domain.Inventory, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", domain.ErrValidation)
	}

	var saved domain.Inventory
	_, version, err := s.mutate(ctx, campaignID, domain.PlayerOwner(playerID), requester, func(c *repository.Collection) error {
		if err := fn(c); err != nil {
			return err
		}
		saved = c.Inventory().Clone()
		saved.Items = domain.CloneItems(c.Items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved.Version = version
	return &saved, nil
}

func (s *service) publishChange(ctx context.Context, campaignID string, owner domain.Owner, version int64, cause string) {
	switch owner.Kind() {
	case domain.OwnerShared:
		event.PublishAll(ctx, s.publisher, event.NewCampaignUpdatedEvent(campaignID, version, cause))
	case domain.OwnerPlayer:
		event.PublishAll(ctx, s.publisher, event.NewInventoriesUpdatedEvent(campaignID, version, cause))
	}
}

func (s *service) rejected(ctx context.Context, campaignID string, requester domain.Identity, err error) error {
	logger.FromContext(ctx).Warn(LogMsgMutationRejected, "campaign_id", campaignID, "requester", requester.UserID, "error", err)
	return err
}
