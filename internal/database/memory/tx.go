package memory

import (
	"context"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

type opKind int

const (
	opCreateCampaign opKind = iota
	opUpdateCampaign
	opDeleteCampaign
	opCreateInventory
	opUpdateInventory
	opDeleteInventory
)

type stagedOp struct {
	kind      opKind
	key       string
	campaign  domain.Campaign
	inventory domain.Inventory
	// expected is the version the write was based on; 0 for creates
	expected   int64
	campaignID string
	playerID   string
}

// Tx stages writes in order and applies them on Commit if every record is
// still at the version the write was based on.
type Tx struct {
	store  *Store
	ops    []stagedOp
	closed bool
}

var _ repository.Tx = (*Tx)(nil)

// staged returns the latest staged state of key: the op, and whether one exists.
func (t *Tx) staged(key string) (stagedOp, bool) {
	for i := len(t.ops) - 1; i >= 0; i-- {
		if t.ops[i].key == key {
			return t.ops[i], true
		}
	}
	return stagedOp{}, false
}

// GetCampaign reads through staged writes to the committed record.
func (t *Tx) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	if op, ok := t.staged(campaignKey(campaignID)); ok {
		if op.kind == opDeleteCampaign {
			return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
		}
		out := op.campaign.Clone()
		return &out, nil
	}
	return t.store.GetCampaign(ctx, campaignID)
}

// GetInventory reads through staged writes to the committed record.
func (t *Tx) GetInventory(ctx context.Context, campaignID, playerID string) (*domain.Inventory, error) {
	if op, ok := t.staged(inventoryKey(campaignID, playerID)); ok {
		if op.kind == opDeleteInventory {
			return nil, fmt.Errorf("%w: inventory %s/%s", domain.ErrNotFound, campaignID, playerID)
		}
		out := op.inventory.Clone()
		return &out, nil
	}
	return t.store.GetInventory(ctx, campaignID, playerID)
}

// ListInventories returns the campaign's inventories in join order, staged writes included.
func (t *Tx) ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error) {
	c, err := t.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Inventory, 0, len(c.MemberIDs))
	for _, playerID := range c.MemberIDs {
		inv, err := t.GetInventory(ctx, campaignID, playerID)
		if err != nil {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

// CreateCampaign stages a new campaign at version 1.
func (t *Tx) CreateCampaign(_ context.Context, campaign domain.Campaign) error {
	if err := t.open(); err != nil {
		return err
	}
	campaign = campaign.Clone()
	campaign.Version = 1
	t.ops = append(t.ops, stagedOp{kind: opCreateCampaign, key: campaignKey(campaign.ID), campaign: campaign})
	return nil
}

// UpdateCampaign stages a write conditional on campaign.Version.
func (t *Tx) UpdateCampaign(_ context.Context, campaign domain.Campaign) error {
	if err := t.open(); err != nil {
		return err
	}
	expected := campaign.Version
	campaign = campaign.Clone()
	campaign.Version = expected + 1
	t.ops = append(t.ops, stagedOp{
		kind:     opUpdateCampaign,
		key:      campaignKey(campaign.ID),
		campaign: campaign,
		expected: expected,
	})
	return nil
}

// DeleteCampaign stages removal of the campaign and all its inventories.
func (t *Tx) DeleteCampaign(_ context.Context, campaignID string, expectedVersion int64) error {
	if err := t.open(); err != nil {
		return err
	}
	t.ops = append(t.ops, stagedOp{
		kind:       opDeleteCampaign,
		key:        campaignKey(campaignID),
		expected:   expectedVersion,
		campaignID: campaignID,
	})
	return nil
}

// CreateInventory stages a new inventory at version 1.
func (t *Tx) CreateInventory(_ context.Context, inventory domain.Inventory) error {
	if err := t.open(); err != nil {
		return err
	}
	inventory = inventory.Clone()
	inventory.Version = 1
	t.ops = append(t.ops, stagedOp{
		kind:      opCreateInventory,
		key:       inventoryKey(inventory.CampaignID, inventory.PlayerID),
		inventory: inventory,
	})
	return nil
}

// UpdateInventory stages a write conditional on inventory.Version.
func (t *Tx) UpdateInventory(_ context.Context, inventory domain.Inventory) error {
	if err := t.open(); err != nil {
		return err
	}
	expected := inventory.Version
	inventory = inventory.Clone()
	inventory.Version = expected + 1
	t.ops = append(t.ops, stagedOp{
		kind:      opUpdateInventory,
		key:       inventoryKey(inventory.CampaignID, inventory.PlayerID),
		inventory: inventory,
		expected:  expected,
	})
	return nil
}

// DeleteInventory stages removal of one inventory.
func (t *Tx) DeleteInventory(_ context.Context, campaignID, playerID string, expectedVersion int64) error {
	if err := t.open(); err != nil {
		return err
	}
	t.ops = append(t.ops, stagedOp{
		kind:       opDeleteInventory,
		key:        inventoryKey(campaignID, playerID),
		expected:   expectedVersion,
		campaignID: campaignID,
		playerID:   playerID,
	})
	return nil
}

// Commit locks every touched record, verifies versions and applies all staged writes.
func (t *Tx) Commit(_ context.Context) error {
	if err := t.open(); err != nil {
		return err
	}
	t.closed = true
	if len(t.ops) == 0 {
		return nil
	}

	s := t.store
	keys := t.lockKeys()
	unlock := s.locks.LockAll(keys...)
	defer unlock()

	s.mu.RLock()
	err := t.verifyLocked()
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	s.mu.Lock()
	t.applyLocked()
	s.mu.Unlock()
	return nil
}

// Rollback discards staged writes.
func (t *Tx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.ops = nil
	return nil
}

func (t *Tx) open() error {
	if t.closed {
		return repository.ErrTxClosed
	}
	return nil
}

// lockKeys covers every staged key plus the inventories swept by a campaign delete.
func (t *Tx) lockKeys() []string {
	keys := make([]string, 0, len(t.ops))
	s := t.store
	for _, op := range t.ops {
		keys = append(keys, op.key)
		if op.kind == opDeleteCampaign {
			s.mu.RLock()
			if c, ok := s.campaigns[op.campaignID]; ok {
				for _, playerID := range c.MemberIDs {
					keys = append(keys, inventoryKey(op.campaignID, playerID))
				}
			}
			s.mu.RUnlock()
		}
	}
	return keys
}

// verifyLocked replays the staged ops against committed versions.
// Callers hold the record locks and s.mu for reading.
func (t *Tx) verifyLocked() error {
	s := t.store
	// version 0 means absent
	view := make(map[string]int64)
	current := func(op stagedOp) int64 {
		if v, ok := view[op.key]; ok {
			return v
		}
		switch op.kind {
		case opCreateCampaign, opUpdateCampaign, opDeleteCampaign:
			id := op.campaign.ID
			if op.kind == opDeleteCampaign {
				id = op.campaignID
			}
			return s.campaigns[id].Version
		default:
			return s.inventories[op.key].Version
		}
	}

	for _, op := range t.ops {
		have := current(op)
		switch op.kind {
		case opCreateCampaign, opCreateInventory:
			if have != 0 {
				return fmt.Errorf("%w: %s", repository.ErrDuplicateID, op.key)
			}
			view[op.key] = 1
		case opUpdateCampaign:
			if have == 0 || have != op.expected {
				return fmt.Errorf("%w: %s at %d, expected %d", repository.ErrVersionConflict, op.key, have, op.expected)
			}
			view[op.key] = op.campaign.Version
		case opUpdateInventory:
			if have == 0 || have != op.expected {
				return fmt.Errorf("%w: %s at %d, expected %d", repository.ErrVersionConflict, op.key, have, op.expected)
			}
			view[op.key] = op.inventory.Version
		case opDeleteCampaign, opDeleteInventory:
			if have == 0 || have != op.expected {
				return fmt.Errorf("%w: %s at %d, expected %d", repository.ErrVersionConflict, op.key, have, op.expected)
			}
			view[op.key] = 0
		}
	}
	return nil
}

func (t *Tx) applyLocked() {
	s := t.store
	for _, op := range t.ops {
		switch op.kind {
		case opCreateCampaign, opUpdateCampaign:
			s.campaigns[op.campaign.ID] = op.campaign
		case opDeleteCampaign:
			if c, ok := s.campaigns[op.campaignID]; ok {
				for _, playerID := range c.MemberIDs {
					delete(s.inventories, inventoryKey(op.campaignID, playerID))
				}
			}
			delete(s.campaigns, op.campaignID)
		case opCreateInventory, opUpdateInventory:
			s.inventories[op.key] = op.inventory
		case opDeleteInventory:
			delete(s.inventories, op.key)
		}
	}
}
