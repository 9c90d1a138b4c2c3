// Package transfer moves items between owners inside a campaign.
//
// A move re-reads the campaign, checks permission and that the item is still
// where the caller thinks it is, removes it from the source, stacks it into the
// destination and commits both collections as one conditional write. Losing a
// version race re-runs the whole sequence against fresh state, so a request
// whose item was taken by a concurrent move ends in domain.ErrConflict and
// never clobbers the winner.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/permission"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// MoveRequest names an item and where it should go
type MoveRequest struct {
	CampaignID string       `json:"campaign_id"`
	ItemID     string       `json:"item_id"`
	From       domain.Owner `json:"from"`
	To         domain.Owner `json:"to"`
}

// MoveResult describes the destination entry after a move
type MoveResult struct {
	// Item is the destination entry. After a merge it carries the destination
	// stack's id and the combined quantity.
	Item     domain.Item `json:"item"`
	Merged   bool        `json:"merged"`
	Attempts int         `json:"attempts"`
}

// Service defines the interface for item transfers
type Service interface {
	MoveItem(ctx context.Context, req MoveRequest, requester domain.Identity) (*MoveResult, error)
}

type service struct {
	store       repository.Store
	publisher   event.Publisher
	maxAttempts int
	now         func() time.Time
}

// NewService creates a new transfer service
func NewService(store repository.Store, publisher event.Publisher) Service {
	return &service{
		store:       store,
		publisher:   publisher,
		maxAttempts: MaxMoveAttempts,
		now:         time.Now,
	}
}

func (s *service) MoveItem(ctx context.Context, req MoveRequest, requester domain.Identity) (*MoveResult, error) {
	req.CampaignID = domain.NormalizeCampaignID(req.CampaignID)
	log := logger.FromContext(ctx).With(
		"campaign_id", req.CampaignID,
		"item_id", req.ItemID,
		"from", req.From.String(),
		"to", req.To.String(),
		"requester", requester.UserID,
	)

	if req.ItemID == "" || !req.From.Valid() || !req.To.Valid() {
		return nil, fmt.Errorf("%w: item id, from and to are required", domain.ErrValidation)
	}

	var (
		result          MoveResult
		campaignVersion  int64
		inventoryVersion int64
		touchedShared    bool
		touchedPlayers   bool
	)

	attempts, err := repository.RunInTx(ctx, s.store, s.maxAttempts, func(ctx context.Context, tx repository.Tx) error {
		result = MoveResult{}

		campaign, err := tx.GetCampaign(ctx, req.CampaignID)
		if err != nil {
			return err
		}

		role, ok := permission.RoleIn(*campaign, requester.UserID)
		if !ok || !permission.CanMove(role, requester.UserID, req.From, req.To) {
			return fmt.Errorf("%w: %s may not move items from %s to %s", domain.ErrForbidden, requester.UserID, req.From, req.To)
		}

		src, err := repository.LoadCollection(ctx, tx, campaign, req.From)
		if err != nil {
			return err
		}
		dst := src
		if req.To != req.From {
			if dst, err = repository.LoadCollection(ctx, tx, campaign, req.To); err != nil {
				return err
			}
		}

		var item domain.Item
		var found bool
		src.Items, item, found = domain.RemoveItem(src.Items, req.ItemID)
		if !found {
			return fmt.Errorf("%w: item %s is no longer held by %s", domain.ErrConflict, req.ItemID, req.From)
		}

		var idx int
		dst.Items, idx, result.Merged = domain.StackInto(dst.Items, item)
		result.Item = dst.Items[idx]

		now := s.now()
		if err := src.Save(ctx, tx, now); err != nil {
			return err
		}
		if dst != src {
			if err := dst.Save(ctx, tx, now); err != nil {
				return err
			}
		}

		touchedShared = req.From.IsShared() || req.To.IsShared()
		touchedPlayers = !req.From.IsShared() || !req.To.IsShared()
		campaignVersion = campaign.Version
		if touchedShared {
			campaignVersion++
		}
		for _, c := range []*repository.Collection{src, dst} {
			if inv := c.Inventory(); inv != nil {
				inventoryVersion = inv.Version + 1
			}
		}
		return nil
	})
	if err != nil {
		s.reject(ctx, log, req, requester, err)
		return nil, err
	}

	result.Attempts = attempts
	log.Info(LogMsgItemMoved, "merged", result.Merged, "attempts", attempts)

	events := []event.Event{
		event.NewItemMovedEvent(req.CampaignID, req.ItemID, req.From, req.To, requester.UserID, result.Merged, attempts),
	}
	if touchedShared {
		events = append(events, event.NewCampaignUpdatedEvent(req.CampaignID, campaignVersion, CauseItemMoved))
	}
	if touchedPlayers {
		events = append(events, event.NewInventoriesUpdatedEvent(req.CampaignID, inventoryVersion, CauseItemMoved))
	}
	event.PublishAll(ctx, s.publisher, events...)

	return &result, nil
}

// reject logs a failed move. Typed failures are also published so observers
// can count them.
func (s *service) reject(ctx context.Context, log *slog.Logger, req MoveRequest, requester domain.Identity, err error) {
	reason := rejectReason(err)
	if reason == "" {
		log.Error(LogMsgMoveFailed, "error", err)
		return
	}

	log.Warn(LogMsgMoveRejected, "reason", reason, "error", err)
	event.PublishAll(ctx, s.publisher, event.NewMoveRejectedEvent(req.CampaignID, req.ItemID, requester.UserID, reason))
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return domain.ErrMsgForbidden
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrMsgConflict
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrMsgNotFound
	case errors.Is(err, domain.ErrValidation):
		return domain.ErrMsgValidation
	}
	return ""
}
