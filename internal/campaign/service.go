// Package campaign owns the campaign lifecycle: create, join, leave, delete,
// and the campaign-level fields including the shared loot pool.
package campaign

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/event"
	"github.com/osse101/LootVault_Go/internal/logger"
	"github.com/osse101/LootVault_Go/internal/permission"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Service defines the interface for campaign operations
type Service interface {
	CreateCampaign(ctx context.Context, owner domain.Identity, name, description, password string) (*domain.Campaign, error)
	JoinCampaign(ctx context.Context, campaignID string, user domain.Identity, password string) (*domain.Campaign, error)
	ListCampaignsForUser(ctx context.Context, userID string, role domain.Role) ([]domain.CampaignSummary, error)
	GetCampaign(ctx context.Context, campaignID string, requester domain.Identity) (*domain.Campaign, error)
	UpdateSharedLoot(ctx context.Context, campaignID string, items []domain.Item, requester domain.Identity) (*domain.Campaign, error)
	UpdateDetails(ctx context.Context, campaignID string, requester domain.Identity, name, description string) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string, requester domain.Identity) error
	LeaveCampaign(ctx context.Context, campaignID string, user domain.Identity) error
}

// Config holds campaign service settings
type Config struct {
	// DefaultMaxWeight is the carrying capacity given to new inventories
	DefaultMaxWeight float64
}

type service struct {
	store     repository.Store
	publisher event.Publisher
	cfg       Config
	newID     func() (string, error)
	now       func() time.Time
	hashCost  int
}

// NewService creates a new campaign service
func NewService(store repository.Store, publisher event.Publisher, cfg Config) Service {
	if cfg.DefaultMaxWeight <= 0 {
		cfg.DefaultMaxWeight = domain.DefaultMaxWeight
	}
	return &service{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		newID:     NewID,
		now:       time.Now,
		hashCost:  PasswordHashCost,
	}
}

func (s *service) CreateCampaign(ctx context.Context, owner domain.Identity, name, description, password string) (*domain.Campaign, error) {
	log := logger.FromContext(ctx)

	if owner.UserID == "" {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrValidation)
	}
	if !owner.IsDM() {
		return nil, fmt.Errorf("%w: only a dm can create campaigns", domain.ErrForbidden)
	}
	name, description, err := validateDetails(name, description)
	if err != nil {
		return nil, err
	}
	if password == "" || len(password) > MaxPasswordLength {
		return nil, fmt.Errorf("%w: password must be 1-%d bytes", domain.ErrValidation, MaxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	campaign := domain.Campaign{
		Name:         name,
		Description:  description,
		OwnerID:      owner.UserID,
		OwnerName:    owner.DisplayName,
		MemberIDs:    []string{},
		SharedLoot:   []domain.Item{},
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 1; attempt <= MaxIDAttempts; attempt++ {
		campaign.ID, err = s.newID()
		if err != nil {
			return nil, err
		}

		_, err = repository.RunInTx(ctx, s.store, 1, func(ctx context.Context, tx repository.Tx) error {
			return tx.CreateCampaign(ctx, campaign)
		})
		if errors.Is(err, repository.ErrDuplicateID) {
			log.Warn(LogMsgIDCollision, "campaign_id", campaign.ID, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create campaign: %w", err)
		}

		campaign.Version = 1
		log.Info(LogMsgCampaignCreated, "campaign_id", campaign.ID, "owner", owner.UserID)
		event.PublishAll(ctx, s.publisher,
			event.NewCampaignLifecycleEvent(event.CampaignCreated, campaign.ID, owner.UserID),
			event.NewCampaignUpdatedEvent(campaign.ID, campaign.Version, CauseCreated),
		)
		campaign.PasswordHash = ""
		return &campaign, nil
	}

	return nil, fmt.Errorf("failed to allocate a unique campaign id after %d attempts", MaxIDAttempts)
}

func (s *service) JoinCampaign(ctx context.Context, campaignID string, user domain.Identity, password string) (*domain.Campaign, error) {
	log := logger.FromContext(ctx)
	campaignID = domain.NormalizeCampaignID(campaignID)

	if user.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	var joined *domain.Campaign
	var inventoryVersion int64
	alreadyMember := false

	_, err := repository.RunInTx(ctx, s.store, repository.DefaultMaxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(campaign.PasswordHash), []byte(password)) != nil {
			return fmt.Errorf("%w: wrong password for campaign %s", domain.ErrUnauthorized, campaignID)
		}
		if campaign.IsOwner(user.UserID) {
			return fmt.Errorf("%w: the owner cannot join their own campaign", domain.ErrForbidden)
		}
		if campaign.HasMember(user.UserID) {
			alreadyMember = true
			joined = campaign
			return nil
		}
		if user.Role != domain.RolePlayer {
			return fmt.Errorf("%w: only players can join campaigns", domain.ErrForbidden)
		}

		now := s.now()
		campaign.MemberIDs = append(campaign.MemberIDs, user.UserID)
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, *campaign); err != nil {
			return err
		}

		inv := domain.NewInventory(campaign.ID, user.UserID, user.DisplayName, s.cfg.DefaultMaxWeight, now)
		if err := tx.CreateInventory(ctx, inv); err != nil {
			if errors.Is(err, repository.ErrDuplicateID) {
				// a concurrent join of the same user won
				return fmt.Errorf("%w: %v", repository.ErrVersionConflict, err)
			}
			return err
		}

		campaign.Version++
		inventoryVersion = 1
		joined = campaign
		return nil
	})
	if err != nil {
		log.Warn(LogMsgJoinRejected, "campaign_id", campaignID, "user_id", user.UserID, "error", err)
		return nil, err
	}

	joined.PasswordHash = ""
	if alreadyMember {
		return joined, nil
	}

	log.Info(LogMsgCampaignJoined, "campaign_id", campaignID, "user_id", user.UserID)
	event.PublishAll(ctx, s.publisher,
		event.NewCampaignLifecycleEvent(event.CampaignJoined, campaignID, user.UserID),
		event.NewCampaignUpdatedEvent(campaignID, joined.Version, CauseJoined),
		event.NewInventoriesUpdatedEvent(campaignID, inventoryVersion, CauseJoined),
	)
	return joined, nil
}

func (s *service) ListCampaignsForUser(ctx context.Context, userID string, role domain.Role) ([]domain.CampaignSummary, error) {
	var (
		campaigns []domain.Campaign
		err       error
	)

	switch role {
	case domain.RoleDM:
		campaigns, err = s.store.ListCampaignsByOwner(ctx, userID)
	case domain.RolePlayer:
		campaigns, err = s.store.ListCampaignsByMember(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	out := make([]domain.CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, c.Summary())
	}
	return out, nil
}

func (s *service) GetCampaign(ctx context.Context, campaignID string, requester domain.Identity) (*domain.Campaign, error) {
	campaign, err := s.store.GetCampaign(ctx, domain.NormalizeCampaignID(campaignID))
	if err != nil {
		return nil, err
	}
	if !campaign.CanView(requester.UserID) {
		return nil, fmt.Errorf("%w: not a participant of campaign %s", domain.ErrForbidden, campaign.ID)
	}
	campaign.PasswordHash = ""
	return campaign, nil
}

func (s *service) UpdateSharedLoot(ctx context.Context, campaignID string, items []domain.Item, requester domain.Identity) (*domain.Campaign, error) {
	campaignID = domain.NormalizeCampaignID(campaignID)
	if items == nil {
		items = []domain.Item{}
	}

	var updated *domain.Campaign
	_, err := repository.RunInTx(ctx, s.store, repository.DefaultMaxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		role, ok := permission.RoleIn(*campaign, requester.UserID)
		if !ok || !permission.CanReplaceSharedLoot(role) {
			return fmt.Errorf("%w: only the DM may replace shared loot of %s", domain.ErrForbidden, campaignID)
		}

		shared, err := repository.LoadCollection(ctx, tx, campaign, domain.SharedOwner())
		if err != nil {
			return err
		}
		if err := shared.Replace(items, s.now()); err != nil {
			return err
		}
		if err := shared.Save(ctx, tx, s.now()); err != nil {
			return err
		}

		campaign.Version++
		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgSharedLootReplaced, "campaign_id", campaignID, "requester", requester.UserID, "items", len(updated.SharedLoot))
	event.PublishAll(ctx, s.publisher, event.NewCampaignUpdatedEvent(campaignID, updated.Version, CauseLootReplaced))

	updated.PasswordHash = ""
	return updated, nil
}

func (s *service) UpdateDetails(ctx context.Context, campaignID string, requester domain.Identity, name, description string) (*domain.Campaign, error) {
	campaignID = domain.NormalizeCampaignID(campaignID)
	name, description, err := validateDetails(name, description)
	if err != nil {
		return nil, err
	}

	var updated *domain.Campaign
	_, err = repository.RunInTx(ctx, s.store, repository.DefaultMaxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsOwner(requester.UserID) {
			return fmt.Errorf("%w: only the dm can edit campaign %s", domain.ErrForbidden, campaignID)
		}

		campaign.Name = name
		campaign.Description = description
		campaign.UpdatedAt = s.now()
		if err := tx.UpdateCampaign(ctx, *campaign); err != nil {
			return err
		}

		campaign.Version++
		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCampaignUpdated, "campaign_id", campaignID)
	event.PublishAll(ctx, s.publisher, event.NewCampaignUpdatedEvent(campaignID, updated.Version, CauseDetailsUpdated))

	updated.PasswordHash = ""
	return updated, nil
}

func (s *service) DeleteCampaign(ctx context.Context, campaignID string, requester domain.Identity) error {
	campaignID = domain.NormalizeCampaignID(campaignID)

	_, err := repository.RunInTx(ctx, s.store, repository.DefaultMaxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsOwner(requester.UserID) {
			return fmt.Errorf("%w: only the dm can delete campaign %s", domain.ErrForbidden, campaignID)
		}
		return tx.DeleteCampaign(ctx, campaignID, campaign.Version)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCampaignDeleted, "campaign_id", campaignID, "requester", requester.UserID)
	event.PublishAll(ctx, s.publisher, event.NewCampaignLifecycleEvent(event.CampaignDeleted, campaignID, requester.UserID))
	return nil
}

// LeaveCampaign removes a player. Everything they held goes back to the
// shared pool in the same transaction, stacking where possible.
func (s *service) LeaveCampaign(ctx context.Context, campaignID string, user domain.Identity) error {
	campaignID = domain.NormalizeCampaignID(campaignID)

	var campaignVersion int64
	_, err := repository.RunInTx(ctx, s.store, repository.DefaultMaxAttempts, func(ctx context.Context, tx repository.Tx) error {
		campaign, err := tx.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.HasMember(user.UserID) {
			return fmt.Errorf("%w: %s is not a member of campaign %s", domain.ErrNotFound, user.UserID, campaignID)
		}

		inv, err := tx.GetInventory(ctx, campaignID, user.UserID)
		if err != nil {
			return err
		}

		loot := domain.CloneItems(campaign.SharedLoot)
		for _, item := range inv.Items {
			loot, _, _ = domain.StackInto(loot, item)
		}

		campaign.SharedLoot = loot
		campaign.MemberIDs = slices.DeleteFunc(campaign.MemberIDs, func(id string) bool { return id == user.UserID })
		campaign.UpdatedAt = s.now()
		if err := tx.UpdateCampaign(ctx, *campaign); err != nil {
			return err
		}
		if err := tx.DeleteInventory(ctx, campaignID, user.UserID, inv.Version); err != nil {
			return err
		}

		campaignVersion = campaign.Version + 1
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCampaignLeft, "campaign_id", campaignID, "user_id", user.UserID)
	event.PublishAll(ctx, s.publisher,
		event.NewCampaignUpdatedEvent(campaignID, campaignVersion, CauseLeft),
		event.NewInventoriesUpdatedEvent(campaignID, campaignVersion, CauseLeft),
	)
	return nil
}

func validateDetails(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || len(name) > MaxNameLength {
		return "", "", fmt.Errorf("%w: name must be 1-%d characters", domain.ErrValidation, MaxNameLength)
	}
	if len(description) > MaxDescriptionLength {
		return "", "", fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, MaxDescriptionLength)
	}
	return name, description, nil
}
