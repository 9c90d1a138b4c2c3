// Package postgres is the PostgreSQL repository.Store. Campaign and inventory
// writes are conditional updates on the version column.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

// Store implements repository.Store on a pgx pool
type Store struct {
	db *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// BeginTx starts a read-committed transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &Tx{tx: tx}, nil
}

func (s *Store) GetCampaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return getCampaign(ctx, s.db, campaignID)
}

func (s *Store) ListCampaignsByOwner(ctx context.Context, ownerID string) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.owner_id = $1 ORDER BY c.created_at, c.campaign_id`
	return listCampaigns(ctx, s.db, query, ownerID)
}

func (s *Store) ListCampaignsByMember(ctx context.Context, userID string) ([]domain.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns c
		JOIN campaign_members j ON j.campaign_id = c.campaign_id
		WHERE j.user_id = $1
		ORDER BY c.created_at, c.campaign_id
	`
	return listCampaigns(ctx, s.db, query, userID)
}

func (s *Store) GetInventory(ctx context.Context, campaignID, playerID string) (*domain.Inventory, error) {
	return getInventory(ctx, s.db, campaignID, playerID)
}

func (s *Store) ListInventories(ctx context.Context, campaignID string) ([]domain.Inventory, error) {
	return listInventories(ctx, s.db, campaignID)
}
