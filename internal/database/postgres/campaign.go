package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

const campaignColumns = `
	c.campaign_id, c.name, c.description, c.owner_id, c.owner_name, c.shared_loot,
	c.password_hash, c.created_at, c.updated_at, c.version,
	COALESCE((SELECT array_agg(m.user_id ORDER BY m.join_seq)
		FROM campaign_members m WHERE m.campaign_id = c.campaign_id), '{}') AS member_ids`

func scanCampaign(row rowScanner) (*domain.Campaign, error) {
	var c domain.Campaign
	var loot []byte
	if err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.OwnerName, &loot,
		&c.PasswordHash, &c.CreatedAt, &c.UpdatedAt, &c.Version, &c.MemberIDs,
	); err != nil {
		return nil, err
	}

	items, err := unmarshalItems(loot)
	if err != nil {
		return nil, err
	}
	c.SharedLoot = items
	if c.MemberIDs == nil {
		c.MemberIDs = []string{}
	}
	return &c, nil
}

func getCampaign(ctx context.Context, q querier, campaignID string) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c WHERE c.campaign_id = $1`
	c, err := scanCampaign(q.QueryRow(ctx, query, campaignID))
	if err != nil {
		return nil, translate(err, ErrMsgFailedToGetCampaign, "campaign "+campaignID)
	}
	return c, nil
}

func listCampaigns(ctx context.Context, q querier, query string, arg string) ([]domain.Campaign, error) {
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCampaigns, err)
	}
	defer rows.Close()

	out := []domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCampaigns, err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCampaigns, err)
	}
	return out, nil
}

func insertCampaign(ctx context.Context, q querier, c domain.Campaign) error {
	loot, err := marshalItems(c.SharedLoot)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO campaigns (campaign_id, name, description, owner_id, owner_name,
			shared_loot, password_hash, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
	`
	if _, err := q.Exec(ctx, query, c.ID, c.Name, c.Description, c.OwnerID, c.OwnerName,
		loot, c.PasswordHash, c.CreatedAt, c.UpdatedAt); err != nil {
		return translate(err, ErrMsgFailedToInsertCampaign, "campaign "+c.ID)
	}

	return syncMembers(ctx, q, c.ID, c.MemberIDs)
}

// updateCampaign writes c if the stored version still equals c.Version.
func updateCampaign(ctx context.Context, q querier, c domain.Campaign) error {
	loot, err := marshalItems(c.SharedLoot)
	if err != nil {
		return err
	}

	query := `
		UPDATE campaigns
		SET name = $3, description = $4, owner_name = $5, shared_loot = $6,
			password_hash = $7, updated_at = $8, version = version + 1
		WHERE campaign_id = $1 AND version = $2
	`
	tag, err := q.Exec(ctx, query, c.ID, c.Version, c.Name, c.Description, c.OwnerName,
		loot, c.PasswordHash, c.UpdatedAt)
	if err != nil {
		return translate(err, ErrMsgFailedToUpdateCampaign, "campaign "+c.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s at version %d", repository.ErrVersionConflict, c.ID, c.Version)
	}

	return syncMembers(ctx, q, c.ID, c.MemberIDs)
}

// syncMembers makes campaign_members match memberIDs; new members get the next join_seq.
func syncMembers(ctx context.Context, q querier, campaignID string, memberIDs []string) error {
	if memberIDs == nil {
		memberIDs = []string{}
	}

	if _, err := q.Exec(ctx,
		`DELETE FROM campaign_members WHERE campaign_id = $1 AND NOT (user_id = ANY($2))`,
		campaignID, memberIDs); err != nil {
		return translate(err, ErrMsgFailedToSyncMembers, "campaign "+campaignID)
	}

	for _, userID := range memberIDs {
		if _, err := q.Exec(ctx,
			`INSERT INTO campaign_members (campaign_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			campaignID, userID); err != nil {
			return translate(err, ErrMsgFailedToSyncMembers, "campaign "+campaignID)
		}
	}
	return nil
}

// deleteCampaign removes the campaign; members and inventories cascade.
func deleteCampaign(ctx context.Context, q querier, campaignID string, expectedVersion int64) error {
	tag, err := q.Exec(ctx, `DELETE FROM campaigns WHERE campaign_id = $1 AND version = $2`,
		campaignID, expectedVersion)
	if err != nil {
		return translate(err, ErrMsgFailedToDeleteCampaign, "campaign "+campaignID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: campaign %s at version %d", repository.ErrVersionConflict, campaignID, expectedVersion)
	}
	return nil
}
