package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

const inventoryColumns = `
	i.campaign_id, i.player_id, i.player_name, i.max_weight, i.items,
	i.pp, i.gp, i.sp, i.cp, i.joined_at, i.updated_at, i.version`

func scanInventory(row rowScanner) (*domain.Inventory, error) {
	var inv domain.Inventory
	var items []byte
	if err := row.Scan(
		&inv.CampaignID, &inv.PlayerID, &inv.PlayerName, &inv.MaxWeight, &items,
		&inv.Currency.PP, &inv.Currency.GP, &inv.Currency.SP, &inv.Currency.CP,
		&inv.JoinedAt, &inv.UpdatedAt, &inv.Version,
	); err != nil {
		return nil, err
	}

	decoded, err := unmarshalItems(items)
	if err != nil {
		return nil, err
	}
	inv.Items = decoded
	return &inv, nil
}

func getInventory(ctx context.Context, q querier, campaignID, playerID string) (*domain.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories i WHERE i.campaign_id = $1 AND i.player_id = $2`
	inv, err := scanInventory(q.QueryRow(ctx, query, campaignID, playerID))
	if err != nil {
		return nil, translate(err, ErrMsgFailedToGetInventory, fmt.Sprintf("inventory %s/%s", campaignID, playerID))
	}
	return inv, nil
}

// listInventories returns members' inventories in join order.
func listInventories(ctx context.Context, q querier, campaignID string) ([]domain.Inventory, error) {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE campaign_id = $1)`, campaignID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventories, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: campaign %s", domain.ErrNotFound, campaignID)
	}

	query := `
		SELECT ` + inventoryColumns + `
		FROM inventories i
		JOIN campaign_members m ON m.campaign_id = i.campaign_id AND m.user_id = i.player_id
		WHERE i.campaign_id = $1
		ORDER BY m.join_seq
	`
	rows, err := q.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventories, err)
	}
	defer rows.Close()

	out := []domain.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventories, err)
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventories, err)
	}
	return out, nil
}

func insertInventory(ctx context.Context, q querier, inv domain.Inventory) error {
	items, err := marshalItems(inv.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO inventories (campaign_id, player_id, player_name, max_weight, items,
			pp, gp, sp, cp, joined_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
	`
	if _, err := q.Exec(ctx, query, inv.CampaignID, inv.PlayerID, inv.PlayerName, inv.MaxWeight, items,
		inv.Currency.PP, inv.Currency.GP, inv.Currency.SP, inv.Currency.CP, inv.JoinedAt, inv.UpdatedAt); err != nil {
		return translate(err, ErrMsgFailedToInsertInventory, fmt.Sprintf("inventory %s/%s", inv.CampaignID, inv.PlayerID))
	}
	return nil
}

// updateInventory writes inv if the stored version still equals inv.Version.
func updateInventory(ctx context.Context, q querier, inv domain.Inventory) error {
	items, err := marshalItems(inv.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE inventories
		SET player_name = $4, max_weight = $5, items = $6,
			pp = $7, gp = $8, sp = $9, cp = $10, updated_at = $11, version = version + 1
		WHERE campaign_id = $1 AND player_id = $2 AND version = $3
	`
	tag, err := q.Exec(ctx, query, inv.CampaignID, inv.PlayerID, inv.Version, inv.PlayerName, inv.MaxWeight, items,
		inv.Currency.PP, inv.Currency.GP, inv.Currency.SP, inv.Currency.CP, inv.UpdatedAt)
	if err != nil {
		return translate(err, ErrMsgFailedToUpdateInventory, fmt.Sprintf("inventory %s/%s", inv.CampaignID, inv.PlayerID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventory %s/%s at version %d", repository.ErrVersionConflict, inv.CampaignID, inv.PlayerID, inv.Version)
	}
	return nil
}

func deleteInventory(ctx context.Context, q querier, campaignID, playerID string, expectedVersion int64) error {
	tag, err := q.Exec(ctx,
		`DELETE FROM inventories WHERE campaign_id = $1 AND player_id = $2 AND version = $3`,
		campaignID, playerID, expectedVersion)
	if err != nil {
		return translate(err, ErrMsgFailedToDeleteInventory, fmt.Sprintf("inventory %s/%s", campaignID, playerID))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: inventory %s/%s at version %d", repository.ErrVersionConflict, campaignID, playerID, expectedVersion)
	}
	return nil
}
