package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// UpsertIdentity creates the identity or refreshes its name and email, keeping the role.
func (s *Store) UpsertIdentity(ctx context.Context, identity domain.Identity) (*domain.Identity, error) {
	query := `
		INSERT INTO identities (user_id, display_name, email, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, email = EXCLUDED.email, updated_at = EXCLUDED.updated_at
		RETURNING user_id, display_name, email, role, created_at, updated_at
	`
	var out domain.Identity
	err := s.db.QueryRow(ctx, query, identity.UserID, identity.DisplayName, identity.Email,
		identity.Role, identity.CreatedAt, identity.UpdatedAt).
		Scan(&out.UserID, &out.DisplayName, &out.Email, &out.Role, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertIdentity, err)
	}
	return &out, nil
}

// GetIdentity returns the identity for userID.
func (s *Store) GetIdentity(ctx context.Context, userID string) (*domain.Identity, error) {
	query := `SELECT user_id, display_name, email, role, created_at, updated_at FROM identities WHERE user_id = $1`
	var out domain.Identity
	err := s.db.QueryRow(ctx, query, userID).
		Scan(&out.UserID, &out.DisplayName, &out.Email, &out.Role, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, translate(err, ErrMsgFailedToGetIdentity, "identity "+userID)
	}
	return &out, nil
}

// SetRole changes the active role of userID.
func (s *Store) SetRole(ctx context.Context, userID string, role domain.Role) error {
	tag, err := s.db.Exec(ctx, `UPDATE identities SET role = $2, updated_at = NOW() WHERE user_id = $1`, userID, role)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetRole, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: identity %s", domain.ErrNotFound, userID)
	}
	return nil
}
