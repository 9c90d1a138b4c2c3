package repository

import (
	"context"
	"errors"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// Persistence errors shared by every backend
var (
	// ErrVersionConflict means a conditional write saw a newer record than the one it was based on.
	ErrVersionConflict = errors.New("version conflict")

	// ErrDuplicateID means a create hit an id that already exists.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrTxClosed is returned by Commit or Rollback on a finished transaction.
	ErrTxClosed = errors.New(domain.ErrMsgTxClosed)
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rollback after Commit is the normal deferred path
		if !errors.Is(err, ErrTxClosed) {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
