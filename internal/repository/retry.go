package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// DefaultMaxAttempts bounds how often a read-modify-write is re-run after
// losing a version race.
const DefaultMaxAttempts = 3

// TxBeginner starts transactions
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// RunInTx runs fn in a fresh transaction and commits it. When a conditional
// write loses to a concurrent writer the whole function is re-run against a
// fresh read, up to maxAttempts times; after that the caller gets
// domain.ErrConflict. Any other error from fn is returned unchanged and
// nothing is committed. attempts reports how many runs were made.
func RunInTx(ctx context.Context, db TxBeginner, maxAttempts int, fn func(ctx context.Context, tx Tx) error) (attempts int, err error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempts = 1; attempts <= maxAttempts; attempts++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempts, ctxErr
		}

		err = runOnce(ctx, db, fn)
		if !errors.Is(err, ErrVersionConflict) {
			return attempts, err
		}
		logger.FromContext(ctx).Debug("Version conflict, retrying", "attempt", attempts, "error", err)
	}

	return maxAttempts, fmt.Errorf("%w: gave up after %d attempts: %v", domain.ErrConflict, maxAttempts, err)
}

func runOnce(ctx context.Context, db TxBeginner, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, tx)

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
