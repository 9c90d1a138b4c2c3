package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LootVault_Go/internal/domain"
)

// fakeTx records commits and rollbacks; only the lifecycle methods are used.
type fakeTx struct {
	Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	if f.committed || f.rolledBack {
		return ErrTxClosed
	}
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed || f.rolledBack {
		return ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakeDB struct {
	commitErrs []error
	txs        []*fakeTx
}

func (d *fakeDB) BeginTx(context.Context) (Tx, error) {
	tx := &fakeTx{}
	if n := len(d.txs); n < len(d.commitErrs) {
		tx.commitErr = d.commitErrs[n]
	}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func TestRunInTx_RetriesVersionConflicts(t *testing.T) {
	db := &fakeDB{commitErrs: []error{ErrVersionConflict, nil}}
	calls := 0

	attempts, err := RunInTx(context.Background(), db, 3, func(context.Context, Tx) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 2, calls)
	assert.True(t, db.txs[1].committed)
}

func TestRunInTx_GivesUpWithConflict(t *testing.T) {
	db := &fakeDB{commitErrs: []error{ErrVersionConflict, ErrVersionConflict, ErrVersionConflict}}

	attempts, err := RunInTx(context.Background(), db, 3, func(context.Context, Tx) error { return nil })

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, attempts)
}

func TestRunInTx_OtherErrorsStopAndRollBack(t *testing.T) {
	db := &fakeDB{}
	boom := errors.New("boom")

	attempts, err := RunInTx(context.Background(), db, 3, func(context.Context, Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestRunInTx_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunInTx(ctx, &fakeDB{}, 3, func(context.Context, Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
