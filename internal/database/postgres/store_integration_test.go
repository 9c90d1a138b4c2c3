package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/LootVault_Go/internal/database"
	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/repository"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) func() {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}

	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}

	pool, err := database.NewPool(ctx, connStr, 10, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return terminate
	}

	testPool = pool
	return func() {
		pool.Close()
		terminate()
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}

	_, err := testPool.Exec(context.Background(), `TRUNCATE identities, campaigns CASCADE`)
	require.NoError(t, err)
	return NewStore(testPool)
}

func seed(t *testing.T, s *Store, id string, members ...string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	require.NoError(t, tx.CreateCampaign(ctx, domain.Campaign{
		ID:           id,
		Name:         "Dragon's Lair",
		OwnerID:      "d1",
		OwnerName:    "Dee",
		MemberIDs:    members,
		SharedLoot:   []domain.Item{{ID: "loot-1", Name: "Gem", Category: domain.CategoryTreasure, Rarity: domain.RarityRare, Quantity: 1}},
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	for _, m := range members {
		require.NoError(t, tx.CreateInventory(ctx, domain.NewInventory(id, m, m, 0, now)))
	}
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_CampaignRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111", "p2", "p1")

	c, err := s.GetCampaign(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Version)
	assert.Equal(t, []string{"p2", "p1"}, c.MemberIDs, "join order is preserved")
	require.Len(t, c.SharedLoot, 1)
	assert.Equal(t, "Gem", c.SharedLoot[0].Name)
	assert.Equal(t, "hash", c.PasswordHash)

	invs, err := s.ListInventories(ctx, "AAAA1111")
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "p2", invs[0].PlayerID)
	assert.InDelta(t, domain.DefaultMaxWeight, invs[0].MaxWeight, 1e-9)

	_, err = s.GetCampaign(ctx, "NOPE0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.ListInventories(ctx, "NOPE0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_DuplicateCampaign(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111")

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	err = tx.CreateCampaign(ctx, domain.Campaign{ID: "AAAA1111", Name: "x", OwnerID: "d2", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestStore_ConditionalUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111", "p1")

	stale, err := s.GetCampaign(ctx, "AAAA1111")
	require.NoError(t, err)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	updated := stale.Clone()
	updated.Name = "first"
	updated.MemberIDs = append(updated.MemberIDs, "p3")
	require.NoError(t, tx.UpdateCampaign(ctx, updated))
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	loser := stale.Clone()
	loser.Name = "second"
	assert.ErrorIs(t, tx.UpdateCampaign(ctx, loser), repository.ErrVersionConflict)

	got, err := s.GetCampaign(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, []string{"p1", "p3"}, got.MemberIDs)
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111", "p1")

	inv, err := s.GetInventory(ctx, "AAAA1111", "p1")
	require.NoError(t, err)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	inv.Currency.GP = 99
	require.NoError(t, tx.UpdateInventory(ctx, *inv))
	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Rollback(ctx), repository.ErrTxClosed)

	got, err := s.GetInventory(ctx, "AAAA1111", "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Currency.GP)
	assert.Equal(t, int64(1), got.Version)
}

func TestStore_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111", "p1")

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.DeleteCampaign(ctx, "AAAA1111", 1))
	require.NoError(t, tx.Commit(ctx))

	_, err = s.GetInventory(ctx, "AAAA1111", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	joined, err := s.ListCampaignsByMember(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, joined)
}

func TestStore_Identity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	_, err := s.UpsertIdentity(ctx, domain.Identity{UserID: "u1", DisplayName: "Ann", Role: domain.RolePlayer, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	require.NoError(t, s.SetRole(ctx, "u1", domain.RoleDM))

	got, err := s.UpsertIdentity(ctx, domain.Identity{UserID: "u1", DisplayName: "Anna", Role: domain.RolePlayer, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.DisplayName)
	assert.Equal(t, domain.RoleDM, got.Role)

	assert.ErrorIs(t, s.SetRole(ctx, "ghost", domain.RoleDM), domain.ErrNotFound)
	_, err = s.GetIdentity(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ConcurrentConditionalWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seed(t, s, "AAAA1111", "p1")

	base, err := s.GetInventory(ctx, "AAAA1111", "p1")
	require.NoError(t, err)

	const writers = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tx, err := s.BeginTx(ctx)
			if err != nil {
				return
			}
			defer repository.SafeRollback(ctx, tx)

			inv := base.Clone()
			inv.Currency.GP = n
			if err := tx.UpdateInventory(ctx, inv); err != nil {
				assert.ErrorIs(t, err, repository.ErrVersionConflict)
				return
			}
			if err := tx.Commit(ctx); err == nil {
				wins.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
