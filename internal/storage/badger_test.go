package storage

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealpost/internal/domain"
)

// setupTestDB opens a ledger in a temporary directory.
func setupTestDB(t *testing.T) *BadgerRepository {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(io.Discard)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	t.Cleanup(func() {
		assert.NoError(t, repo.Close(), "Failed to close test BadgerDB repository")
	})
	return repo
}

func TestBadgerRepository_SaveAndGetDeals(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	first := domain.Deal{ASIN: "B08N5WRWNW", Title: "Gadget", PostPath: "_posts/a.md", CreatedAt: now.Add(-time.Hour)}
	second := domain.Deal{ASIN: "B08N5WRWNW", Title: "Gadget", PostPath: "_posts/b.md", Announced: true, CreatedAt: now}
	other := domain.Deal{ASIN: "B000000001", Title: "Other", PostPath: "_posts/c.md", CreatedAt: now.Add(-time.Minute)}

	require.NoError(t, repo.SaveDeal(ctx, first))
	require.NoError(t, repo.SaveDeal(ctx, second))
	require.NoError(t, repo.SaveDeal(ctx, other))

	deals, err := repo.GetDealsByASIN(ctx, "b08n5wrwnw")
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, "_posts/b.md", deals[0].PostPath, "newest first")
	assert.True(t, deals[0].Announced)
	assert.Equal(t, "_posts/a.md", deals[1].PostPath)

	all, err := repo.ListDeals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "_posts/b.md", all[0].PostPath)
	assert.Equal(t, "_posts/c.md", all[1].PostPath)
	assert.Equal(t, "_posts/a.md", all[2].PostPath)

	none, err := repo.GetDealsByASIN(ctx, "B999999999")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBadgerRepository_SaveDefaultsTimestamp(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDeal(ctx, domain.Deal{ASIN: "B08N5WRWNW"}))

	deals, err := repo.GetDealsByASIN(ctx, "B08N5WRWNW")
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.False(t, deals[0].CreatedAt.IsZero())
}

func TestBadgerRepository_DeleteDeals(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveDeal(ctx, domain.Deal{ASIN: "B08N5WRWNW", CreatedAt: now}))
	require.NoError(t, repo.SaveDeal(ctx, domain.Deal{ASIN: "B08N5WRWNW", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, repo.SaveDeal(ctx, domain.Deal{ASIN: "B000000001", CreatedAt: now}))

	removed, err := repo.DeleteDealsByASIN(ctx, "B08N5WRWNW")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := repo.ListDeals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "B000000001", all[0].ASIN)

	removed, err = repo.DeleteDealsByASIN(ctx, "B08N5WRWNW")
	require.NoError(t, err, "deleting again is not an error")
	assert.Zero(t, removed)
}
