package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
	carts   *cart.Service
	catalog *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		Cart: config.CartConfig{
			AutoSaveInterval: 30 * time.Second,
			MinQuantity:      1,
			MaxQuantity:      99,
		},
	}
	cat := catalog.NewServiceWithSeed(store.NewMemory(), 1)
	require.NoError(t, cat.Init(context.Background()))
	carts := cart.NewService(store.NewMemory(), store.NewMemory(), cat, cfg)
	return &fixture{
		svc:     NewService(store.NewMemory(), cat, carts),
		carts:   carts,
		catalog: cat,
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)
	assert.True(t, added)

	entries, err := f.svc.Entries(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Fresh Apples", entries[0].Name)

	added, err = f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)
	assert.False(t, added)

	entries, err = f.svc.Entries(ctx, "acct-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestToggleUnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Toggle(context.Background(), "acct-1", "prod_999")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestDedupPolicies(t *testing.T) {
	entry := Entry{ProductID: "prod_100", Name: "Fresh Apples"}
	sameName := &catalog.Product{ID: "prod_200", Name: "Fresh Apples"}
	sameID := &catalog.Product{ID: "prod_100", Name: "Renamed Apples"}

	assert.True(t, DedupByName(entry, sameName), "name collision counts as duplicate")
	assert.False(t, DedupByName(entry, sameID))

	assert.True(t, DedupByID(entry, sameID))
	assert.False(t, DedupByID(entry, sameName))
}

func TestContains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)

	contains, err := f.svc.Contains(ctx, "acct-1", "prod_001")
	require.NoError(t, err)
	assert.True(t, contains)

	contains, err = f.svc.Contains(ctx, "acct-1", "prod_002")
	require.NoError(t, err)
	assert.False(t, contains)
}

func TestSummarize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001") // 1.30
	require.NoError(t, err)
	_, err = f.svc.Toggle(ctx, "acct-1", "prod_010") // 6.00
	require.NoError(t, err)

	sum, err := f.svc.Summarize(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 7.30, sum.TotalValue, 1e-9)
}

func TestMoveToCartKeepsEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)

	require.NoError(t, f.svc.MoveToCart(ctx, "acct-1", "prod_001"))

	c, err := f.carts.Open(ctx, "acct-1")
	require.NoError(t, err)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	entries, err := f.svc.Entries(ctx, "acct-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "entry survives the move")

	p, err := f.catalog.ByID(ctx, "prod_001")
	require.NoError(t, err)
	assert.Equal(t, 99, p.Stock)
}

func TestMoveToCartMissingEntry(t *testing.T) {
	f := newFixture(t)
	err := f.svc.MoveToCart(context.Background(), "acct-1", "prod_001")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)
	require.NoError(t, f.svc.Clear(ctx, "acct-1"))

	entries, err := f.svc.Entries(ctx, "acct-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWishlistsAreAccountScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)

	entries, err := f.svc.Entries(ctx, "acct-2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSyncWishlistMirrorsToAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	synced := make(map[string][]Entry)
	f.svc.SetAccountSync(syncFunc(func(ctx context.Context, accountID string, entries []Entry) error {
		synced[accountID] = entries
		return nil
	}))

	_, err := f.svc.Toggle(ctx, "acct-1", "prod_001")
	require.NoError(t, err)
	require.Len(t, synced["acct-1"], 1)
}

type syncFunc func(ctx context.Context, accountID string, entries []Entry) error

func (f syncFunc) SyncWishlist(ctx context.Context, accountID string, entries []Entry) error {
	return f(ctx, accountID, entries)
}
