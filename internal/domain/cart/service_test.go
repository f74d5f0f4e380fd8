package cart

import (
	"context"
	"testing"
	"time"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *Service
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
	return &fixture{
		svc:     NewService(store.NewMemory(), store.NewMemory(), cat, cfg),
		catalog: cat,
	}
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.catalog.ByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func TestAddReservesStockAndTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)

	require.NoError(t, c.Add(ctx, "prod_001", 2))
	assert.Equal(t, 98, f.stock(t, "prod_001"))

	sum := c.Summary()
	assert.Equal(t, 2, sum.ItemCount)
	assert.Equal(t, 2.60, sum.Subtotal)
	assert.InDelta(t, 0.26, sum.ItemDiscount, 1e-9)
	assert.InDelta(t, 2.34, sum.Total, 1e-9)
}

func TestItemOfferDiscount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2)) // 1.30 each, 10% off

	sum := c.Summary()
	assert.Equal(t, 2.60, sum.Subtotal)
	assert.InDelta(t, 0.26, sum.ItemDiscount, 1e-9)
	assert.InDelta(t, 2.34, sum.Total, 1e-9)

	// Coupon discount stacks on top of the line offers.
	require.NoError(t, c.ApplyCoupon("SAVE10"))
	sum = c.Summary()
	assert.InDelta(t, 0.26, sum.Discount, 1e-9)
	assert.InDelta(t, 2.08, sum.Total, 1e-9)
}

func TestAddMergesExistingLine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)

	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.Add(ctx, "prod_001", 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 95, f.stock(t, "prod_001"))
}

func TestRemoveRestoresStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2))

	require.NoError(t, c.Remove(ctx, "prod_001"))
	assert.Empty(t, c.Lines())
	assert.Equal(t, 100, f.stock(t, "prod_001"))
	assert.Equal(t, 0.0, c.Summary().Subtotal)

	assert.ErrorIs(t, c.Remove(ctx, "prod_001"), ErrLineNotFound)
}

func TestAddOutOfStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.AdjustStock(ctx, "prod_001", 1, catalog.StockSet)
	require.NoError(t, err)

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	assert.ErrorIs(t, c.Add(ctx, "prod_001", 2), ErrOutOfStock)
	assert.Empty(t, c.Lines())
	assert.Equal(t, 1, f.stock(t, "prod_001"))
}

func TestSetQuantityBoundsAndStockDiff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 5))

	require.NoError(t, c.SetQuantity(ctx, "prod_001", 2))
	assert.Equal(t, 98, f.stock(t, "prod_001"))

	require.NoError(t, c.SetQuantity(ctx, "prod_001", 10))
	assert.Equal(t, 90, f.stock(t, "prod_001"))

	assert.ErrorIs(t, c.SetQuantity(ctx, "prod_001", 0), ErrQuantityRange)
	assert.ErrorIs(t, c.SetQuantity(ctx, "prod_001", 100), ErrQuantityRange)
	assert.ErrorIs(t, c.SetQuantity(ctx, "prod_999", 1), ErrLineNotFound)
}

func TestCouponReplacesNotStacks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_010", 1)) // 6.00, 25% off

	require.NoError(t, c.ApplyCoupon("SAVE10"))
	assert.Equal(t, 0.60, c.Summary().Discount)

	require.NoError(t, c.ApplyCoupon("SAVE20"))
	sum := c.Summary()
	assert.Equal(t, "SAVE20", sum.CouponCode)
	assert.Equal(t, 1.20, sum.Discount)
	assert.InDelta(t, 1.50, sum.ItemDiscount, 1e-9)
	assert.InDelta(t, 3.30, sum.Total, 1e-9)

	assert.ErrorIs(t, c.ApplyCoupon("BOGUS"), ErrInvalidCoupon)
	assert.Equal(t, "SAVE20", c.Summary().CouponCode, "invalid code leaves the active one")

	c.RemoveCoupon()
	assert.InDelta(t, 4.50, c.Summary().Total, 1e-9)
}

func TestClearRestoresAllStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.Add(ctx, "prod_002", 3))
	require.NoError(t, c.ApplyCoupon("SAVE10"))

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.Lines())
	assert.Equal(t, "", c.Summary().CouponCode)
	assert.Equal(t, 100, f.stock(t, "prod_001"))
	assert.Equal(t, 75, f.stock(t, "prod_002"))
}

func TestSaveAndReopen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.ApplyCoupon("WELCOME"))
	require.NoError(t, c.Save(ctx))

	reopened, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	lines := reopened.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "prod_001", lines[0].ProductID)
	assert.Equal(t, "WELCOME", reopened.Summary().CouponCode)
}

func TestOpenFallsBackToDurableBackup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.Save(ctx))

	// The ephemeral slot expiring must not lose the cart.
	require.NoError(t, f.svc.ephemeral.Delete(ctx, "cart:acct-1"))

	reopened, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, reopened.Lines(), 1)
}

func TestSaveRevisionConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	second, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)

	require.NoError(t, first.Add(ctx, "prod_001", 1))
	require.NoError(t, first.Save(ctx))

	require.NoError(t, second.Add(ctx, "prod_002", 1))
	assert.ErrorIs(t, second.Save(ctx), store.ErrConflict)

	// After a reload the loser can save again.
	require.NoError(t, second.Refresh(ctx))
	require.NoError(t, second.Add(ctx, "prod_002", 1))
	require.NoError(t, second.Save(ctx))
}

func TestSyncCartMirrorsToAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	synced := make(map[string][]Line)
	f.svc.SetAccountSync(syncFunc(func(ctx context.Context, accountID string, lines []Line) error {
		synced[accountID] = lines
		return nil
	}))

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.Save(ctx))

	require.Contains(t, synced, "acct-1")
	require.Len(t, synced["acct-1"], 1)
	assert.Equal(t, "prod_001", synced["acct-1"][0].ProductID)
}

type syncFunc func(ctx context.Context, accountID string, lines []Line) error

func (f syncFunc) SyncCart(ctx context.Context, accountID string, lines []Line) error {
	return f(ctx, accountID, lines)
}

func TestAutoSaveFlushesUntilStopped(t *testing.T) {
	cfg := &config.Config{
		Cart: config.CartConfig{
			AutoSaveInterval: 5 * time.Millisecond,
			MinQuantity:      1,
			MaxQuantity:      99,
		},
	}
	cat := catalog.NewServiceWithSeed(store.NewMemory(), 1)
	require.NoError(t, cat.Init(context.Background()))
	svc := NewService(store.NewMemory(), store.NewMemory(), cat, cfg)
	ctx := context.Background()

	c, err := svc.Open(ctx, "acct-1")
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, "prod_001", 1))
	require.NoError(t, c.Save(ctx))

	revision := func() int64 {
		var snap snapshot
		found, err := store.LoadJSON(ctx, svc.ephemeral, activeKey("acct-1"), &snap)
		if err != nil || !found {
			return -1
		}
		return snap.Revision
	}
	initial := revision()

	require.NoError(t, svc.StartAutoSave(ctx, "acct-1"))
	assert.Eventually(t, func() bool { return revision() > initial }, time.Second, 5*time.Millisecond,
		"auto-save should advance the stored revision")

	svc.StopAutoSave("acct-1")
	svc.StopAutoSave("acct-1") // repeated stop is harmless
}

func TestSaveForCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Open(ctx, "acct-1")
	require.NoError(t, err)

	_, err = c.SaveForCheckout(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, c.Add(ctx, "prod_001", 2))
	require.NoError(t, c.ApplyCoupon("SAVE10"))

	order, err := c.SaveForCheckout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", order.AccountID)
	assert.Equal(t, 2.60, order.Summary.Subtotal)

	stored, err := f.svc.CheckoutOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order.Summary.Total, stored.Summary.Total)
}
