package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/dailybasket/storefront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewServiceWithSeed(store.NewMemory(), 1)
	require.NoError(t, svc.Init(context.Background()))
	return svc
}

func TestInitSeedsOnce(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := NewServiceWithSeed(mem, 1)
	require.NoError(t, svc.Init(ctx))

	_, err := svc.AdjustStock(ctx, "prod_001", 5, StockSet)
	require.NoError(t, err)

	// A second Init must not reset existing data.
	require.NoError(t, svc.Init(ctx))
	p, err := svc.ByID(ctx, "prod_001")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestByIDNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ByID(context.Background(), "prod_999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestQueryTextAndFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	results, err := svc.Query(ctx, "apple", QueryFilter{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "prod_001", results[0].ID)

	// Tag matches count too.
	results, err = svc.Query(ctx, "organic", QueryFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(results))
	for _, p := range results {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "prod_001")
	assert.Contains(t, ids, "prod_020")

	minPrice, maxPrice := 1.0, 2.0
	results, err = svc.Query(ctx, "", QueryFilter{
		Category: "fruits",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	require.NoError(t, err)
	for _, p := range results {
		assert.Equal(t, "fruits", p.Category)
		assert.GreaterOrEqual(t, p.Price, minPrice)
		assert.LessOrEqual(t, p.Price, maxPrice)
	}

	results, err = svc.Query(ctx, "", QueryFilter{OfferOnly: true})
	require.NoError(t, err)
	for _, p := range results {
		assert.True(t, p.HasOffer())
	}
}

func TestAdjustStockModes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.AdjustStock(ctx, "prod_001", 50, StockSet)
	require.NoError(t, err)
	assert.Equal(t, 50, p.Stock)

	p, err = svc.AdjustStock(ctx, "prod_001", 10, StockAdd)
	require.NoError(t, err)
	assert.Equal(t, 60, p.Stock)

	p, err = svc.AdjustStock(ctx, "prod_001", 100, StockSubtract)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock, "subtract floors at zero")

	_, err = svc.AdjustStock(ctx, "prod_001", 1, StockMode("divide"))
	assert.Error(t, err)

	_, err = svc.AdjustStock(ctx, "prod_999", 1, StockSet)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFeatured(t *testing.T) {
	svc := newTestService(t)

	featured, err := svc.Featured(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, featured)
	assert.LessOrEqual(t, len(featured), 8)
	for i, p := range featured {
		assert.GreaterOrEqual(t, p.Rating, 4.5)
		if i > 0 {
			assert.GreaterOrEqual(t, featured[i-1].Rating, p.Rating)
		}
	}
}

func TestDiscounted(t *testing.T) {
	svc := newTestService(t)

	discounted, err := svc.Discounted(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, discounted)
	assert.LessOrEqual(t, len(discounted), 10)
	for i, p := range discounted {
		assert.True(t, p.HasOffer())
		if i > 0 {
			assert.GreaterOrEqual(t, discounted[i-1].OfferPercent(), p.OfferPercent())
		}
	}
	assert.Equal(t, "prod_013", discounted[0].ID, "50% offer ranks first")
}

func TestRelatedExcludesSelf(t *testing.T) {
	svc := newTestService(t)

	related, err := svc.Related(context.Background(), "prod_001")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(related), 4)
	require.NotEmpty(t, related)

	subject, err := svc.ByID(context.Background(), "prod_001")
	require.NoError(t, err)
	for _, p := range related {
		assert.NotEqual(t, "prod_001", p.ID)
		assert.True(t, p.Category == subject.Category || p.SharesTag(subject))
	}
}

func TestRelatedSeededOrderIsStable(t *testing.T) {
	ctx := context.Background()

	first := newListing(t, ctx, 42)
	second := newListing(t, ctx, 42)
	assert.Equal(t, first, second, "same seed yields same ordering")
}

func newListing(t *testing.T, ctx context.Context, seed int64) []string {
	t.Helper()
	svc := NewServiceWithSeed(store.NewMemory(), seed)
	require.NoError(t, svc.Init(ctx))
	related, err := svc.Related(ctx, "prod_001")
	require.NoError(t, err)
	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestBestSelling(t *testing.T) {
	svc := newTestService(t)

	best, err := svc.BestSelling(context.Background())
	require.NoError(t, err)
	assert.Len(t, best, 10)
}

func TestStats(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, stats.TotalProducts)
	assert.Equal(t, 12, stats.TotalCategories)
	assert.Greater(t, stats.AveragePrice, 0.0)
	assert.Greater(t, stats.AverageRating, 0.0)
	assert.Greater(t, stats.TotalStock, 0)
	assert.Equal(t, 12, stats.ProductsWithOffers)

	fruits, ok := stats.CategoryBreakdown["fruits"]
	require.True(t, ok)
	assert.Equal(t, "Fruits & Vegetables", fruits.Name)
	assert.Equal(t, 7, fruits.Count)
	assert.InDelta(t, 35.0, fruits.Percentage, 0.001)
}

func TestExportCSV(t *testing.T) {
	svc := newTestService(t)

	data, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 21)
	assert.Equal(t, "ID,Name,Category,Price,Currency,Unit,Stock,Rating,Offer", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "prod_001,Fresh Apples,fruits,1.30,USD,1 KG,100,4.5,10%"))
}

func TestOfferPercent(t *testing.T) {
	p := Product{Offer: "25%"}
	assert.Equal(t, 25.0, p.OfferPercent())
	assert.Equal(t, 0.0, (&Product{}).OfferPercent())
	assert.Equal(t, 0.0, (&Product{Offer: "half off"}).OfferPercent())
}
