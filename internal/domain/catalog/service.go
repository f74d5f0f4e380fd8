// internal/domain/catalog/service.go
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dailybasket/storefront/internal/store"
)

const (
	productsKey   = "products"
	categoriesKey = "categories"
)

// ErrProductNotFound is returned when a product id does not exist.
var ErrProductNotFound = fmt.Errorf("product not found")

// Service handles catalog business logic
type Service struct {
	store store.Store
	rng   *rand.Rand
	mu    sync.Mutex
}

// NewService creates a new catalog service
func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewServiceWithSeed creates a catalog service whose randomized listings
// are reproducible for a given seed.
func NewServiceWithSeed(st store.Store, seed int64) *Service {
	return &Service{
		store: st,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Init seeds the catalog slots when they are empty or unreadable.
func (s *Service) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var products []Product
	found, err := store.LoadJSON(ctx, s.store, productsKey, &products)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if !found || len(products) == 0 {
		if err := store.SetJSON(ctx, s.store, productsKey, defaultProducts()); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	var categories []Category
	found, err = store.LoadJSON(ctx, s.store, categoriesKey, &categories)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if !found || len(categories) == 0 {
		if err := store.SetJSON(ctx, s.store, categoriesKey, defaultCategories()); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	return nil
}

func (s *Service) loadProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	found, err := store.LoadJSON(ctx, s.store, productsKey, &products)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	if !found {
		return []Product{}, nil
	}
	return products, nil
}

func (s *Service) saveProducts(ctx context.Context, products []Product) error {
	if err := store.SetJSON(ctx, s.store, productsKey, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

// All returns every product in the catalog.
func (s *Service) All(ctx context.Context) ([]Product, error) {
	return s.loadProducts(ctx)
}

// Categories returns the category list.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	found, err := store.LoadJSON(ctx, s.store, categoriesKey, &categories)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if !found {
		return []Category{}, nil
	}
	return categories, nil
}

// ByID returns a single product by its id.
func (s *Service) ByID(ctx context.Context, id string) (*Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// ByCategory returns all products in a category.
func (s *Service) ByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	matched := []Product{}
	for _, p := range products {
		if p.Category == categoryID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Query searches the catalog with a free-text term and optional filters.
// The term matches name, description, and tags case-insensitively; every
// set filter field must also match.
func (s *Service) Query(ctx context.Context, term string, filter QueryFilter) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := []Product{}
	for _, p := range products {
		if !p.MatchesText(term) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinRating != nil && p.Rating < *filter.MinRating {
			continue
		}
		if filter.OfferOnly && !p.HasOffer() {
			continue
		}
		if filter.InStock && p.Stock <= 0 {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

// AdjustStock applies a stock change to a product. Subtract floors at zero.
func (s *Service) AdjustStock(ctx context.Context, id string, quantity int, mode StockMode) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID != id {
			continue
		}
		switch mode {
		case StockSet:
			products[i].Stock = quantity
		case StockAdd:
			products[i].Stock += quantity
		case StockSubtract:
			products[i].Stock -= quantity
		default:
			return nil, fmt.Errorf("invalid stock mode: %s", mode)
		}
		if products[i].Stock < 0 {
			products[i].Stock = 0
		}
		products[i].UpdatedAt = time.Now().UTC()
		if err := s.saveProducts(ctx, products); err != nil {
			return nil, err
		}
		updated := products[i]
		return &updated, nil
	}

	return nil, ErrProductNotFound
}

// Featured returns up to 8 products rated 4.5 or higher, best first.
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	featured := []Product{}
	for _, p := range products {
		if p.Rating >= 4.5 {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Rating > featured[j].Rating
	})
	return limitProducts(featured, 8), nil
}

// Discounted returns up to 10 products with an active offer, deepest
// discount first.
func (s *Service) Discounted(ctx context.Context) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	discounted := []Product{}
	for _, p := range products {
		if p.HasOffer() {
			discounted = append(discounted, p)
		}
	}
	sort.SliceStable(discounted, func(i, j int) bool {
		return discounted[i].OfferPercent() > discounted[j].OfferPercent()
	})
	return limitProducts(discounted, 10), nil
}

// Related returns up to 4 products sharing the given product's category
// or at least one tag, in randomized order.
func (s *Service) Related(ctx context.Context, id string) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	var subject *Product
	for i := range products {
		if products[i].ID == id {
			subject = &products[i]
			break
		}
	}
	if subject == nil {
		return nil, ErrProductNotFound
	}

	related := []Product{}
	for _, p := range products {
		if p.ID == subject.ID {
			continue
		}
		if p.Category == subject.Category || p.SharesTag(subject) {
			related = append(related, p)
		}
	}
	s.shuffle(related)
	return limitProducts(related, 4), nil
}

// BestSelling returns up to 10 products in randomized order.
func (s *Service) BestSelling(ctx context.Context) ([]Product, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.shuffle(products)
	return limitProducts(products, 10), nil
}

// Stats computes catalog-wide totals and the per-category distribution.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalProducts:     len(products),
		TotalCategories:   len(categories),
		CategoryBreakdown: make(map[string]CategoryBreakdown),
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	counts := make(map[string]int)
	var priceSum, ratingSum float64
	for _, p := range products {
		priceSum += p.Price
		ratingSum += p.Rating
		stats.TotalStock += p.Stock
		if p.HasOffer() {
			stats.ProductsWithOffers++
		}
		counts[p.Category]++
	}

	if len(products) > 0 {
		stats.AveragePrice = priceSum / float64(len(products))
		stats.AverageRating = ratingSum / float64(len(products))
	}

	for categoryID, count := range counts {
		breakdown := CategoryBreakdown{
			Name:  categoryNames[categoryID],
			Count: count,
		}
		if len(products) > 0 {
			breakdown.Percentage = float64(count) / float64(len(products)) * 100
		}
		stats.CategoryBreakdown[categoryID] = breakdown
	}

	return stats, nil
}

// ExportCSV renders the catalog as CSV for the admin export download.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Name", "Category", "Price", "Currency", "Unit", "Stock", "Rating", "Offer"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.ID,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			p.Currency,
			p.Unit,
			strconv.Itoa(p.Stock),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			p.Offer,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportJSON renders the catalog as indented JSON.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal products: %w", err)
	}
	return data, nil
}

func (s *Service) shuffle(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
}

func limitProducts(products []Product, limit int) []Product {
	if len(products) > limit {
		return products[:limit]
	}
	return products
}
