// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dailybasket/storefront/internal/domain/cart"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/store"
)

// ErrEntryNotFound is returned when a product has no wishlist entry.
var ErrEntryNotFound = fmt.Errorf("product not on wishlist")

// AccountSync mirrors saved wishlist entries onto the owning account.
type AccountSync interface {
	SyncWishlist(ctx context.Context, accountID string, entries []Entry) error
}

// Service handles wishlist business logic
type Service struct {
	store    store.Store
	catalog  *catalog.Service
	carts    *cart.Service
	policy   DedupPolicy
	accounts AccountSync
	mu       sync.Mutex
	now      func() time.Time
}

// NewService creates a new wishlist service
func NewService(st store.Store, cat *catalog.Service, carts *cart.Service) *Service {
	return &Service{
		store:   st,
		catalog: cat,
		carts:   carts,
		policy:  DedupByName,
		now:     time.Now,
	}
}

// SetDedupPolicy overrides the duplicate detection policy.
func (s *Service) SetDedupPolicy(policy DedupPolicy) {
	s.policy = policy
}

// SetAccountSync wires the account write-back used on every change.
func (s *Service) SetAccountSync(accounts AccountSync) {
	s.accounts = accounts
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func entriesKey(accountID string) string {
	return "wishlist:" + accountID
}

func (s *Service) load(ctx context.Context, accountID string) ([]Entry, error) {
	var entries []Entry
	if _, err := store.LoadJSON(ctx, s.store, entriesKey(accountID), &entries); err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (s *Service) save(ctx context.Context, accountID string, entries []Entry) error {
	if err := store.SetJSON(ctx, s.store, entriesKey(accountID), entries); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	if s.accounts != nil {
		if err := s.accounts.SyncWishlist(ctx, accountID, entries); err != nil {
			return fmt.Errorf("failed to sync wishlist to account: %w", err)
		}
	}
	return nil
}

// Toggle adds the product to the wishlist, or removes the matching entry
// when the dedup policy says it is already there. It reports whether the
// product ended up on the list.
func (s *Service) Toggle(ctx context.Context, accountID, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.catalog.ByID(ctx, productID)
	if err != nil {
		return false, err
	}

	entries, err := s.load(ctx, accountID)
	if err != nil {
		return false, err
	}

	for i, entry := range entries {
		if s.policy(entry, product) {
			entries = append(entries[:i], entries[i+1:]...)
			return false, s.save(ctx, accountID, entries)
		}
	}

	entries = append(entries, Entry{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Category:  product.Category,
		Offer:     product.Offer,
		AddedAt:   s.now().UTC(),
	})
	return true, s.save(ctx, accountID, entries)
}

// Entries returns the account's wishlist.
func (s *Service) Entries(ctx context.Context, accountID string) ([]Entry, error) {
	return s.load(ctx, accountID)
}

// Contains reports whether the product has an entry, per the dedup policy.
func (s *Service) Contains(ctx context.Context, accountID, productID string) (bool, error) {
	product, err := s.catalog.ByID(ctx, productID)
	if err != nil {
		return false, err
	}
	entries, err := s.load(ctx, accountID)
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if s.policy(entry, product) {
			return true, nil
		}
	}
	return false, nil
}

// Clear empties the account's wishlist.
func (s *Service) Clear(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, accountID, []Entry{})
}

// Summarize aggregates the wishlist totals.
func (s *Service) Summarize(ctx context.Context, accountID string) (*Summary, error) {
	entries, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sum := &Summary{Count: len(entries)}
	for _, entry := range entries {
		sum.TotalValue += entry.Price
	}
	return sum, nil
}

// MoveToCart adds one unit of a wishlisted product to the account's cart.
// The wishlist entry stays so the shopper can buy it again later.
func (s *Service) MoveToCart(ctx context.Context, accountID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx, accountID)
	if err != nil {
		return err
	}
	found := false
	for _, entry := range entries {
		if entry.ProductID == productID {
			found = true
			break
		}
	}
	if !found {
		return ErrEntryNotFound
	}

	c, err := s.carts.Open(ctx, accountID)
	if err != nil {
		return err
	}
	if err := c.Add(ctx, productID, 1); err != nil {
		return err
	}
	return c.Save(ctx)
}
