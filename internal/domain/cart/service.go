// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dailybasket/storefront/internal/config"
	"github.com/dailybasket/storefront/internal/domain/catalog"
	"github.com/dailybasket/storefront/internal/store"
)

const checkoutKey = "checkout:cart"

var (
	// ErrOutOfStock is returned when the catalog cannot cover a quantity.
	ErrOutOfStock = fmt.Errorf("insufficient stock")
	// ErrInvalidCoupon is returned for unknown coupon codes.
	ErrInvalidCoupon = fmt.Errorf("invalid coupon code")
	// ErrLineNotFound is returned when the cart has no line for a product.
	ErrLineNotFound = fmt.Errorf("product not in cart")
	// ErrQuantityRange is returned for quantities outside the allowed bounds.
	ErrQuantityRange = fmt.Errorf("quantity out of range")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = fmt.Errorf("cart is empty")
)

// AccountSync mirrors saved cart lines onto the owning account record.
type AccountSync interface {
	SyncCart(ctx context.Context, accountID string, lines []Line) error
}

// Service handles cart business logic. Carts live in an ephemeral store
// slot per account with a durable backup slot behind it.
type Service struct {
	ephemeral store.Store
	durable   store.Store
	catalog   *catalog.Service
	cfg       *config.Config
	accounts  AccountSync
	now       func() time.Time

	mu       sync.Mutex
	autosave map[string]context.CancelFunc
}

// NewService creates a new cart service
func NewService(ephemeral, durable store.Store, cat *catalog.Service, cfg *config.Config) *Service {
	return &Service{
		ephemeral: ephemeral,
		durable:   durable,
		catalog:   cat,
		cfg:       cfg,
		now:       time.Now,
		autosave:  make(map[string]context.CancelFunc),
	}
}

// SetAccountSync wires the account write-back used on every save.
func (s *Service) SetAccountSync(accounts AccountSync) {
	s.accounts = accounts
}

// SetClock overrides the time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func activeKey(accountID string) string {
	return "cart:" + accountID
}

func backupKey(accountID string) string {
	return "cart:backup:" + accountID
}

// Cart is an in-memory working copy of one account's cart. Mutations act
// on the copy; Save persists it and advances the shared revision.
type Cart struct {
	svc       *Service
	accountID string
	mu        sync.Mutex
	lines     []Line
	coupon    string
	revision  int64
}

// Open loads the account's cart, falling back to the durable backup when
// the ephemeral slot is gone.
func (s *Service) Open(ctx context.Context, accountID string) (*Cart, error) {
	var snap snapshot
	found, err := store.LoadJSON(ctx, s.ephemeral, activeKey(accountID), &snap)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		found, err = store.LoadJSON(ctx, s.durable, backupKey(accountID), &snap)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart backup: %w", err)
		}
	}

	c := &Cart{svc: s, accountID: accountID}
	if found {
		c.lines = snap.Lines
		c.coupon = snap.Coupon
		c.revision = snap.Revision
	}
	if c.lines == nil {
		c.lines = []Line{}
	}
	return c, nil
}

// AccountID returns the owning account id.
func (c *Cart) AccountID() string {
	return c.accountID
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Add puts a product in the cart, merging with an existing line. Stock is
// reserved against the catalog immediately.
func (c *Cart) Add(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < c.svc.cfg.Cart.MinQuantity {
		return ErrQuantityRange
	}

	product, err := c.svc.catalog.ByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return ErrOutOfStock
	}

	idx := c.lineIndex(productID)
	newQuantity := quantity
	if idx >= 0 {
		newQuantity += c.lines[idx].Quantity
	}
	if newQuantity > c.svc.cfg.Cart.MaxQuantity {
		return ErrQuantityRange
	}

	if _, err := c.svc.catalog.AdjustStock(ctx, productID, quantity, catalog.StockSubtract); err != nil {
		return err
	}

	if idx >= 0 {
		c.lines[idx].Quantity = newQuantity
	} else {
		c.lines = append(c.lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  quantity,
			Offer:     product.Offer,
			AddedAt:   c.svc.now().UTC(),
		})
	}
	return nil
}

// Remove drops a line and returns its quantity to catalog stock.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.lineIndex(productID)
	if idx < 0 {
		return ErrLineNotFound
	}
	quantity := c.lines[idx].Quantity
	if _, err := c.svc.catalog.AdjustStock(ctx, productID, quantity, catalog.StockAdd); err != nil {
		return err
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return nil
}

// SetQuantity changes a line's quantity within the allowed bounds and
// settles the difference against catalog stock.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < c.svc.cfg.Cart.MinQuantity || quantity > c.svc.cfg.Cart.MaxQuantity {
		return ErrQuantityRange
	}

	idx := c.lineIndex(productID)
	if idx < 0 {
		return ErrLineNotFound
	}

	diff := quantity - c.lines[idx].Quantity
	switch {
	case diff > 0:
		product, err := c.svc.catalog.ByID(ctx, productID)
		if err != nil {
			return err
		}
		if product.Stock < diff {
			return ErrOutOfStock
		}
		if _, err := c.svc.catalog.AdjustStock(ctx, productID, diff, catalog.StockSubtract); err != nil {
			return err
		}
	case diff < 0:
		if _, err := c.svc.catalog.AdjustStock(ctx, productID, -diff, catalog.StockAdd); err != nil {
			return err
		}
	}

	c.lines[idx].Quantity = quantity
	return nil
}

// ApplyCoupon applies a coupon code, replacing any active one.
func (c *Cart) ApplyCoupon(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := Coupons[code]; !ok {
		return ErrInvalidCoupon
	}
	c.coupon = code
	return nil
}

// RemoveCoupon clears the active coupon.
func (c *Cart) RemoveCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coupon = ""
}

// Clear empties the cart, returning all reserved stock to the catalog.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range c.lines {
		if _, err := c.svc.catalog.AdjustStock(ctx, line.ProductID, line.Quantity, catalog.StockAdd); err != nil {
			return err
		}
	}
	c.lines = []Line{}
	c.coupon = ""
	return nil
}

// Summary derives the cart totals.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

func (c *Cart) summaryLocked() Summary {
	sum := Summary{CouponCode: c.coupon, CouponPercent: Coupons[c.coupon]}
	for _, line := range c.lines {
		sum.ItemCount += line.Quantity
		sum.Subtotal += line.LineTotal()
		sum.ItemDiscount += line.LineTotal() * line.OfferPercent() / 100
	}
	sum.Discount = sum.Subtotal * sum.CouponPercent / 100
	sum.Total = sum.Subtotal - sum.ItemDiscount - sum.Discount
	return sum
}

func (c *Cart) lineIndex(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Save persists the cart to the ephemeral slot and its durable backup.
// If another writer advanced the stored revision since this cart was
// opened, Save fails with store.ErrConflict and changes nothing.
func (c *Cart) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stored snapshot
	found, err := store.LoadJSON(ctx, c.svc.ephemeral, activeKey(c.accountID), &stored)
	if err != nil {
		return fmt.Errorf("failed to load cart for save: %w", err)
	}
	if found && stored.Revision != c.revision {
		return store.ErrConflict
	}

	c.revision++
	snap := snapshot{
		AccountID: c.accountID,
		Lines:     c.lines,
		Coupon:    c.coupon,
		Revision:  c.revision,
		SavedAt:   c.svc.now().UTC(),
	}
	if err := store.SetJSON(ctx, c.svc.ephemeral, activeKey(c.accountID), snap); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if err := store.SetJSON(ctx, c.svc.durable, backupKey(c.accountID), snap); err != nil {
		return fmt.Errorf("failed to save cart backup: %w", err)
	}

	if c.svc.accounts != nil {
		if err := c.svc.accounts.SyncCart(ctx, c.accountID, snap.Lines); err != nil {
			return fmt.Errorf("failed to sync cart to account: %w", err)
		}
	}
	return nil
}

// Refresh reloads the cart from storage, discarding local changes. Used
// to recover after a revision conflict.
func (c *Cart) Refresh(ctx context.Context) error {
	fresh, err := c.svc.Open(ctx, c.accountID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = fresh.lines
	c.coupon = fresh.coupon
	c.revision = fresh.revision
	return nil
}

// SaveForCheckout snapshots the cart into the checkout slot.
func (c *Cart) SaveForCheckout(ctx context.Context) (*CheckoutOrder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := CheckoutOrder{
		AccountID: c.accountID,
		Lines:     c.lines,
		Summary:   c.summaryLocked(),
		SavedAt:   c.svc.now().UTC(),
	}
	if err := store.SetJSON(ctx, c.svc.durable, checkoutKey, order); err != nil {
		return nil, fmt.Errorf("failed to save checkout order: %w", err)
	}
	return &order, nil
}

// CheckoutOrder returns the pending checkout snapshot, if any.
func (s *Service) CheckoutOrder(ctx context.Context) (*CheckoutOrder, error) {
	var order CheckoutOrder
	found, err := store.LoadJSON(ctx, s.durable, checkoutKey, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout order: %w", err)
	}
	if !found {
		return nil, store.ErrNotFound
	}
	return &order, nil
}

// StartAutoSave opens the account's cart and flushes it on the configured
// interval until StopAutoSave is called. A running auto-saver for the same
// account is replaced.
func (s *Service) StartAutoSave(ctx context.Context, accountID string) error {
	crt, err := s.Open(ctx, accountID)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if prev, ok := s.autosave[accountID]; ok {
		prev()
	}
	s.autosave[accountID] = cancel
	s.mu.Unlock()

	crt.StartAutoSave(runCtx)
	return nil
}

// StopAutoSave cancels the account's auto-saver, if one is running. Safe
// to call repeatedly.
func (s *Service) StopAutoSave(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cancel, ok := s.autosave[accountID]; ok {
		cancel()
		delete(s.autosave, accountID)
	}
}

// StartAutoSave persists the cart on an interval until the context is
// cancelled. Revision conflicts are logged and the cart reloaded.
func (c *Cart) StartAutoSave(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.svc.cfg.Cart.AutoSaveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.Save(ctx); err != nil {
					if errors.Is(err, store.ErrConflict) {
						logrus.WithField("account_id", c.accountID).Warn("Cart auto-save lost a revision race, reloading")
						if err := c.Refresh(ctx); err != nil {
							logrus.WithError(err).Error("Cart reload failed")
						}
						continue
					}
					logrus.WithError(err).Error("Cart auto-save failed")
				}
			}
		}
	}()
}
