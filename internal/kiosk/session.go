package kiosk

import (
	"context"
	"sync"
	"time"

	"teahouse-kiosk/internal/cart"
	"teahouse-kiosk/internal/catalog"
	"teahouse-kiosk/internal/discount"
	"teahouse-kiosk/internal/logger"
	"teahouse-kiosk/internal/metrics"
	"teahouse-kiosk/internal/order"
	"teahouse-kiosk/internal/payment"
	"teahouse-kiosk/internal/preference"

	"go.uber.org/zap"
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog     CatalogLoader
	Discounts   discount.Service
	Orders      order.Service
	Payments    payment.Confirmer
	Preferences preference.Store
	Metrics     *metrics.Kiosk
}

// Session owns one device's cart. Network calls run outside the lock; their
// results are applied only if no newer request of the same kind started in
// the meantime.
type Session struct {
	deviceID string
	deps     Deps

	mu             sync.Mutex
	products       []catalog.Product
	catalogGen     uint64
	activeCategory string
	cart           cart.Cart
	discount       *discount.Descriptor
	discountGen    uint64
	notes          string
	submitting     bool
	lastSeen       time.Time
}

func NewSession(deviceID string, deps Deps) *Session {
	if deps.Metrics == nil {
		deps.Metrics = &metrics.Kiosk{}
	}
	return &Session{
		deviceID: deviceID,
		deps:     deps,
		cart:     cart.New(),
		lastSeen: time.Now(),
	}
}

func (s *Session) DeviceID() string {
	return s.deviceID
}

// Catalog returns the listing, loading it on first use.
func (s *Session) Catalog(ctx context.Context) (CatalogView, error) {
	s.mu.Lock()
	if s.products != nil {
		view := s.catalogViewLocked()
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	return s.loadCatalog(ctx, s.deps.Catalog.Load)
}

// RefreshCatalog refetches the product list. It is the manual retry after a
// failed load.
func (s *Session) RefreshCatalog(ctx context.Context) (CatalogView, error) {
	return s.loadCatalog(ctx, s.deps.Catalog.Refresh)
}

func (s *Session) loadCatalog(ctx context.Context, fetch func(context.Context) ([]catalog.Product, error)) (CatalogView, error) {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	s.catalogGen++
	gen := s.catalogGen
	s.mu.Unlock()

	products, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.catalogGen {
		log.Debug("dropping stale catalog result", zap.Uint64("generation", gen))
		s.deps.Metrics.StaleResults.Inc()
		return s.catalogViewLocked(), nil
	}
	if err != nil {
		s.deps.Metrics.CatalogFailures.Inc()
		return CatalogView{}, err
	}

	s.products = catalog.KioskListing(products)
	if s.activeCategory == "" || !contains(catalog.Categories(s.products), s.activeCategory) {
		s.activeCategory = s.initialCategoryLocked(ctx)
	}
	return s.catalogViewLocked(), nil
}

// initialCategoryLocked picks the stored category if it is still on the menu,
// otherwise the first category.
func (s *Session) initialCategoryLocked(ctx context.Context) string {
	categories := catalog.Categories(s.products)
	if len(categories) == 0 {
		return ""
	}
	if s.deps.Preferences != nil {
		prefs, err := s.deps.Preferences.Get(ctx, s.deviceID)
		if err == nil && contains(categories, prefs.ActiveCategory) {
			return prefs.ActiveCategory
		}
	}
	return categories[0]
}

// SelectCategory switches the visible category and remembers it for the device.
func (s *Session) SelectCategory(ctx context.Context, category string) (CatalogView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !contains(catalog.Categories(s.products), category) {
		return CatalogView{}, ErrUnknownCategory
	}
	s.activeCategory = category

	if s.deps.Preferences != nil {
		prefs, err := s.deps.Preferences.Get(ctx, s.deviceID)
		if err == nil {
			prefs.ActiveCategory = category
			err = s.deps.Preferences.Save(ctx, s.deviceID, prefs)
		}
		if err != nil {
			logger.FromCtx(ctx).Warn("failed to remember category", zap.Error(err))
		}
	}
	return s.catalogViewLocked(), nil
}

func (s *Session) catalogViewLocked() CatalogView {
	return CatalogView{
		Groups:         catalog.GroupByCategory(s.products),
		Categories:     catalog.Categories(s.products),
		ActiveCategory: s.activeCategory,
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	var d *discount.Descriptor
	if s.discount != nil {
		copied := *s.discount
		d = &copied
	}
	return View{
		Cart:      s.cart,
		Totals:    order.ComputeTotals(s.cart, s.discount, s.deps.Orders.TaxRate()),
		Discount:  d,
		Notes:     s.notes,
		ItemCount: cart.ItemCount(s.cart),
	}
}

// AddItem puts a product from the current listing into the cart.
func (s *Session) AddItem(ctx context.Context, productID int64, cust cart.Customization) (View, error) {
	if _, err := s.Catalog(ctx); err != nil {
		return View{}, err
	}
	return s.mutate(func() error {
		p, ok := s.productLocked(productID)
		if !ok {
			return ErrUnknownProduct
		}
		s.cart = cart.AddItem(s.cart, p, cust)
		logger.FromCtx(ctx).Info("item added",
			zap.Int64("product_id", productID),
			zap.String("size", string(cust.Size)),
		)
		return nil
	})
}

func (s *Session) EditItem(lineItemID string, cust cart.Customization) (View, error) {
	return s.mutate(func() error {
		s.cart = cart.EditItem(s.cart, lineItemID, cust)
		return nil
	})
}

func (s *Session) AdjustQuantity(lineItemID string, delta int) (View, error) {
	return s.mutate(func() error {
		s.cart = cart.AdjustQuantity(s.cart, lineItemID, delta)
		return nil
	})
}

func (s *Session) RemoveItem(lineItemID string) (View, error) {
	return s.mutate(func() error {
		s.cart = cart.RemoveItem(s.cart, lineItemID)
		return nil
	})
}

func (s *Session) SetNotes(notes string) (View, error) {
	return s.mutate(func() error {
		s.notes = notes
		return nil
	})
}

// ApplyDiscount validates a code and attaches it to the order, replacing any
// code already applied. A rejection leaves the previous discount in place.
func (s *Session) ApplyDiscount(ctx context.Context, code string) (View, error) {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return View{}, ErrSubmissionInProgress
	}
	s.discountGen++
	gen := s.discountGen
	s.mu.Unlock()

	d, err := s.deps.Discounts.Apply(ctx, code)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.discountGen {
		log.Debug("dropping stale discount result", zap.Uint64("generation", gen))
		s.deps.Metrics.StaleResults.Inc()
		return s.viewLocked(), nil
	}
	if err != nil {
		s.deps.Metrics.DiscountRejections.Inc()
		return s.viewLocked(), err
	}

	s.discount = &d
	s.deps.Metrics.DiscountsApplied.Inc()
	return s.viewLocked(), nil
}

// ClearDiscount removes the applied code and supersedes any check in flight.
func (s *Session) ClearDiscount() (View, error) {
	return s.mutate(func() error {
		s.discountGen++
		s.discount = nil
		return nil
	})
}

// Checkout confirms payment and submits the order. At most one checkout runs
// per session. On failure the cart is left exactly as it was.
func (s *Session) Checkout(ctx context.Context, method order.PaymentMethod) (*CheckoutResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("payment_method", string(method)))
	timer := metrics.StartTimer()

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		log.Warn("checkout rejected: submission in progress")
		return nil, ErrSubmissionInProgress
	}
	if s.cart.IsEmpty() {
		s.mu.Unlock()
		return nil, order.ErrEmptyCart
	}
	if !method.Valid() {
		s.mu.Unlock()
		return nil, order.ErrInvalidPaymentMethod
	}
	s.submitting = true
	// a discount check still in flight must not change the order being paid for
	s.discountGen++
	params := order.SubmitParams{
		Cart:          s.cart,
		Totals:        order.ComputeTotals(s.cart, s.discount, s.deps.Orders.TaxRate()),
		SpecialNotes:  s.notes,
		PaymentMethod: method,
	}
	s.mu.Unlock()

	log.Info("checkout started", zap.String("total", params.Totals.GrandTotal.StringFixed(2)))

	receipt, err := s.pay(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.deps.Metrics.CheckoutFailures.Inc()
		log.Warn("checkout failed", zap.Error(err), zap.Duration("took", timer.Duration()))
		return nil, err
	}

	s.cart = cart.Clear(s.cart)
	s.notes = ""
	s.discount = nil
	s.discountGen++
	s.deps.Metrics.OrdersSubmitted.Inc()

	log.Info("checkout completed",
		zap.String("order_id", receipt.OrderID),
		zap.Duration("took", timer.Duration()),
	)
	return &CheckoutResult{Receipt: receipt, Totals: params.Totals}, nil
}

func (s *Session) pay(ctx context.Context, params order.SubmitParams) (*order.Receipt, error) {
	if err := s.deps.Payments.Confirm(ctx, params.PaymentMethod, params.Totals.GrandTotal); err != nil {
		s.deps.Metrics.PaymentsDeclined.Inc()
		return nil, err
	}
	return s.deps.Orders.Submit(ctx, params)
}

// Submitting reports whether a checkout is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *Session) mutate(fn func() error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return View{}, ErrSubmissionInProgress
	}
	if err := fn(); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

func (s *Session) productLocked(id int64) (catalog.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// idleSince reports how long the session has been untouched. A session in the
// middle of a checkout is never idle.
func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return 0
	}
	return now.Sub(s.lastSeen)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
