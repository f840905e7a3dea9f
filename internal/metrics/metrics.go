package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Kiosk counts what happens at the counter since the process started.
type Kiosk struct {
	OrdersSubmitted    Counter
	CheckoutFailures   Counter
	PaymentsDeclined   Counter
	DiscountsApplied   Counter
	DiscountRejections Counter
	StaleResults       Counter
	CatalogFailures    Counter
}

// Snapshot is a point-in-time copy suitable for JSON.
type Snapshot struct {
	OrdersSubmitted    uint64 `json:"orders_submitted"`
	CheckoutFailures   uint64 `json:"checkout_failures"`
	PaymentsDeclined   uint64 `json:"payments_declined"`
	DiscountsApplied   uint64 `json:"discounts_applied"`
	DiscountRejections uint64 `json:"discount_rejections"`
	StaleResults       uint64 `json:"stale_results"`
	CatalogFailures    uint64 `json:"catalog_failures"`
}

func (k *Kiosk) Snapshot() Snapshot {
	return Snapshot{
		OrdersSubmitted:    k.OrdersSubmitted.Load(),
		CheckoutFailures:   k.CheckoutFailures.Load(),
		PaymentsDeclined:   k.PaymentsDeclined.Load(),
		DiscountsApplied:   k.DiscountsApplied.Load(),
		DiscountRejections: k.DiscountRejections.Load(),
		StaleResults:       k.StaleResults.Load(),
		CatalogFailures:    k.CatalogFailures.Load(),
	}
}
