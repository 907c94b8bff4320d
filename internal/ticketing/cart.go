package ticketing

import (
	"math"
	"sync"
)

// FeeRate is the service fee applied to the cart subtotal.
const FeeRate = 0.18

// CartItem is one seat held in the cart.
type CartItem struct {
	EventID string  `json:"event_id"`
	SeatID  string  `json:"seat_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
}

// Totals is the priced summary of a cart.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Fees     float64 `json:"fees"`
	Total    float64 `json:"total"`
}

// Cart holds selected seats. It is a single shared demo cart, guarded for
// concurrent requests.
type Cart struct {
	mu    sync.Mutex
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts the seat in the cart. Adding a seat already held is a no-op so
// double-clicks do not double-charge.
func (c *Cart) Add(item CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.items {
		if existing.EventID == item.EventID && existing.SeatID == item.SeatID {
			return
		}
	}
	c.items = append(c.items, item)
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// SelectedIDs returns the seat IDs held for the event.
func (c *Cart) SelectedIDs(eventID string) map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]bool)
	for _, item := range c.items {
		if item.EventID == eventID {
			out[item.SeatID] = true
		}
	}
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// CalcTotals sums the cart and applies the service fee, each figure rounded
// to cents.
func (c *Cart) CalcTotals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subtotal float64
	for _, item := range c.items {
		subtotal += item.Price
	}
	subtotal = roundCents(subtotal)
	fees := roundCents(subtotal * FeeRate)
	return Totals{
		Subtotal: subtotal,
		Fees:     fees,
		Total:    roundCents(subtotal + fees),
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
