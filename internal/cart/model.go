package cart

import (
	"math"

	"storefront-be/internal/product"
)

// StoredItem is the persisted form of a cart line. Product data is never
// stored; it is resolved from the catalog when the cart is loaded.
type StoredItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartItem pairs a catalog product with a quantity. The product is shared
// with the catalog and never mutated by the cart.
type CartItem struct {
	product  *product.Product
	quantity int
}

func NewCartItem(p *product.Product, quantity int) *CartItem {
	return &CartItem{product: p, quantity: quantity}
}

func (i *CartItem) Product() *product.Product {
	return i.product
}

func (i *CartItem) Quantity() int {
	return i.quantity
}

// SetQuantity replaces the quantity; callers compute increments themselves.
func (i *CartItem) SetQuantity(quantity int) {
	i.quantity = quantity
}

// Cart holds at most one item per product plus the diagnostics of the last
// mutating operation.
type Cart struct {
	items  []*CartItem
	errors []string
}

func NewCart() *Cart {
	return &Cart{items: []*CartItem{}, errors: []string{}}
}

func sameProduct(a, b *product.Product) bool {
	return a.ID == b.ID
}

// AddItem merges quantity into the item for p, creating it when absent.
// The quantity is not checked here: it may end up zero, negative or above
// stock.
func (c *Cart) AddItem(p *product.Product, quantity int) *CartItem {
	for _, item := range c.items {
		if sameProduct(item.product, p) {
			item.product = p
			item.SetQuantity(saturatingAdd(item.quantity, quantity))
			return item
		}
	}

	item := NewCartItem(p, quantity)
	c.items = append(c.items, item)
	return item
}

// saturatingAdd returns a+b clamped to the int range.
func saturatingAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

// RemoveItem drops every item for p. Absent products are a no-op.
func (c *Cart) RemoveItem(p *product.Product) {
	kept := c.items[:0]
	for _, item := range c.items {
		if !sameProduct(item.product, p) {
			kept = append(kept, item)
		}
	}
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = nil
	}
	c.items = kept
}

// Items returns the items in insertion order.
func (c *Cart) Items() []*CartItem {
	out := make([]*CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Errors() []string {
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

// SetErrors replaces the diagnostics list.
func (c *Cart) SetErrors(errs []string) {
	c.errors = make([]string, len(errs))
	copy(c.errors, errs)
}

func (c *Cart) Snapshot() []StoredItem {
	out := make([]StoredItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, StoredItem{ProductID: item.product.ID, Quantity: item.quantity})
	}
	return out
}
