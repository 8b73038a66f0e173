package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/wanderhub/wanderhub/internal/notification"
)

// Item is a product line in the cart. Price is in minor currency units.
type Item struct {
	ID       string
	Name     string
	Price    int64
	Image    string
	Quantity int
}

// Cart holds selected-but-unpurchased items. At most one entry exists
// per product id; adds merge into the existing entry. Insertion order
// is preserved.
type Cart struct {
	mu       sync.Mutex
	items    []Item
	notifier notification.Notifier
}

// New builds an empty cart. The notifier receives an add confirmation
// for every successful Add; it may be nil.
func New(notifier notification.Notifier) *Cart {
	return &Cart{notifier: notifier}
}

// Add puts quantity units of item in the cart, merging with an existing
// entry for the same id. A non-positive quantity defaults to 1.
func (c *Cart) Add(ctx context.Context, item Item, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	c.mu.Lock()
	merged := false
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		c.items = append(c.items, item)
	}
	c.mu.Unlock()

	if c.notifier != nil {
		_ = c.notifier.Send(ctx, notification.Message{
			Kind: notification.KindCartItemAdded,
			Body: fmt.Sprintf("%s added to cart", item.Name),
		})
	}
}

// Remove drops the entry with the given id. Removing an absent id is a
// no-op.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the entry's quantity directly. A quantity of zero or
// less removes the entry.
func (c *Cart) SetQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(id)
		return
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Count sums all quantities. It is recomputed on every call rather than
// maintained incrementally.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Items returns a snapshot of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make([]Item, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}
