package services

import (
	"food-storefront/models"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	Item     models.MenuItem
	Quantity int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart tracks quantities per menu item together with the item records.
// Invariant: quantities and items always hold the same set of keys, and no
// quantity is ever zero. Not safe for concurrent use.
type Cart struct {
	RestaurantID   string
	RestaurantName string

	quantities map[string]int
	items      map[string]models.MenuItem
	order      []string // first-add order, for stable rendering
}

func NewCart() *Cart {
	return &Cart{
		quantities: make(map[string]int),
		items:      make(map[string]models.MenuItem),
	}
}

// Add records item and increases its quantity by one. The first added item
// fixes the cart's restaurant if none is set yet.
func (c *Cart) Add(item models.MenuItem, restaurantID, restaurantName string) int {
	if c.RestaurantID == "" && len(c.quantities) == 0 {
		c.RestaurantID = restaurantID
		c.RestaurantName = restaurantName
	}
	if _, ok := c.items[item.ID]; !ok {
		c.order = append(c.order, item.ID)
	}
	c.items[item.ID] = item
	c.quantities[item.ID]++
	return c.quantities[item.ID]
}

// Increase bumps the quantity by one. An id with no item record gets a bare
// record carrying only the id (zero price) until Add supplies the real one.
func (c *Cart) Increase(itemID string) int {
	if _, ok := c.items[itemID]; !ok {
		c.items[itemID] = models.MenuItem{ID: itemID}
		c.order = append(c.order, itemID)
	}
	c.quantities[itemID]++
	return c.quantities[itemID]
}

// Decrease lowers the quantity, floored at zero. Reaching zero drops the line.
func (c *Cart) Decrease(itemID string) int {
	q := c.quantities[itemID] - 1
	if q <= 0 {
		c.Remove(itemID)
		return 0
	}
	c.quantities[itemID] = q
	return q
}

// Remove deletes the line whatever its quantity. Absent ids are fine.
func (c *Cart) Remove(itemID string) {
	delete(c.quantities, itemID)
	delete(c.items, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if len(c.quantities) == 0 {
		c.RestaurantID = ""
		c.RestaurantName = ""
	}
}

// Clear empties the cart and forgets its restaurant.
func (c *Cart) Clear() {
	c.quantities = make(map[string]int)
	c.items = make(map[string]models.MenuItem)
	c.order = nil
	c.RestaurantID = ""
	c.RestaurantName = ""
}

func (c *Cart) Quantity(itemID string) int {
	return c.quantities[itemID]
}

func (c *Cart) Contains(itemID string) bool {
	_, ok := c.quantities[itemID]
	return ok
}

func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, CartLine{Item: c.items[id], Quantity: c.quantities[id]})
	}
	return lines
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines() {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the sum of all quantities (the cart badge).
func (c *Cart) ItemCount() int {
	n := 0
	for _, q := range c.quantities {
		n += q
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.quantities) == 0
}

// Checkout is a placeholder: there is no payment or order submission yet.
func Checkout(c *Cart) error {
	if c == nil || c.IsEmpty() {
		return ErrCartEmpty
	}
	return ErrCheckoutUnavailable
}
