package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderLine is a line of a past order. Name and price are copied at order time.
type OrderLine struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID             int64       `json:"id"`
	Date           string      `json:"date"`
	RestaurantName string      `json:"restaurantName"`
	Items          []OrderLine `json:"items"`
}

// Total is always derived from the lines.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}

// NewOrder builds an order and checks that statedTotal matches the line sum.
func NewOrder(id int64, date, restaurantName string, items []OrderLine, statedTotal decimal.Decimal) (Order, error) {
	o := Order{
		ID:             id,
		Date:           date,
		RestaurantName: restaurantName,
		Items:          append([]OrderLine(nil), items...),
	}
	if !o.Total().Equal(statedTotal) {
		return Order{}, fmt.Errorf("order %d: stated total %s does not match line sum %s", id, statedTotal, o.Total())
	}
	return o, nil
}
