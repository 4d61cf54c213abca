package services

import (
	"errors"
	"math/rand"
	"testing"

	"food-storefront/models"

	"github.com/shopspring/decimal"
)

func menuItem(id, price string) models.MenuItem {
	return models.MenuItem{ID: id, Name: "item " + id, Price: decimal.RequireFromString(price)}
}

func TestCartIncreaseDecreaseScenario(t *testing.T) {
	c := NewCart()
	c.Increase("item1")
	c.Increase("item1")
	if q := c.Quantity("item1"); q != 2 {
		t.Fatalf("after two increases: quantity = %d, want 2", q)
	}
	c.Decrease("item1")
	if q := c.Quantity("item1"); q != 1 {
		t.Fatalf("after one decrease: quantity = %d, want 1", q)
	}
	c.Decrease("item1")
	if c.Contains("item1") {
		t.Error("item1 should be absent after reaching zero")
	}
	if !c.Total().IsZero() {
		t.Errorf("Total() = %s, want 0", c.Total())
	}
	if len(c.Lines()) != 0 {
		t.Errorf("Lines() = %v, want none", c.Lines())
	}
}

func TestCartTotal(t *testing.T) {
	c := NewCart()
	if !c.Total().IsZero() {
		t.Fatalf("empty cart total = %s, want 0", c.Total())
	}
	c.Add(menuItem("a", "12.99"), "r1", "Pasta Paradise")
	c.Add(menuItem("b", "5.99"), "r1", "Pasta Paradise")
	c.Add(menuItem("b", "5.99"), "r1", "Pasta Paradise")
	if got := c.Total().StringFixed(2); got != "24.97" {
		t.Errorf("Total() = %s, want 24.97", got)
	}
	if n := c.ItemCount(); n != 3 {
		t.Errorf("ItemCount() = %d, want 3", n)
	}
	lines := c.Lines()
	if len(lines) != 2 || lines[0].Item.ID != "a" || lines[1].Item.ID != "b" {
		t.Errorf("Lines() order = %+v, want a then b", lines)
	}
	if got := lines[1].Subtotal().StringFixed(2); got != "11.98" {
		t.Errorf("line b subtotal = %s, want 11.98", got)
	}
}

func TestCartDecreaseAbsentIsNoop(t *testing.T) {
	c := NewCart()
	c.Add(menuItem("a", "1.00"), "r1", "R")
	if q := c.Decrease("missing"); q != 0 {
		t.Errorf("Decrease(missing) = %d, want 0", q)
	}
	if c.Quantity("a") != 1 || c.ItemCount() != 1 || c.RestaurantID != "r1" {
		t.Errorf("cart changed after decreasing an absent item: %+v", c.Lines())
	}
}

func TestCartRemove(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"present", "a"},
		{"absent", "zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			for i := 0; i < 5; i++ {
				c.Add(menuItem("a", "2.50"), "r1", "R")
			}
			c.Remove(tt.id)
			if c.Contains(tt.id) {
				t.Errorf("%s still in quantities", tt.id)
			}
			if _, ok := c.items[tt.id]; ok {
				t.Errorf("%s still in item records", tt.id)
			}
		})
	}
}

func TestCartRestaurantScope(t *testing.T) {
	c := NewCart()
	c.Add(menuItem("a", "1.00"), "r1", "Wok Express")
	c.Add(menuItem("b", "1.00"), "r2", "Taco Town")
	if c.RestaurantID != "r1" {
		t.Errorf("RestaurantID = %q, want first restaurant r1", c.RestaurantID)
	}
	c.Remove("a")
	c.Remove("b")
	if c.RestaurantID != "" || c.RestaurantName != "" {
		t.Errorf("empty cart should forget its restaurant, got %q/%q", c.RestaurantID, c.RestaurantName)
	}
	c.Add(menuItem("b", "1.00"), "r2", "Taco Town")
	c.Clear()
	if !c.IsEmpty() || c.RestaurantID != "" {
		t.Error("Clear should empty the cart")
	}
}

func TestCartIncreaseThenAddKeepsRecord(t *testing.T) {
	c := NewCart()
	c.Increase("a")
	c.Add(menuItem("a", "3.00"), "r1", "R")
	if q := c.Quantity("a"); q != 2 {
		t.Errorf("quantity = %d, want 2", q)
	}
	if got := c.Total().StringFixed(2); got != "6.00" {
		t.Errorf("Total() = %s, want 6.00", got)
	}
}

// Random increase/decrease sequences never produce a negative or zero line
// and keep quantities and item records in lock-step.
func TestCartRandomSequences(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ids := []string{"a", "b", "c"}
	prices := map[string]string{"a": "1.25", "b": "4.00", "c": "0.99"}

	for run := 0; run < 200; run++ {
		c := NewCart()
		for step := 0; step < 50; step++ {
			id := ids[r.Intn(len(ids))]
			switch r.Intn(4) {
			case 0:
				c.Add(menuItem(id, prices[id]), "r1", "R")
			case 1:
				c.Increase(id)
			case 2, 3:
				c.Decrease(id)
			}

			if len(c.quantities) != len(c.items) {
				t.Fatalf("run %d step %d: %d quantities vs %d items", run, step, len(c.quantities), len(c.items))
			}
			want := decimal.Zero
			for k, q := range c.quantities {
				if q <= 0 {
					t.Fatalf("run %d step %d: %s has quantity %d", run, step, k, q)
				}
				if _, ok := c.items[k]; !ok {
					t.Fatalf("run %d step %d: %s has no item record", run, step, k)
				}
				want = want.Add(c.items[k].Price.Mul(decimal.NewFromInt(int64(q))))
			}
			if !c.Total().Equal(want) {
				t.Fatalf("run %d step %d: Total() = %s, want %s", run, step, c.Total(), want)
			}
		}
	}
}

func TestCheckout(t *testing.T) {
	if err := Checkout(NewCart()); !errors.Is(err, ErrCartEmpty) {
		t.Errorf("Checkout(empty) = %v, want ErrCartEmpty", err)
	}
	c := NewCart()
	c.Add(menuItem("a", "1.00"), "r1", "R")
	if err := Checkout(c); !errors.Is(err, ErrCheckoutUnavailable) {
		t.Errorf("Checkout = %v, want ErrCheckoutUnavailable", err)
	}
}
