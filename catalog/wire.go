package catalog

import (
	"errors"
	"fmt"

	"food-storefront/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// wireID accepts either "_id" (what the live API sends) or "id".
type wireID struct {
	MongoID string `json:"_id"`
	PlainID string `json:"id"`
}

func (w wireID) value() string {
	if w.MongoID != "" {
		return w.MongoID
	}
	return w.PlainID
}

type wireRestaurant struct {
	wireID
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	CategoryID   string  `json:"categoryId"`
	DeliveryTime string  `json:"deliveryTime"`
	Rating       float64 `json:"rating"`
}

func (w wireRestaurant) model() models.Restaurant {
	return models.Restaurant{
		ID:           w.value(),
		Name:         w.Name,
		Image:        w.Image,
		CategoryID:   w.CategoryID,
		DeliveryTime: w.DeliveryTime,
		Rating:       w.Rating,
	}
}

type wireCategory struct {
	wireID
	Name        string           `json:"name"`
	Image       string           `json:"image"`
	Restaurants []wireRestaurant `json:"restaurants"`
}

func (w wireCategory) model() models.Category {
	c := models.Category{ID: w.value(), Name: w.Name, Image: w.Image}
	for _, r := range w.Restaurants {
		c.Restaurants = append(c.Restaurants, r.model())
	}
	return c
}

type wireItem struct {
	wireID
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

func (w wireItem) model() models.MenuItem {
	return models.MenuItem{
		ID:          w.value(),
		Name:        w.Name,
		Description: w.Description,
		Price:       w.Price,
		Image:       w.Image,
	}
}

var errNegativePrice = errors.New("negative price")

// check validates a decoded record; the index is reported for list elements.
func check(op string, idx int, v any) error {
	if err := validate.Struct(v); err != nil {
		if idx >= 0 {
			err = fmt.Errorf("record %d: %w", idx, err)
		}
		return &DecodeError{Op: op, Err: err}
	}
	if it, ok := v.(models.MenuItem); ok && it.Price.IsNegative() {
		err := fmt.Errorf("item %s: %w", it.ID, errNegativePrice)
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}
