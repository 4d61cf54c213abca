package models

import "github.com/shopspring/decimal"

// MenuItem is a dish as returned by the catalog. Treated as immutable once fetched.
type MenuItem struct {
	ID          string          `json:"_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

type Category struct {
	ID          string       `json:"_id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Image       string       `json:"image"`
	Restaurants []Restaurant `json:"restaurants,omitempty" validate:"dive"`
}

type Restaurant struct {
	ID           string  `json:"_id" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Image        string  `json:"image"`
	CategoryID   string  `json:"categoryId"`
	DeliveryTime string  `json:"deliveryTime"`
	Rating       float64 `json:"rating"`
}
