package services

import "errors"

var (
	ErrMissingFields       = errors.New("please fill in all fields")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrLoginThrottled      = errors.New("too many failed attempts, try again later")
	ErrNotAuthenticated    = errors.New("not logged in")
	ErrAccountNotFound     = errors.New("account not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCheckoutUnavailable = errors.New("checkout is not available yet")
)
