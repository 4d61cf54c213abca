package services

import (
	"errors"
	"fmt"
	"strings"

	"food-storefront/models"
)

type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type ProfileUpdate struct {
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Phone    string
	Address  string
	Image    string
}

// Auth checks credentials against the directory and drives session transitions.
type Auth struct {
	dir      *Directory
	throttle *LoginThrottle
}

func NewAuth(dir *Directory, throttle *LoginThrottle) *Auth {
	if throttle == nil {
		throttle = NewLoginThrottle()
	}
	return &Auth{dir: dir, throttle: throttle}
}

func (a *Auth) Directory() *Directory { return a.dir }

// Login authenticates username/password and, on success, logs the session in.
// On any failure the session is left as it was.
func (a *Auth) Login(s *Session, username, password string) (models.UserAccount, error) {
	creds := Credentials{Username: strings.TrimSpace(username), Password: password}
	if err := checkRequired(creds); err != nil {
		return models.UserAccount{}, err
	}
	if wait := a.throttle.WaitSeconds(creds.Username); wait > 0 {
		return models.UserAccount{}, &ThrottledError{WaitSeconds: wait}
	}
	account, err := a.dir.FindByCredentials(creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			a.throttle.RecordFailed(creds.Username)
		}
		return models.UserAccount{}, err
	}
	a.throttle.RecordSuccess(creds.Username)
	s.Login(account)
	return account, nil
}

// Signup registers a new account. It does not log in.
func (a *Auth) Signup(in Signup) (models.UserAccount, error) {
	return a.dir.Register(in)
}

func (a *Auth) Logout(s *Session) {
	s.Logout()
}

// UpdateProfile writes the edited fields to the session and to the directory entry.
func (a *Auth) UpdateProfile(s *Session, p ProfileUpdate) (models.UserAccount, error) {
	current, ok := s.Current()
	if !ok {
		return models.UserAccount{}, ErrNotAuthenticated
	}
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	if err := checkRequired(p); err != nil {
		return models.UserAccount{}, err
	}

	current.FullName = p.FullName
	current.Email = p.Email
	current.Phone = p.Phone
	current.Address = p.Address
	current.Image = p.Image

	if err := a.dir.replace(current); err != nil && !errors.Is(err, ErrAccountNotFound) {
		return models.UserAccount{}, err
	}
	if err := s.Update(current); err != nil {
		return models.UserAccount{}, err
	}
	return current, nil
}

// DeleteOrder removes one of the logged-in user's orders.
func (a *Auth) DeleteOrder(s *Session, orderID int64) error {
	current, ok := s.Current()
	if !ok {
		return ErrNotAuthenticated
	}
	return a.dir.DeleteOrder(s, current.ID, orderID)
}

// ThrottledError wraps ErrLoginThrottled with the remaining cooldown.
type ThrottledError struct {
	WaitSeconds int
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%s (%ds)", ErrLoginThrottled, e.WaitSeconds)
}

func (e *ThrottledError) Unwrap() error { return ErrLoginThrottled }
