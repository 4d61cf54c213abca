package services

import (
	"errors"
	"testing"
	"time"

	"food-storefront/models"
)

func newTestAuth(t *testing.T) (*Auth, *time.Time) {
	t.Helper()
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	th := NewLoginThrottle()
	th.now = func() time.Time { return clock }
	return NewAuth(newTestDirectory(t), th), &clock
}

func TestLogin(t *testing.T) {
	a, _ := newTestAuth(t)
	s := &Session{}

	acc, err := a.Login(s, "Hamadk", "123456")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	cur, ok := s.Current()
	if !ok || cur.ID != acc.ID || s.State() != Authenticated {
		t.Errorf("session = %+v, %v; want Hamadk", cur, ok)
	}

	a.Logout(s)
	if s.State() != Anonymous {
		t.Error("Logout should leave the session anonymous")
	}
}

func TestLoginFailuresLeaveSessionUnchanged(t *testing.T) {
	tests := []struct {
		name               string
		username, password string
		want               error
	}{
		{"empty username", "", "123456", ErrMissingFields},
		{"empty password", "Hamadk", "", ErrMissingFields},
		{"bad password", "Salma", "nope", ErrInvalidCredentials},
		{"unknown user", "Ghost", "123456", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAuth(t)
			s := &Session{}
			s.Login(mustAccount(t, a, 3))

			_, err := a.Login(s, tt.username, tt.password)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			cur, ok := s.Current()
			if !ok || cur.Username != "Majed" {
				t.Errorf("session changed to %+v", cur)
			}
		})
	}
}

func mustAccount(t *testing.T, a *Auth, id int64) models.UserAccount {
	t.Helper()
	acc, err := a.Directory().Get(id)
	if err != nil {
		t.Fatalf("Get(%d): %v", id, err)
	}
	return acc
}

func TestLoginThrottled(t *testing.T) {
	a, clock := newTestAuth(t)
	s := &Session{}

	if _, err := a.Login(s, "Farah", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("first attempt: %v", err)
	}
	_, err := a.Login(s, "Farah", "123456")
	var te *ThrottledError
	if !errors.As(err, &te) || !errors.Is(err, ErrLoginThrottled) {
		t.Fatalf("attempt within cooldown: err = %v, want ThrottledError", err)
	}
	if te.WaitSeconds != 2 {
		t.Errorf("WaitSeconds = %d, want 2", te.WaitSeconds)
	}
	if s.State() != Anonymous {
		t.Error("throttled login must not authenticate")
	}

	*clock = clock.Add(2 * time.Second)
	if _, err := a.Login(s, "Farah", "123456"); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestSignupThenLogin(t *testing.T) {
	a, _ := newTestAuth(t)
	if _, err := a.Signup(Signup{Username: "Noura", FullName: "Noura A", Email: "n@example.com", Password: "secret"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	s := &Session{}
	acc, err := a.Login(s, "Noura", "secret")
	if err != nil {
		t.Fatalf("Login after signup: %v", err)
	}
	if len(acc.Orders) != 0 {
		t.Errorf("new account orders = %v, want none", acc.Orders)
	}
}

func TestUpdateProfile(t *testing.T) {
	a, _ := newTestAuth(t)
	s := &Session{}

	if _, err := a.UpdateProfile(s, ProfileUpdate{FullName: "x", Email: "y"}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous update: err = %v, want ErrNotAuthenticated", err)
	}

	if _, err := a.Login(s, "Salma", "123456"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	upd := ProfileUpdate{FullName: "Salma T", Email: "salma@new.example.com", Phone: "1", Address: "2", Image: "photo-file-id"}
	if _, err := a.UpdateProfile(s, upd); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	cur, _ := s.Current()
	stored, _ := a.Directory().Get(2)
	for _, acc := range []struct {
		where string
		name  string
		image string
		user  string
	}{
		{"session", cur.FullName, cur.Image, cur.Username},
		{"directory", stored.FullName, stored.Image, stored.Username},
	} {
		if acc.name != "Salma T" || acc.image != "photo-file-id" || acc.user != "Salma" {
			t.Errorf("%s not updated: name=%q image=%q user=%q", acc.where, acc.name, acc.image, acc.user)
		}
	}
	if len(stored.Orders) != 1 {
		t.Errorf("profile edit dropped orders: %+v", stored.Orders)
	}

	if _, err := a.UpdateProfile(s, ProfileUpdate{FullName: " ", Email: "e"}); !errors.Is(err, ErrMissingFields) {
		t.Errorf("blank name: err = %v, want ErrMissingFields", err)
	}
}

func TestAuthDeleteOrder(t *testing.T) {
	a, _ := newTestAuth(t)
	s := &Session{}
	if err := a.DeleteOrder(s, 1); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("anonymous: err = %v, want ErrNotAuthenticated", err)
	}
	if _, err := a.Login(s, "Hamadk", "123456"); err != nil {
		t.Fatal(err)
	}
	if err := a.DeleteOrder(s, 2); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}
	cur, _ := s.Current()
	if len(cur.Orders) != 1 || cur.Orders[0].ID != 1 {
		t.Errorf("orders = %+v, want only order 1", cur.Orders)
	}
}
