package services

import (
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"
	"sync"

	"food-storefront/models"

	"golang.org/x/crypto/bcrypt"
)

// SeedAccount pairs an account with its plaintext mock password.
type SeedAccount struct {
	Account  models.UserAccount
	Password string
}

type Signup struct {
	Username string `validate:"required"`
	FullName string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
	Image    string
}

// bcryptMaxBytes is the longest input bcrypt accepts.
const bcryptMaxBytes = 72

// passwordKey is what gets hashed and compared. Longer passwords are reduced
// to their SHA-256 digest so every byte still counts.
func passwordKey(password string) []byte {
	if len(password) <= bcryptMaxBytes {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

type directoryEntry struct {
	account      models.UserAccount
	passwordHash []byte
}

// Directory is the in-memory stand-in for an account backend. Lookups are
// keyed by id and by username; usernames are unique and case-sensitive.
type Directory struct {
	mu         sync.RWMutex
	entries    map[int64]*directoryEntry
	byUsername map[string]int64
	cost       int
}

func NewDirectory(seed []SeedAccount, bcryptCost int) (*Directory, error) {
	d := &Directory{
		entries:    make(map[int64]*directoryEntry),
		byUsername: make(map[string]int64),
		cost:       bcryptCost,
	}
	for _, s := range seed {
		if _, err := d.insert(s.Account, s.Password); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Directory) insert(account models.UserAccount, password string) (models.UserAccount, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordKey(password), d.cost)
	if err != nil {
		return models.UserAccount{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, taken := d.byUsername[account.Username]; taken {
		return models.UserAccount{}, ErrUsernameTaken
	}
	if account.ID == 0 {
		account.ID = d.nextIDLocked()
	}
	if account.Orders == nil {
		account.Orders = []models.Order{}
	}
	d.entries[account.ID] = &directoryEntry{account: account.Clone(), passwordHash: hash}
	d.byUsername[account.Username] = account.ID
	return account.Clone(), nil
}

func (d *Directory) nextIDLocked() int64 {
	var max int64
	for id := range d.entries {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// FindByCredentials returns the account whose username and password match exactly.
func (d *Directory) FindByCredentials(username, password string) (models.UserAccount, error) {
	d.mu.RLock()
	id, ok := d.byUsername[username]
	var e directoryEntry
	if ok {
		e = *d.entries[id]
	}
	d.mu.RUnlock()

	if !ok {
		return models.UserAccount{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(e.passwordHash, passwordKey(password)); err != nil {
		return models.UserAccount{}, ErrInvalidCredentials
	}
	return e.account.Clone(), nil
}

func (d *Directory) UsernameExists(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byUsername[username]
	return ok
}

func (d *Directory) Get(userID int64) (models.UserAccount, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	e, ok := d.entries[userID]
	if !ok {
		return models.UserAccount{}, ErrAccountNotFound
	}
	return e.account.Clone(), nil
}

// Accounts returns every account ordered by id.
func (d *Directory) Accounts() []models.UserAccount {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.UserAccount, 0, len(d.entries))
	for _, e := range d.entries {
		out = append(out, e.account.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Register adds a new account so it can log in right away.
func (d *Directory) Register(in Signup) (models.UserAccount, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)
	if err := checkRequired(in); err != nil {
		return models.UserAccount{}, err
	}
	if d.UsernameExists(in.Username) {
		return models.UserAccount{}, ErrUsernameTaken
	}
	return d.insert(models.UserAccount{
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Image:    in.Image,
	}, in.Password)
}

// replace overwrites the stored account, keeping username and credentials.
func (d *Directory) replace(account models.UserAccount) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[account.ID]
	if !ok {
		return ErrAccountNotFound
	}
	account.Username = e.account.Username
	e.account = account.Clone()
	return nil
}

// DeleteOrder removes orderID from the directory entry of userID and from
// the session when it holds the same user.
func (d *Directory) DeleteOrder(s *Session, userID, orderID int64) error {
	d.mu.Lock()
	e, ok := d.entries[userID]
	if !ok {
		d.mu.Unlock()
		return ErrAccountNotFound
	}
	idx := e.account.OrderIndex(orderID)
	if idx < 0 {
		d.mu.Unlock()
		return ErrOrderNotFound
	}
	orders := append([]models.Order(nil), e.account.Orders[:idx]...)
	e.account.Orders = append(orders, e.account.Orders[idx+1:]...)
	d.mu.Unlock()

	if s == nil {
		return nil
	}
	current, ok := s.Current()
	if !ok || current.ID != userID {
		return nil
	}
	if i := current.OrderIndex(orderID); i >= 0 {
		current.Orders = append(current.Orders[:i], current.Orders[i+1:]...)
		return s.Update(current)
	}
	return nil
}
