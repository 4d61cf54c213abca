package catalogstub

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
)

// Embed the fixtures so `food-storefront catalog-stub` works regardless of
// the current working directory.
//
//go:embed fixtures/*.json
var fixturesFS embed.FS

// record keeps fixture fields as raw JSON so numbers are served exactly as written.
type record map[string]json.RawMessage

func (r record) id() string {
	var id string
	if raw, ok := r["_id"]; ok {
		_ = json.Unmarshal(raw, &id)
	}
	return id
}

// Store is the read-only catalog served by the stub.
type Store struct {
	categories  []record
	restaurants []record
	byID        map[string]record
	items       map[string][]record // restaurant id -> menu
	itemByID    map[string]record
}

// Load reads the embedded fixtures.
func Load() (*Store, error) {
	sub, err := fs.Sub(fixturesFS, "fixtures")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// LoadFS reads categories.json, restaurants.json and items.json from fsys.
func LoadFS(fsys fs.FS) (*Store, error) {
	s := &Store{
		byID:     make(map[string]record),
		items:    make(map[string][]record),
		itemByID: make(map[string]record),
	}
	if err := readFixture(fsys, "categories.json", &s.categories); err != nil {
		return nil, err
	}
	if err := readFixture(fsys, "restaurants.json", &s.restaurants); err != nil {
		return nil, err
	}
	if err := readFixture(fsys, "items.json", &s.items); err != nil {
		return nil, err
	}

	for _, r := range s.restaurants {
		s.byID[r.id()] = r
	}
	for restaurantID, menu := range s.items {
		if _, ok := s.byID[restaurantID]; !ok {
			return nil, fmt.Errorf("items.json: unknown restaurant %s", restaurantID)
		}
		for _, it := range menu {
			s.itemByID[it.id()] = it
		}
	}
	return s, nil
}

func readFixture(fsys fs.FS, name string, dst any) error {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse fixture %s: %w", name, err)
	}
	return nil
}

func (s *Store) allCategories() []record  { return s.categories }
func (s *Store) allRestaurants() []record { return s.restaurants }

func (s *Store) restaurant(id string) (record, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// menu returns the menu of a known restaurant; a restaurant without a menu
// yields an empty list.
func (s *Store) menu(restaurantID string) ([]record, bool) {
	if _, ok := s.byID[restaurantID]; !ok {
		return nil, false
	}
	menu := s.items[restaurantID]
	if menu == nil {
		menu = []record{}
	}
	return menu, true
}

func (s *Store) item(id string) (record, bool) {
	it, ok := s.itemByID[id]
	return it, ok
}
