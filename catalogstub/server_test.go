package catalogstub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
)

const (
	pastaParadiseID = "65f0c2b0e1b2c3d4e5f61001"
	pizzaCornerID   = "65f0c2b0e1b2c3d4e5f61006"
	tiramisuID      = "65f0c3c0e1b2c3d4e5f62003"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	srv := httptest.NewServer(Handler(store, zap.NewNop().Sugar()))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s: Content-Type = %q", url, ct)
	}
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantLen    int // -1 for objects
	}{
		{"categories", "/api/category", http.StatusOK, 5},
		{"restaurants", "/api/resturant", http.StatusOK, 6},
		{"restaurant", "/api/resturant/" + pastaParadiseID, http.StatusOK, -1},
		{"restaurant items", "/api/resturant/" + pastaParadiseID + "/items", http.StatusOK, 3},
		{"restaurant without menu", "/api/resturant/" + pizzaCornerID + "/items", http.StatusOK, 0},
		{"item", "/api/item/" + tiramisuID, http.StatusOK, -1},
		{"unknown restaurant", "/api/resturant/nope", http.StatusNotFound, -1},
		{"unknown restaurant items", "/api/resturant/nope/items", http.StatusNotFound, -1},
		{"unknown item", "/api/item/nope", http.StatusNotFound, -1},
		{"unknown route", "/api/restaurant", http.StatusNotFound, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body json.RawMessage
			status := getJSON(t, srv.URL+tt.path, &body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantLen >= 0 {
				var list []map[string]any
				if err := json.Unmarshal(body, &list); err != nil {
					t.Fatalf("body is not a list: %s", body)
				}
				if len(list) != tt.wantLen {
					t.Errorf("len = %d, want %d", len(list), tt.wantLen)
				}
			}
		})
	}
}

func TestNotFoundBody(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]string
	if status := getJSON(t, srv.URL+"/api/item/missing", &body); status != http.StatusNotFound {
		t.Fatalf("status = %d", status)
	}
	if body["error"] != "item not found" {
		t.Errorf("error = %q, want item not found", body["error"])
	}
}

func TestItemPriceIsNumber(t *testing.T) {
	srv := newTestServer(t)
	var item map[string]any
	getJSON(t, srv.URL+"/api/item/"+tiramisuID, &item)
	if price, ok := item["price"].(float64); !ok || price != 6.99 {
		t.Errorf("price = %#v, want number 6.99", item["price"])
	}
	if item["_id"] != tiramisuID {
		t.Errorf("_id = %v", item["_id"])
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]any
	if status := getJSON(t, srv.URL+"/health", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestLoadFSRejectsOrphanMenu(t *testing.T) {
	fsys := fstest.MapFS{
		"categories.json":  {Data: []byte(`[]`)},
		"restaurants.json": {Data: []byte(`[{"_id":"r1","name":"R"}]`)},
		"items.json":       {Data: []byte(`{"r2":[{"_id":"i1","name":"I","price":1}]}`)},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Error("expected error for a menu of an unknown restaurant")
	}

	fsys["items.json"] = &fstest.MapFile{Data: []byte(`{"r1":[{"_id":"i1","name":"I","price":1}]}`)}
	s, err := LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if _, ok := s.item("i1"); !ok {
		t.Error("item i1 not indexed")
	}
}
