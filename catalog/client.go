package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"food-storefront/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client reads the remote catalog. No retries and no caching: every call is
// one GET, and a failure is returned to the caller as is.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  *zap.SugaredLogger
}

func New(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		logger:  logger,
	}
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	const op = "list categories"
	var wire []wireCategory
	if err := c.get(ctx, op, "/api/category", &wire); err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(wire))
	for i, w := range wire {
		cat := w.model()
		if err := check(op, i, cat); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	const op = "list restaurants"
	var wire []wireRestaurant
	if err := c.get(ctx, op, "/api/resturant", &wire); err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, 0, len(wire))
	for i, w := range wire {
		r := w.model()
		if err := check(op, i, r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (models.Restaurant, error) {
	const op = "get restaurant"
	if id == "" {
		return models.Restaurant{}, &FetchError{Op: op, Err: ErrNotFound}
	}
	var wire wireRestaurant
	if err := c.get(ctx, op, "/api/resturant/"+url.PathEscape(id), &wire); err != nil {
		return models.Restaurant{}, err
	}
	r := wire.model()
	if err := check(op, -1, r); err != nil {
		return models.Restaurant{}, err
	}
	return r, nil
}

func (c *Client) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	const op = "list menu items"
	if restaurantID == "" {
		return nil, &FetchError{Op: op, Err: ErrNotFound}
	}
	var wire []wireItem
	if err := c.get(ctx, op, "/api/resturant/"+url.PathEscape(restaurantID)+"/items", &wire); err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, 0, len(wire))
	for i, w := range wire {
		it := w.model()
		if err := check(op, i, it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (c *Client) GetItemDetails(ctx context.Context, itemID string) (models.MenuItem, error) {
	const op = "get item"
	if itemID == "" {
		return models.MenuItem{}, &FetchError{Op: op, Err: ErrNotFound}
	}
	var wire wireItem
	if err := c.get(ctx, op, "/api/item/"+url.PathEscape(itemID), &wire); err != nil {
		return models.MenuItem{}, err
	}
	it := wire.model()
	if err := check(op, -1, it); err != nil {
		return models.MenuItem{}, err
	}
	return it, nil
}

// RestaurantsInCategory returns the category's embedded restaurants when the
// API sent them, otherwise all restaurants filtered by categoryId.
func (c *Client) RestaurantsInCategory(ctx context.Context, categoryID string) ([]models.Restaurant, error) {
	cats, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, cat := range cats {
		if cat.ID == categoryID && len(cat.Restaurants) > 0 {
			return cat.Restaurants, nil
		}
	}

	all, err := c.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, 0, len(all))
	for _, r := range all {
		if r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op, path string, dst any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &FetchError{Op: op, URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("catalog request failed", "op", op, "path", path, "request_id", reqID, "error", err)
		return &FetchError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debugw("catalog request",
		"op", op,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", reqID,
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warnw("catalog bad status", "op", op, "path", path, "status", resp.StatusCode, "request_id", reqID)
		drain(resp.Body)
		return &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// drain reads what is left of body so the connection can be reused.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
}
