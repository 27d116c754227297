// Package client provides an HTTP client for the coach service that keeps an
// in-memory mirror of the collection and answers search and filter queries
// from it locally.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/services"
)

// Client errors
var (
	// ErrNotFound signals an unknown coach id.
	ErrNotFound = errors.New("coach not found")
	// ErrInvalidInput signals a validation rejection; the server message is
	// attached to the returned error.
	ErrInvalidInput = errors.New("invalid input")
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Client mirrors the server-side collection. Mutations update the mirror in
// place after the server confirms them; failed calls leave it untouched.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	coaches []models.Coach
}

// New creates a client against baseURL. An empty baseURL falls back to the
// COACH_API_BASE_URL environment variable, then to http://localhost:3001.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("COACH_API_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Refresh replaces the local mirror with the server's current collection.
func (c *Client) Refresh(ctx context.Context) error {
	var coaches []models.Coach
	if err := c.do(ctx, http.MethodGet, "/coaches", nil, http.StatusOK, &coaches); err != nil {
		return err
	}

	c.mu.Lock()
	c.coaches = coaches
	c.mu.Unlock()
	return nil
}

// Get returns a coach from the local mirror, or ErrNotFound.
func (c *Client) Get(id string) (*models.Coach, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.coaches {
		if c.coaches[i].ID == id {
			coach := c.coaches[i]
			return &coach, nil
		}
	}
	return nil, ErrNotFound
}

// Create delegates to the server and appends the confirmed record locally.
func (c *Client) Create(ctx context.Context, req *services.CreateCoachRequest) (*models.Coach, error) {
	var coach models.Coach
	if err := c.do(ctx, http.MethodPost, "/coaches", req, http.StatusCreated, &coach); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.coaches = append(c.coaches, coach)
	c.mu.Unlock()
	return &coach, nil
}

// Update delegates to the server and replaces the record locally.
func (c *Client) Update(ctx context.Context, id string, req *services.UpdateCoachRequest) (*models.Coach, error) {
	var coach models.Coach
	if err := c.do(ctx, http.MethodPut, "/coaches/"+id, req, http.StatusOK, &coach); err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i := range c.coaches {
		if c.coaches[i].ID == id {
			c.coaches[i] = coach
			break
		}
	}
	c.mu.Unlock()
	return &coach, nil
}

// Delete delegates to the server and removes the record locally.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/coaches/"+id, nil, http.StatusOK, nil); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.coaches {
		if c.coaches[i].ID == id {
			c.coaches = append(c.coaches[:i], c.coaches[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// ToggleStatus flips a coach between active and inactive.
func (c *Client) ToggleStatus(ctx context.Context, id string) (*models.Coach, error) {
	coach, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	status := string(models.ToggledStatus(coach.Status))
	return c.Update(ctx, id, &services.UpdateCoachRequest{Status: &status})
}

// Search returns the coaches whose name or email contains term,
// case-insensitive. An empty term matches everything.
func (c *Client) Search(term string) []models.Coach {
	return c.Filter(term, CategoryAll)
}

// FilterByCategory returns the coaches in category, or the full mirror for
// CategoryAll.
func (c *Client) FilterByCategory(category string) []models.Coach {
	return c.Filter("", category)
}

// Filter composes the search term and category filter with logical AND.
func (c *Client) Filter(term, category string) []models.Coach {
	term = strings.ToLower(term)

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Coach, 0, len(c.coaches))
	for _, coach := range c.coaches {
		if category != CategoryAll && category != "" && coach.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(coach.Name), term) &&
			!strings.Contains(strings.ToLower(coach.Email), term) {
			continue
		}
		out = append(out, coach)
	}
	return out
}

// All returns a copy of the local mirror.
func (c *Client) All() []models.Coach {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Coach, len(c.coaches))
	copy(out, c.coaches)
	return out
}

// do performs one request/response cycle and maps failure statuses to the
// client error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, wantStatus int, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return c.errorFromResponse(resp)
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		if body.Message != "" {
			return fmt.Errorf("%w: %s", ErrInvalidInput, body.Message)
		}
		return ErrInvalidInput
	default:
		if body.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, body.Message)
		}
		return fmt.Errorf("server error (%d)", resp.StatusCode)
	}
}
