package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories"
)

// CoachRepository persists the whole collection as a single JSON array on
// disk. Every mutation reads the file, applies the change in memory and
// rewrites the file; the mutex serializes mutating calls so concurrent
// requests cannot lose each other's writes.
type CoachRepository struct {
	mu   sync.RWMutex
	path string
}

// New creates a file-backed repository at path, creating the parent
// directory when it does not exist yet.
func New(path string) (*CoachRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &CoachRepository{path: path}, nil
}

// load reads the full collection. A missing file is an empty collection, not
// an error.
func (r *CoachRepository) load() ([]models.Coach, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Coach{}, nil
		}
		return nil, err
	}
	var coaches []models.Coach
	if err := json.Unmarshal(data, &coaches); err != nil {
		return nil, err
	}
	return coaches, nil
}

func (r *CoachRepository) save(coaches []models.Coach) error {
	b, err := json.MarshalIndent(coaches, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *CoachRepository) List(ctx context.Context) ([]models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load()
}

func (r *CoachRepository) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coaches, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range coaches {
		if coaches[i].ID == id {
			return &coaches[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coaches, err := r.load()
	if err != nil {
		return err
	}
	coaches = append(coaches, *coach)
	return r.save(coaches)
}

func (r *CoachRepository) Update(ctx context.Context, coach *models.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coaches, err := r.load()
	if err != nil {
		return err
	}
	for i := range coaches {
		if coaches[i].ID == coach.ID {
			coaches[i] = *coach
			return r.save(coaches)
		}
	}
	return repositories.ErrNotFound
}

func (r *CoachRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coaches, err := r.load()
	if err != nil {
		return err
	}
	for i := range coaches {
		if coaches[i].ID == id {
			coaches = append(coaches[:i], coaches[i+1:]...)
			return r.save(coaches)
		}
	}
	return repositories.ErrNotFound
}

func (r *CoachRepository) FindByEmail(ctx context.Context, email string) (*models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coaches, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range coaches {
		if strings.EqualFold(coaches[i].Email, email) {
			return &coaches[i], nil
		}
	}
	return nil, repositories.ErrNotFound
}
