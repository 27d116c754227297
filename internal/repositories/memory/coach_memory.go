package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories"
)

// CoachRepository keeps the collection in memory. Data is lost on restart.
// Safe for concurrent use; used by tests and the "memory" backend.
type CoachRepository struct {
	mu      sync.RWMutex
	coaches []models.Coach
}

func New() *CoachRepository {
	return &CoachRepository{coaches: []models.Coach{}}
}

func (r *CoachRepository) List(ctx context.Context) ([]models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Coach, len(r.coaches))
	copy(out, r.coaches)
	return out, nil
}

func (r *CoachRepository) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.coaches {
		if r.coaches[i].ID == id {
			c := r.coaches[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *CoachRepository) Create(ctx context.Context, coach *models.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coaches = append(r.coaches, *coach)
	return nil
}

func (r *CoachRepository) Update(ctx context.Context, coach *models.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coaches {
		if r.coaches[i].ID == coach.ID {
			r.coaches[i] = *coach
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *CoachRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.coaches {
		if r.coaches[i].ID == id {
			r.coaches = append(r.coaches[:i], r.coaches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *CoachRepository) FindByEmail(ctx context.Context, email string) (*models.Coach, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.coaches {
		if strings.EqualFold(r.coaches[i].Email, email) {
			c := r.coaches[i]
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}
