package repositories

import (
	"context"
	"errors"

	"github.com/coachdesk/coach-service/internal/models"
)

// ErrNotFound is returned by repositories when no coach matches the given id.
var ErrNotFound = errors.New("coach not found")

// IsNotFoundError reports whether err is a repository not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CoachRepository is the durable store for the coach collection. List returns
// records in insertion order; every mutating call persists the full collection
// before returning.
type CoachRepository interface {
	List(ctx context.Context) ([]models.Coach, error)
	GetByID(ctx context.Context, id string) (*models.Coach, error)
	Create(ctx context.Context, coach *models.Coach) error
	Update(ctx context.Context, coach *models.Coach) error
	Delete(ctx context.Context, id string) error

	// FindByEmail matches case-insensitively and returns ErrNotFound when no
	// record carries the address.
	FindByEmail(ctx context.Context, email string) (*models.Coach, error)
}
