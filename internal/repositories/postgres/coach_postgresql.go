package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories"
)

type coachRepository struct {
	db *gorm.DB
}

// NewCoachRepository creates a gorm-backed repository. The database enforces
// email uniqueness through the index on coaches.email, so two racing creates
// cannot both commit.
func NewCoachRepository(db *gorm.DB) (repositories.CoachRepository, error) {
	if err := db.AutoMigrate(&models.Coach{}); err != nil {
		return nil, fmt.Errorf("migrate coaches table: %w", err)
	}
	return &coachRepository{db: db}, nil
}

func (r *coachRepository) List(ctx context.Context) ([]models.Coach, error) {
	var coaches []models.Coach
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&coaches).Error; err != nil {
		return nil, r.handleDBError(err, "list coaches")
	}
	return coaches, nil
}

func (r *coachRepository) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	var coach models.Coach
	if err := r.db.WithContext(ctx).
		First(&coach, "id = ?", id).Error; err != nil {
		return nil, r.handleDBError(err, "get coach by id")
	}
	return &coach, nil
}

func (r *coachRepository) Create(ctx context.Context, coach *models.Coach) error {
	if err := r.db.WithContext(ctx).Create(coach).Error; err != nil {
		return r.handleDBError(err, "create coach")
	}
	return nil
}

func (r *coachRepository) Update(ctx context.Context, coach *models.Coach) error {
	result := r.db.WithContext(ctx).
		Model(&models.Coach{}).
		Where("id = ?", coach.ID).
		Updates(map[string]interface{}{
			"name":     coach.Name,
			"email":    coach.Email,
			"category": coach.Category,
			"rating":   coach.Rating,
			"status":   coach.Status,
		})
	if result.Error != nil {
		return r.handleDBError(result.Error, "update coach")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *coachRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Coach{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDBError(result.Error, "delete coach")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *coachRepository) FindByEmail(ctx context.Context, email string) (*models.Coach, error) {
	var coach models.Coach
	if err := r.db.WithContext(ctx).
		First(&coach, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, r.handleDBError(err, "find coach by email")
	}
	return &coach, nil
}

func (r *coachRepository) handleDBError(err error, operation string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
