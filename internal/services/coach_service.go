package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coachdesk/coach-service/internal/cache"
	"github.com/coachdesk/coach-service/internal/events"
	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/repositories"
	"github.com/coachdesk/coach-service/internal/validator"
)

const listCacheKey = "list"

type coachService struct {
	repo      repositories.CoachRepository
	cache     *cache.CacheHelper
	bus       *events.Bus
	logger    *slog.Logger
	validator *validator.Validator
	cacheTTL  time.Duration
}

func NewCoachService(repo repositories.CoachRepository, cacheHelper *cache.CacheHelper, bus *events.Bus, logger *slog.Logger, v *validator.Validator, cacheTTL time.Duration) CoachService {
	return &coachService{
		repo:      repo,
		cache:     cacheHelper,
		bus:       bus,
		logger:    logger,
		validator: v,
		cacheTTL:  cacheTTL,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *coachService) List(ctx context.Context) ([]models.Coach, error) {
	// Try cache first
	var cached []models.Coach
	if err := s.cache.Get(ctx, listCacheKey, &cached); err == nil {
		return cached, nil
	}

	coaches, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches: %w", err)
	}

	if err := s.cache.Set(ctx, listCacheKey, coaches, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache coach list", "error", err)
	}

	return coaches, nil
}

func (s *coachService) GetByID(ctx context.Context, id string) (*models.Coach, error) {
	coach, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}
	return coach, nil
}

func (s *coachService) Create(ctx context.Context, req *CreateCoachRequest) (*models.Coach, error) {
	s.logger.InfoContext(ctx, "Creating coach", "email", req.Email, "category", req.Category)

	// Validate request
	if errs := s.validator.ValidateCoachCreate(req); len(errs) > 0 {
		return nil, errs
	}

	// Check email uniqueness (case-insensitive)
	if err := s.checkEmailUnique(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	coach := &models.Coach{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Category:  req.Category,
		Rating:    *req.Rating,
		Status:    models.CoachStatus(req.Status),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, coach); err != nil {
		return nil, fmt.Errorf("failed to create coach: %w", err)
	}

	s.invalidateListCache(ctx)
	s.bus.Publish(ctx, events.EventCoachCreated, coach)
	s.logger.InfoContext(ctx, "Coach created successfully", "coach_id", coach.ID)

	return coach, nil
}

func (s *coachService) Update(ctx context.Context, id string, req *UpdateCoachRequest) (*models.Coach, error) {
	s.logger.InfoContext(ctx, "Updating coach", "coach_id", id)

	// Validate only the fields present in the request
	if errs := s.validator.ValidateCoachUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	coach, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}

	// The uniqueness check only runs when the email changes; a coach keeping
	// its own address always passes.
	if req.Email != nil {
		if err := s.checkEmailUnique(ctx, *req.Email, coach.ID); err != nil {
			return nil, err
		}
		coach.Email = *req.Email
	}
	if req.Name != nil {
		coach.Name = *req.Name
	}
	if req.Category != nil {
		coach.Category = *req.Category
	}
	if req.Rating != nil {
		coach.Rating = *req.Rating
	}
	if req.Status != nil {
		coach.Status = models.CoachStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, coach); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to update coach: %w", err)
	}

	s.invalidateListCache(ctx)
	s.bus.Publish(ctx, events.EventCoachUpdated, coach)
	s.logger.InfoContext(ctx, "Coach updated successfully", "coach_id", coach.ID)

	return coach, nil
}

func (s *coachService) Delete(ctx context.Context, id string) (*DeleteCoachResponse, error) {
	s.logger.InfoContext(ctx, "Deleting coach", "coach_id", id)

	coach, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to delete coach: %w", err)
	}

	s.invalidateListCache(ctx)
	s.bus.Publish(ctx, events.EventCoachDeleted, coach)
	s.logger.InfoContext(ctx, "Coach deleted successfully", "coach_id", id)

	return &DeleteCoachResponse{Message: "coach deleted successfully"}, nil
}

// ===== HEALTH =====

func (s *coachService) HealthCheck(ctx context.Context) error {
	if _, err := s.repo.List(ctx); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// ===== HELPERS =====

// checkEmailUnique returns a field-level validation error when another coach
// already uses the address. selfID exempts the record being updated.
func (s *coachService) checkEmailUnique(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return validator.ValidationErrors{{
		Field:   "email",
		Message: "is already in use by another coach",
		Value:   email,
		Rule:    "unique_email",
	}}
}

func (s *coachService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate coach list cache", "error", err)
	}
}
