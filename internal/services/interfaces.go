package services

import (
	"context"
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/coachdesk/coach-service/internal/models"
	"github.com/coachdesk/coach-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateCoachRequest = validator.CoachCreateRequest
type UpdateCoachRequest = validator.CoachUpdateRequest

type DeleteCoachResponse struct {
	Message string `json:"message"`
}

// ===== SERVICE ERRORS =====

var (
	// ErrCoachNotFound signals an unknown coach id.
	ErrCoachNotFound = errors.New("coach not found")
)

// ===== SERVICE INTERFACES =====

type CoachService interface {
	// Core CRUD operations
	List(ctx context.Context) ([]models.Coach, error)
	GetByID(ctx context.Context, id string) (*models.Coach, error)
	Create(ctx context.Context, req *CreateCoachRequest) (*models.Coach, error)
	Update(ctx context.Context, id string, req *UpdateCoachRequest) (*models.Coach, error)
	Delete(ctx context.Context, id string) (*DeleteCoachResponse, error)

	// Export
	ExportXLSX(ctx context.Context) (*excelize.File, error)

	// Health
	HealthCheck(ctx context.Context) error
}
