package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coachdesk/coach-service/internal/models"
)

// ValidationError represents a single field validation failure
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator handles request validation for coach records
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator with coach business rules registered
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates any struct against its validate tags
func (v *Validator) Validate(s interface{}) ValidationErrors {
	var errors ValidationErrors

	err := v.validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errors = append(errors, ValidationError{
				Field:   strings.ToLower(err.Field()),
				Message: v.getErrorMessage(err),
				Value:   err.Value(),
				Rule:    err.Tag(),
			})
		}
	}

	return errors
}

// ValidateCoachCreate validates coach creation requests
func (v *Validator) ValidateCoachCreate(req *CoachCreateRequest) ValidationErrors {
	return v.Validate(req)
}

// ValidateCoachUpdate validates coach update requests. Only fields present in
// the request are checked.
func (v *Validator) ValidateCoachUpdate(req *CoachUpdateRequest) ValidationErrors {
	return v.Validate(req)
}

// registerBusinessRules registers custom coach rule validators
func (v *Validator) registerBusinessRules() {
	// Rating validation (1-5 inclusive)
	v.validate.RegisterValidation("coach_rating", func(fl validator.FieldLevel) bool {
		rating := fl.Field().Float()
		return rating >= 1 && rating <= 5
	})

	// Status validation (active/inactive)
	v.validate.RegisterValidation("coach_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []models.CoachStatus{models.StatusActive, models.StatusInactive}
		for _, vs := range validStatuses {
			if models.CoachStatus(status) == vs {
				return true
			}
		}
		return false
	})

	// Name validation (non-blank, max 200 characters)
	v.validate.RegisterValidation("coach_name", func(fl validator.FieldLevel) bool {
		name := strings.TrimSpace(fl.Field().String())
		return len(name) >= 1 && len(name) <= 200
	})
}

// getErrorMessage returns user-friendly error messages
func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "coach_rating":
		return "must be between 1 and 5"
	case "coach_status":
		return "must be either active or inactive"
	case "coach_name":
		return "must be between 1 and 200 characters"
	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
