package validator

// CoachCreateRequest represents the request structure for creating coaches
type CoachCreateRequest struct {
	Name     string   `json:"name" validate:"required,coach_name"`
	Email    string   `json:"email" validate:"required,email"`
	Category string   `json:"category" validate:"required"`
	Rating   *float64 `json:"rating" validate:"required,coach_rating"`
	Status   string   `json:"status" validate:"required,coach_status"`
}

// CoachUpdateRequest represents the request structure for updating coaches.
// Every field is optional; a nil field leaves the stored value unchanged.
type CoachUpdateRequest struct {
	Name     *string  `json:"name" validate:"omitempty,coach_name"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Rating   *float64 `json:"rating" validate:"omitempty,coach_rating"`
	Status   *string  `json:"status" validate:"omitempty,coach_status"`
}
