package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token              string    `json:"token"`
	UserID             uuid.UUID `json:"user_id"`
	OnboardingComplete bool      `json:"onboarding_complete"`
}

// MealListResponse is returned by GET /meals
type MealListResponse struct {
	Day   string      `json:"day"`
	Meals []MealEntry `json:"meals"`
}

type MealEntry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ServingSize string    `json:"serving_size"`
	Calories    int       `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	EatenAt     time.Time `json:"eaten_at"`
}
