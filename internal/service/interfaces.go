package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/pageza/nutrilens/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IProfileService is the persistence gateway for submitted profiles
type IProfileService interface {
	onboarding.Gateway
	OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error)
}

// IOnboardingService drives a user's onboarding session across requests
type IOnboardingService interface {
	Start(ctx context.Context, userID string) (onboarding.Session, error)
	Current(ctx context.Context, userID string) (onboarding.Session, error)
	ApplyStep(ctx context.Context, userID string, step onboarding.Step) (onboarding.Session, error)
	Submit(ctx context.Context, userID string) (onboarding.Session, error)
	Discard(ctx context.Context, userID string) error
	Profile(ctx context.Context, userID string) (*onboarding.Profile, error)
	EditProfile(ctx context.Context, userID string, patch onboarding.Patch) (onboarding.Session, error)
}

// IMealService defines the interface for meal photo analysis and the food log
type IMealService interface {
	Analyze(ctx context.Context, userID uuid.UUID, upload MealUpload) (*types.MealAnalysis, error)
	ListMeals(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Meal, error)
}

// IDashboardService defines the interface for the daily nutrition summary
type IDashboardService interface {
	Dashboard(ctx context.Context, userID uuid.UUID, day time.Time) (*types.Dashboard, error)
}

// PhotoStore keeps uploaded meal photos and hands out URLs to them
type PhotoStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// MealAnalyzer turns a meal photo into a nutrition breakdown
type MealAnalyzer interface {
	Analyze(ctx context.Context, upload MealUpload) (*types.MealAnalysis, error)
}
