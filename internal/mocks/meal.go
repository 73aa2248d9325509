package mocks

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/nutrilens/backend/internal/models"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockMealService is a mock implementation of the MealService interface
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) Analyze(ctx context.Context, userID uuid.UUID, upload service.MealUpload) (*types.MealAnalysis, error) {
	args := m.Called(ctx, userID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealAnalysis), args.Error(1)
}

func (m *MockMealService) ListMeals(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.Meal, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

// MockDashboardService is a mock implementation of the DashboardService interface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context, userID uuid.UUID, day time.Time) (*types.Dashboard, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Dashboard), args.Error(1)
}

// MockPhotoStore is a mock implementation of service.PhotoStore
type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}
