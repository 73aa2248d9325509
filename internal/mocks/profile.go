package mocks

import (
	"context"

	"github.com/google/uuid"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	MockGateway
}

func (m *MockProfileService) OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
