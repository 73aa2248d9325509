package mocks

import (
	"context"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/stretchr/testify/mock"
)

// MockOnboardingService is a mock implementation of the OnboardingService interface
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) Start(ctx context.Context, userID string) (onboarding.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(onboarding.Session), args.Error(1)
}

func (m *MockOnboardingService) Current(ctx context.Context, userID string) (onboarding.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(onboarding.Session), args.Error(1)
}

func (m *MockOnboardingService) ApplyStep(ctx context.Context, userID string, step onboarding.Step) (onboarding.Session, error) {
	args := m.Called(ctx, userID, step)
	return args.Get(0).(onboarding.Session), args.Error(1)
}

func (m *MockOnboardingService) Submit(ctx context.Context, userID string) (onboarding.Session, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(onboarding.Session), args.Error(1)
}

func (m *MockOnboardingService) Discard(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockOnboardingService) Profile(ctx context.Context, userID string) (*onboarding.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Profile), args.Error(1)
}

func (m *MockOnboardingService) EditProfile(ctx context.Context, userID string, patch onboarding.Patch) (onboarding.Session, error) {
	args := m.Called(ctx, userID, patch)
	return args.Get(0).(onboarding.Session), args.Error(1)
}
