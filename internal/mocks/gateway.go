package mocks

import (
	"context"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of onboarding.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchProfile(ctx context.Context, userID string) (*onboarding.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Profile), args.Error(1)
}

func (m *MockGateway) UpsertProfile(ctx context.Context, p onboarding.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
