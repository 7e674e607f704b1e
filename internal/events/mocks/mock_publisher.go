package mocks

import (
	"context"

	"realestateapi/internal/events"

	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPropertyEvent(ctx context.Context, action events.Action, propertyID string) error {
	args := m.Called(ctx, action, propertyID)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
