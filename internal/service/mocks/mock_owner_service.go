package mocks

import (
	"context"

	"realestateapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockOwnerService struct {
	mock.Mock
}

func (m *MockOwnerService) List(ctx context.Context) ([]model.OwnerDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OwnerDto), args.Error(1)
}

func (m *MockOwnerService) Get(ctx context.Context, id string) (*model.OwnerDto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OwnerDto), args.Error(1)
}
