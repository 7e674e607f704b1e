package mocks

import (
	"context"

	"realestateapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) GetAll(ctx context.Context) ([]model.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Owner), args.Error(1)
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id string) (*model.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Owner), args.Error(1)
}

func (m *MockOwnerRepository) CreateMany(ctx context.Context, owners []model.Owner) error {
	args := m.Called(ctx, owners)
	return args.Error(0)
}
