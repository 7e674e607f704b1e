package mocks

import (
	"context"
	"io"

	"realestateapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) List(ctx context.Context) ([]model.PropertyDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PropertyDto), args.Error(1)
}

func (m *MockPropertyService) Search(ctx context.Context, f model.PropertyFilter) ([]model.PropertyDto, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PropertyDto), args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, id string) (*model.PropertyDto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyDto), args.Error(1)
}

func (m *MockPropertyService) Create(ctx context.Context, dto model.PropertyDto) (*model.PropertyDto, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyDto), args.Error(1)
}

func (m *MockPropertyService) Update(ctx context.Context, id string, dto model.PropertyDto) (*model.PropertyDto, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyDto), args.Error(1)
}

func (m *MockPropertyService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyService) AddImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64, enabled bool) (*model.PropertyImage, error) {
	args := m.Called(ctx, id, r, filename, contentType, size, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyImage), args.Error(1)
}

func (m *MockPropertyService) ListTraces(ctx context.Context, id string) ([]model.PropertyTrace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PropertyTrace), args.Error(1)
}

func (m *MockPropertyService) AddTrace(ctx context.Context, id string, dto model.TraceDto) (*model.PropertyTrace, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PropertyTrace), args.Error(1)
}
