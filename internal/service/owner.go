package service

import (
	"context"

	"realestateapi/internal/mapper"
	"realestateapi/internal/model"
	"realestateapi/internal/repository"
)

// OwnerService exposes read access to property owners.
type OwnerService interface {
	List(ctx context.Context) ([]model.OwnerDto, error)
	Get(ctx context.Context, id string) (*model.OwnerDto, error)
}

type ownerService struct {
	repo repository.OwnerRepository
}

func NewOwnerService(repo repository.OwnerRepository) OwnerService {
	return &ownerService{repo: repo}
}

func (s *ownerService) List(ctx context.Context) ([]model.OwnerDto, error) {
	owners, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToOwnerDtos(owners), nil
}

func (s *ownerService) Get(ctx context.Context, id string) (*model.OwnerDto, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	dto := mapper.ToOwnerDto(*o)
	return &dto, nil
}
