// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongodb, postgres) inside this directory.
package repository

import (
	"context"
	"errors"

	"realestateapi/internal/model"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// PropertyRepository defines data access for properties.
// No business logic here, strictly persistence operations. Every call is a store round trip.
type PropertyRepository interface {
	// GetAll returns every property in ascending id order.
	GetAll(ctx context.Context) ([]model.Property, error)

	// GetByID returns a property by its id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Property, error)

	// GetFiltered returns the properties matching f. Name matches name or address,
	// address is only used when name is empty, and prices are inclusive bounds.
	// Skip/limit is applied only when both Page and PageSize are positive.
	GetFiltered(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)

	// Create inserts a property. The caller assigns the id.
	Create(ctx context.Context, p *model.Property) error

	// CreateMany inserts properties in one batch.
	CreateMany(ctx context.Context, ps []model.Property) error

	// Update replaces the stored property with the same id, or returns ErrNotFound.
	Update(ctx context.Context, p *model.Property) error

	// Delete removes a property by id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored properties.
	Count(ctx context.Context) (int64, error)
}

// OwnerRepository defines data access for owners.
type OwnerRepository interface {
	GetAll(ctx context.Context) ([]model.Owner, error)
	GetByID(ctx context.Context, id string) (*model.Owner, error)
	CreateMany(ctx context.Context, owners []model.Owner) error
}
