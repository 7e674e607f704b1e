// Package mapper converts between domain entities and client-facing DTOs.
package mapper

import "realestateapi/internal/model"

// ToPropertyDto flattens a property. The owner is left nil; callers embed it when they have one.
func ToPropertyDto(p model.Property) model.PropertyDto {
	return model.PropertyDto{
		ID:           p.ID,
		IDOwner:      p.IDOwner,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		Image:        FirstEnabledImage(p.Images),
	}
}

// ToPropertyDtos maps a slice, always returning a non-nil slice.
func ToPropertyDtos(ps []model.Property) []model.PropertyDto {
	out := make([]model.PropertyDto, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToPropertyDto(p))
	}
	return out
}

// FirstEnabledImage returns the file of the first enabled image in stored order.
func FirstEnabledImage(images []model.PropertyImage) *string {
	for _, img := range images {
		if img.Enabled {
			file := img.File
			return &file
		}
	}
	return nil
}

// ToProperty builds a new property from a DTO. Images and traces start empty.
func ToProperty(dto model.PropertyDto) model.Property {
	p := model.Property{
		Images: []model.PropertyImage{},
		Traces: []model.PropertyTrace{},
	}
	ApplyPropertyDto(&p, dto)
	return p
}

// ApplyPropertyDto overlays the scalar fields of dto onto dst.
// The id, images and traces of dst are never touched.
func ApplyPropertyDto(dst *model.Property, dto model.PropertyDto) {
	dst.Name = dto.Name
	dst.Address = dto.Address
	dst.Price = dto.Price
	dst.CodeInternal = dto.CodeInternal
	dst.Year = dto.Year
	dst.IDOwner = dto.IDOwner
}

func ToOwnerDto(o model.Owner) model.OwnerDto {
	return model.OwnerDto{
		ID:       o.ID,
		Name:     o.Name,
		Address:  o.Address,
		Photo:    o.Photo,
		Birthday: o.Birthday,
	}
}

func ToOwnerDtos(os []model.Owner) []model.OwnerDto {
	out := make([]model.OwnerDto, 0, len(os))
	for _, o := range os {
		out = append(out, ToOwnerDto(o))
	}
	return out
}

// ToTrace builds a trace for the given property from its payload.
func ToTrace(propertyID string, dto model.TraceDto) model.PropertyTrace {
	return model.PropertyTrace{
		ID:         model.NewID(),
		DateSale:   dto.DateSale,
		Name:       dto.Name,
		Value:      dto.Value,
		Tax:        dto.Tax,
		IDProperty: propertyID,
	}
}
