// Package seed loads a small demo catalogue into an empty store.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"realestateapi/internal/model"
	"realestateapi/internal/repository"
)

// Run inserts the demo owners and properties when no property exists yet.
// Two instances starting together against an empty store may both seed.
func Run(ctx context.Context, properties repository.PropertyRepository, owners repository.OwnerRepository, log *slog.Logger) error {
	log = log.With("component", "seed")

	n, err := properties.Count(ctx)
	if err != nil {
		return fmt.Errorf("count properties: %w", err)
	}
	if n > 0 {
		log.InfoContext(ctx, "seed_skip", "existing_properties", n)
		return nil
	}

	os := Owners()
	if err := owners.CreateMany(ctx, os); err != nil {
		return fmt.Errorf("insert owners: %w", err)
	}

	ps := Properties(os)
	if err := properties.CreateMany(ctx, ps); err != nil {
		return fmt.Errorf("insert properties: %w", err)
	}

	log.InfoContext(ctx, "seed_success", "owners", len(os), "properties", len(ps))
	return nil
}

// Owners returns the demo owners with fresh ids.
func Owners() []model.Owner {
	return []model.Owner{
		{
			ID:       model.NewID(),
			Name:     "John Perez",
			Address:  "Main Ave 123, City",
			Photo:    "https://i.pravatar.cc/150?img=1",
			Birthday: date(1980, time.May, 15),
		},
		{
			ID:       model.NewID(),
			Name:     "Maria Gonzalez",
			Address:  "Secondary St 456",
			Photo:    "https://i.pravatar.cc/150?img=2",
			Birthday: date(1975, time.August, 22),
		},
		{
			ID:       model.NewID(),
			Name:     "Carlos Rodriguez",
			Address:  "Central Plaza 789",
			Photo:    "https://i.pravatar.cc/150?img=3",
			Birthday: date(1985, time.December, 10),
		},
	}
}

// Properties returns the demo properties owned by the given owners, which
// must hold at least three entries.
func Properties(owners []model.Owner) []model.Property {
	type entry struct {
		name, address, code string
		price               float64
		year, owner         int
		images              []int
		traces              []model.PropertyTrace
	}
	entries := []entry{
		{
			name: "Modern House in North Zone", address: "North Ave 100", code: "PROP-001",
			price: 250000, year: 2020, owner: 0, images: []int{1, 2},
			traces: []model.PropertyTrace{{
				DateSale: date(2020, time.March, 15),
				Name:     "Initial sale",
				Value:    250000,
				Tax:      25000,
			}},
		},
		{
			name: "Historic Center Apartment", address: "Historic Center St 50", code: "PROP-002",
			price: 180000, year: 2018, owner: 1, images: []int{3},
		},
		{
			name: "Villa with Garden", address: "Green Hills Rd 300", code: "PROP-003",
			price: 450000, year: 2022, owner: 2, images: []int{4, 5, 6},
		},
		{
			name: "Industrial Loft", address: "Industrial District 200", code: "PROP-004",
			price: 320000, year: 2019, owner: 0, images: []int{7},
		},
		{
			name: "Country House", address: "La Esperanza Farm, Rural Zone", code: "PROP-005",
			price: 150000, year: 2015, owner: 1, images: []int{8},
		},
	}

	out := make([]model.Property, 0, len(entries))
	for _, e := range entries {
		p := model.Property{
			ID:           model.NewID(),
			Name:         e.name,
			Address:      e.address,
			Price:        e.price,
			CodeInternal: e.code,
			Year:         e.year,
			IDOwner:      owners[e.owner].ID,
			Images:       make([]model.PropertyImage, 0, len(e.images)),
			Traces:       make([]model.PropertyTrace, 0, len(e.traces)),
		}
		for _, n := range e.images {
			p.Images = append(p.Images, model.PropertyImage{
				ID:         model.NewID(),
				File:       fmt.Sprintf("https://picsum.photos/800/600?random=%d", n),
				Enabled:    true,
				IDProperty: p.ID,
			})
		}
		for _, tr := range e.traces {
			tr.ID = model.NewID()
			tr.IDProperty = p.ID
			p.Traces = append(p.Traces, tr)
		}
		out = append(out, p)
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
