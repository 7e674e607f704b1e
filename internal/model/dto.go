package model

import "time"

// PropertyDto is the flattened, client-facing view of a Property.
// Image holds the file of the first enabled image, or null when there is none.
type PropertyDto struct {
	ID           string    `json:"id"`
	IDOwner      string    `json:"idOwner"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Price        float64   `json:"price"`
	CodeInternal string    `json:"codeInternal"`
	Year         int       `json:"year"`
	Image        *string   `json:"image"`
	Owner        *OwnerDto `json:"owner"`
}

type OwnerDto struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Photo    string    `json:"photo"`
	Birthday time.Time `json:"birthday"`
}

// TraceDto is the payload accepted when recording a sale.
type TraceDto struct {
	DateSale time.Time `json:"dateSale"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Tax      float64   `json:"tax"`
}

// PropertyFilter holds the optional search criteria for listing properties.
// Nil prices and zero Page/PageSize mean "not supplied".
type PropertyFilter struct {
	Name     string   `json:"name,omitempty"`
	Address  string   `json:"address,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"pageSize,omitempty"`
}

// IsEmpty reports whether no criterion at all was supplied.
func (f PropertyFilter) IsEmpty() bool {
	return f.Name == "" && f.Address == "" && f.MinPrice == nil && f.MaxPrice == nil && f.Page == 0 && f.PageSize == 0
}

// Paginated reports whether both Page and PageSize are positive.
func (f PropertyFilter) Paginated() bool {
	return f.Page > 0 && f.PageSize > 0
}

// Skip returns the number of records to skip for the requested page.
func (f PropertyFilter) Skip() int {
	if !f.Paginated() {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
