package model

import "time"

// Property is a listing for sale. Images and Traces are only changed through
// their own endpoints; a PUT replaces the scalar fields and keeps both lists.
type Property struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        float64         `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	IDOwner      string          `json:"idOwner"`
	Images       []PropertyImage `json:"images"`
	Traces       []PropertyTrace `json:"traces"`
}

// PropertyImage is a picture attached to a property. Only enabled images are shown.
type PropertyImage struct {
	ID         string `json:"id"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
	IDProperty string `json:"idProperty"`
}

// PropertyTrace records one historical sale of a property.
type PropertyTrace struct {
	ID         string    `json:"id"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Tax        float64   `json:"tax"`
	IDProperty string    `json:"idProperty"`
}

// Owner is the person a property belongs to.
type Owner struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Photo    string    `json:"photo"`
	Birthday time.Time `json:"birthday"`
}
