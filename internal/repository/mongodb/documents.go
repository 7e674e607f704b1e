package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"realestateapi/internal/model"
)

// Collection names shared with the migration and seed steps.
const (
	PropertiesCollection = "properties"
	OwnersCollection     = "owners"
)

type propertyDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Price        float64            `bson:"price"`
	CodeInternal string             `bson:"codeInternal"`
	Year         int                `bson:"year"`
	IDOwner      primitive.ObjectID `bson:"idOwner"`
	Images       []imageDocument    `bson:"images"`
	Traces       []traceDocument    `bson:"traces"`
}

type imageDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	File       string             `bson:"file"`
	Enabled    bool               `bson:"enabled"`
	IDProperty primitive.ObjectID `bson:"idProperty"`
}

type traceDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	DateSale   time.Time          `bson:"dateSale"`
	Name       string             `bson:"name"`
	Value      float64            `bson:"value"`
	Tax        float64            `bson:"tax"`
	IDProperty primitive.ObjectID `bson:"idProperty"`
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	Photo    string             `bson:"photo"`
	Birthday time.Time          `bson:"birthday"`
}

func objectID(field, hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", field, hex, model.ErrInvalidID)
	}
	return oid, nil
}

func toPropertyDocument(p model.Property) (propertyDocument, error) {
	id, err := objectID("id", p.ID)
	if err != nil {
		return propertyDocument{}, err
	}
	owner, err := objectID("idOwner", p.IDOwner)
	if err != nil {
		return propertyDocument{}, err
	}

	doc := propertyDocument{
		ID:           id,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		IDOwner:      owner,
		Images:       make([]imageDocument, 0, len(p.Images)),
		Traces:       make([]traceDocument, 0, len(p.Traces)),
	}
	for _, img := range p.Images {
		imgID, err := objectID("image id", img.ID)
		if err != nil {
			return propertyDocument{}, err
		}
		doc.Images = append(doc.Images, imageDocument{ID: imgID, File: img.File, Enabled: img.Enabled, IDProperty: id})
	}
	for _, tr := range p.Traces {
		trID, err := objectID("trace id", tr.ID)
		if err != nil {
			return propertyDocument{}, err
		}
		doc.Traces = append(doc.Traces, traceDocument{
			ID:         trID,
			DateSale:   tr.DateSale,
			Name:       tr.Name,
			Value:      tr.Value,
			Tax:        tr.Tax,
			IDProperty: id,
		})
	}
	return doc, nil
}

func (d propertyDocument) toModel() model.Property {
	p := model.Property{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Address:      d.Address,
		Price:        d.Price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		IDOwner:      d.IDOwner.Hex(),
		Images:       make([]model.PropertyImage, 0, len(d.Images)),
		Traces:       make([]model.PropertyTrace, 0, len(d.Traces)),
	}
	for _, img := range d.Images {
		p.Images = append(p.Images, model.PropertyImage{
			ID:         img.ID.Hex(),
			File:       img.File,
			Enabled:    img.Enabled,
			IDProperty: img.IDProperty.Hex(),
		})
	}
	for _, tr := range d.Traces {
		p.Traces = append(p.Traces, model.PropertyTrace{
			ID:         tr.ID.Hex(),
			DateSale:   tr.DateSale.UTC(),
			Name:       tr.Name,
			Value:      tr.Value,
			Tax:        tr.Tax,
			IDProperty: tr.IDProperty.Hex(),
		})
	}
	return p
}

func toOwnerDocument(o model.Owner) (ownerDocument, error) {
	id, err := objectID("id", o.ID)
	if err != nil {
		return ownerDocument{}, err
	}
	return ownerDocument{ID: id, Name: o.Name, Address: o.Address, Photo: o.Photo, Birthday: o.Birthday}, nil
}

func (d ownerDocument) toModel() model.Owner {
	return model.Owner{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Address:  d.Address,
		Photo:    d.Photo,
		Birthday: d.Birthday.UTC(),
	}
}
