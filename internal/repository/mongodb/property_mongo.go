package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"realestateapi/internal/model"
	"realestateapi/internal/repository"
)

// PropertyMongo is a MongoDB implementation of repository.PropertyRepository.
// Images and traces are embedded in the property document.
type PropertyMongo struct {
	coll *mongo.Collection
}

// NewPropertyMongo creates a repository over the properties collection of db.
func NewPropertyMongo(db *mongo.Database) *PropertyMongo {
	return &PropertyMongo{coll: db.Collection(PropertiesCollection)}
}

var _ repository.PropertyRepository = (*PropertyMongo)(nil)

// GetAll returns every property ordered by id.
func (r *PropertyMongo) GetAll(ctx context.Context) ([]model.Property, error) {
	return r.find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// GetByID fetches a single property. Malformed ids can never match and report ErrNotFound.
func (r *PropertyMongo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc propertyDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p := doc.toModel()
	return &p, nil
}

// GetFiltered runs the query built by BuildFilter.
func (r *PropertyMongo) GetFiltered(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	return r.find(ctx, BuildFilter(f), FindOptions(f))
}

// Create inserts a new property document.
func (r *PropertyMongo) Create(ctx context.Context, p *model.Property) error {
	doc, err := toPropertyDocument(*p)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

// CreateMany inserts all properties in a single round trip.
func (r *PropertyMongo) CreateMany(ctx context.Context, ps []model.Property) error {
	if len(ps) == 0 {
		return nil
	}
	docs := make([]any, 0, len(ps))
	for _, p := range ps {
		doc, err := toPropertyDocument(p)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// Update replaces the whole document with the same id.
func (r *PropertyMongo) Update(ctx context.Context, p *model.Property) error {
	doc, err := toPropertyDocument(*p)
	if err != nil {
		return err
	}
	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a property by id.
func (r *PropertyMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns the total number of property documents.
func (r *PropertyMongo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *PropertyMongo) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]model.Property, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]model.Property, 0)
	for cur.Next(ctx) {
		var doc propertyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		items = append(items, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
