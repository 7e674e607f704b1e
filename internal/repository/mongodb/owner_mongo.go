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

// OwnerMongo is a MongoDB implementation of repository.OwnerRepository.
type OwnerMongo struct {
	coll *mongo.Collection
}

func NewOwnerMongo(db *mongo.Database) *OwnerMongo {
	return &OwnerMongo{coll: db.Collection(OwnersCollection)}
}

var _ repository.OwnerRepository = (*OwnerMongo)(nil)

func (r *OwnerMongo) GetAll(ctx context.Context) ([]model.Owner, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	owners := make([]model.Owner, 0)
	for cur.Next(ctx) {
		var doc ownerDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode owner: %w", err)
		}
		owners = append(owners, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return owners, nil
}

func (r *OwnerMongo) GetByID(ctx context.Context, id string) (*model.Owner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc ownerDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	o := doc.toModel()
	return &o, nil
}

func (r *OwnerMongo) CreateMany(ctx context.Context, owners []model.Owner) error {
	if len(owners) == 0 {
		return nil
	}
	docs := make([]any, 0, len(owners))
	for _, o := range owners {
		doc, err := toOwnerDocument(o)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}
