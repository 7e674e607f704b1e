package mongodb

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"realestateapi/internal/model"
	"realestateapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNS = "realestate.properties"

func propertyBSON(id, owner primitive.ObjectID, name string, images ...bson.D) bson.D {
	imgs := bson.A{}
	for _, img := range images {
		imgs = append(imgs, img)
	}
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "address", Value: "North Ave 100"},
		{Key: "price", Value: 250000.0},
		{Key: "codeInternal", Value: "PROP-001"},
		{Key: "year", Value: int32(2020)},
		{Key: "idOwner", Value: owner},
		{Key: "images", Value: imgs},
		{Key: "traces", Value: bson.A{}},
	}
}

func TestPropertyMongo_GetAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns decoded properties", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		id1, id2, owner := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

		img := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "file", Value: "https://picsum.photos/800/600?random=1"},
			{Key: "enabled", Value: true},
			{Key: "idProperty", Value: id1},
		}
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, testNS, mtest.FirstBatch,
				propertyBSON(id1, owner, "Modern House", img),
				propertyBSON(id2, owner, "Loft"),
			),
			mtest.CreateCursorResponse(0, testNS, mtest.NextBatch),
		)

		got, err := repo.GetAll(context.Background())

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, id1.Hex(), got[0].ID)
		assert.Equal(t, owner.Hex(), got[0].IDOwner)
		assert.Equal(t, 2020, got[0].Year)
		require.Len(t, got[0].Images, 1)
		assert.True(t, got[0].Images[0].Enabled)
		assert.Equal(t, id1.Hex(), got[0].Images[0].IDProperty)
		assert.Equal(t, "Loft", got[1].Name)
	})

	mt.Run("store error", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		got, err := repo.GetAll(context.Background())

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestPropertyMongo_GetFiltered(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sends filter with skip and limit", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			propertyBSON(primitive.NewObjectID(), primitive.NewObjectID(), "Country House"),
		))

		got, err := repo.GetFiltered(context.Background(), model.PropertyFilter{Name: "house", Page: 2, PageSize: 1})

		require.NoError(t, err)
		assert.Len(t, got, 1)

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		assert.Equal(t, "find", evt.CommandName)
		assert.EqualValues(t, 1, evt.Command.Lookup("skip").AsInt64())
		assert.EqualValues(t, 1, evt.Command.Lookup("limit").AsInt64())
		_, hasFilter := evt.Command.Lookup("filter").DocumentOK()
		assert.True(t, hasFilter)
	})

	mt.Run("empty result is non-nil", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		got, err := repo.GetFiltered(context.Background(), model.PropertyFilter{Address: "nowhere"})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}

func TestPropertyMongo_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			propertyBSON(id, primitive.NewObjectID(), "Villa"),
		))

		got, err := repo.GetByID(context.Background(), id.Hex())

		require.NoError(t, err)
		assert.Equal(t, id.Hex(), got.ID)
		assert.Equal(t, "Villa", got.Name)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		got, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		got, err := repo.GetByID(context.Background(), "not-an-id")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestPropertyMongo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &model.Property{
			ID:      model.NewID(),
			Name:    "Loft",
			IDOwner: model.NewID(),
			Traces: []model.PropertyTrace{{
				ID:       model.NewID(),
				DateSale: time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC),
				Name:     "Initial sale",
			}},
		}
		assert.NoError(t, repo.Create(context.Background(), p))
	})

	mt.Run("invalid owner id", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)

		err := repo.Create(context.Background(), &model.Property{ID: model.NewID(), IDOwner: "bad"})

		assert.ErrorIs(t, err, model.ErrInvalidID)
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &model.Property{ID: model.NewID(), IDOwner: model.NewID()})

		assert.Error(t, err)
	})
}

func TestPropertyMongo_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replaced", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := repo.Update(context.Background(), &model.Property{ID: model.NewID(), IDOwner: model.NewID()})

		assert.NoError(t, err)
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := repo.Update(context.Background(), &model.Property{ID: model.NewID(), IDOwner: model.NewID()})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPropertyMongo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(context.Background(), model.NewID()))
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(t, repo.Delete(context.Background(), model.NewID()), repository.ErrNotFound)
	})
}

func TestPropertyMongo_Count(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count", func(mt *mtest.T) {
		repo := NewPropertyMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(5)}},
		))

		n, err := repo.Count(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(5), n)
	})
}

func TestOwnerMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ownersNS := "realestate.owners"

	mt.Run("get all", func(mt *mtest.T) {
		repo := NewOwnerMongo(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ownersNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "John Perez"},
			{Key: "address", Value: "Main Ave 123"},
			{Key: "photo", Value: "https://i.pravatar.cc/150?img=1"},
			{Key: "birthday", Value: time.Date(1980, 5, 15, 0, 0, 0, 0, time.UTC)},
		}))

		owners, err := repo.GetAll(context.Background())

		require.NoError(t, err)
		require.Len(t, owners, 1)
		assert.Equal(t, id.Hex(), owners[0].ID)
		assert.Equal(t, 1980, owners[0].Birthday.Year())
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewOwnerMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ownersNS, mtest.FirstBatch))

		o, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, o)
	})

	mt.Run("create many", func(mt *mtest.T) {
		repo := NewOwnerMongo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.CreateMany(context.Background(), []model.Owner{{ID: model.NewID(), Name: "Maria Gonzalez"}})

		assert.NoError(t, err)
	})
}
