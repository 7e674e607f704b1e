package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"realestateapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestMongoClientOptions(t *testing.T) {
	t.Run("applies uri and timeouts", func(t *testing.T) {
		opts, err := MongoClientOptions(config.MongoConfig{
			URI:        "mongodb://db.internal:27017",
			Database:   "realestate",
			TimeoutSec: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"db.internal:27017"}, opts.Hosts)
		require.NotNil(t, opts.ConnectTimeout)
		assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
		require.NotNil(t, opts.ServerSelectionTimeout)
		assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
		assert.NotNil(t, opts.Monitor)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := MongoClientOptions(config.MongoConfig{URI: "mongodb://localhost:27017"})
		assert.Error(t, err)

		_, err = MongoClientOptions(config.MongoConfig{Database: "realestate"})
		assert.Error(t, err)
	})
}

func TestNewMongo(t *testing.T) {
	t.Run("connect error", func(t *testing.T) {
		orig := mongoConnect
		mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
			return nil, errors.New("dial refused")
		}
		defer func() { mongoConnect = orig }()

		client, err := NewMongo(context.Background(), config.MongoConfig{URI: "mongodb://localhost:27017", Database: "realestate"})
		assert.EqualError(t, err, "mongo connect: dial refused")
		assert.Nil(t, client)
	})

	t.Run("invalid config", func(t *testing.T) {
		client, err := NewMongo(context.Background(), config.MongoConfig{})
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("ping error", func(t *testing.T) {
		client, err := NewMongo(context.Background(), config.MongoConfig{
			URI:        "mongodb://127.0.0.1:1/?connect=direct",
			Database:   "realestate",
			TimeoutSec: 1,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "mongo ping")
		assert.Nil(t, client)
	})
}
