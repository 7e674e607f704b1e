package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"realestateapi/internal/repository/mongodb"
)

type indexStep struct {
	Name       string
	Collection string
	Model      mongo.IndexModel
}

var indexSteps = []indexStep{
	{
		Name:       "create_index_properties_price",
		Collection: mongodb.PropertiesCollection,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_properties_price"),
		},
	},
	{
		Name:       "create_index_properties_owner",
		Collection: mongodb.PropertiesCollection,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "idOwner", Value: 1}},
			Options: options.Index().SetName("idx_properties_owner"),
		},
	},
	{
		Name:       "create_index_properties_code",
		Collection: mongodb.PropertiesCollection,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "codeInternal", Value: 1}},
			Options: options.Index().SetName("idx_properties_code"),
		},
	},
}

// EnsureIndexes creates the secondary indexes used by the filtered search.
// Index creation is idempotent, so it runs on every start. Collections are
// created implicitly by the first index.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *slog.Logger) error {
	start := time.Now()
	log = log.With("component", "database", "db_name", db.Name())

	for _, step := range indexSteps {
		stepStart := time.Now()
		if _, err := db.Collection(step.Collection).Indexes().CreateOne(ctx, step.Model); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.DebugContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
