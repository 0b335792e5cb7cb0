package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the task views query by.
func SetupIndexes(coll *mongo.Collection, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taskIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().
				SetName("tasks_created"),
		},
		// Board columns and status filters
		{
			Keys: bson.D{
				{Key: "is_on_board", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().
				SetName("tasks_board_status"),
		},
		// Today view
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "due_date", Value: 1},
			},
			Options: options.Index().
				SetName("tasks_status_due"),
		},
		// Recurring grid
		{
			Keys: bson.D{
				{Key: "recurrence", Value: 1},
				{Key: "day_of_week", Value: 1},
			},
			Options: options.Index().
				SetName("tasks_recurring_day"),
		},
		{
			Keys: bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().
				SetName("tasks_tags"),
		},
		// Text search index
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "details", Value: "text"},
			},
			Options: options.Index().
				SetName("tasks_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "details", Value: 5},
				}),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}

	log.Info("task indexes ready", "collection", coll.Name())
	return nil
}
