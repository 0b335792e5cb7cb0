package repository

import (
	"context"
	"errors"
	"fmt"

	"productivity/model"
	"productivity/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tasksCollection = "tasks"

type TasksRepo struct {
	MongoCollection *mongo.Collection
}

// GetTasksRepo returns the repo for the named database and collection.
func GetTasksRepo(client *mongo.Client, dbName, collectionName string) *TasksRepo {
	if collectionName == "" {
		collectionName = tasksCollection
	}
	return &TasksRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Add a new task into the collection
func (r *TasksRepo) Insert(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", tasksCollection)
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, task); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrTaskAlreadyExists
		}
		utils.TrackError("database", "task_creation_failed")
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Adds a batch of tasks in one round trip
func (r *TasksRepo) InsertMany(ctx context.Context, tasks []*model.Task) error {
	timer := utils.TrackDBOperation("insert_many", tasksCollection)
	defer timer.ObserveDuration()

	if len(tasks) == 0 {
		return nil
	}

	docs := make([]interface{}, len(tasks))
	for i, t := range tasks {
		docs[i] = t
	}

	if _, err := r.MongoCollection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrTaskAlreadyExists
		}
		utils.TrackError("database", "task_batch_creation_failed")
		return fmt.Errorf("insert tasks: %w", err)
	}
	return nil
}

// Retrieves a single task by id
func (r *TasksRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", tasksCollection)
	defer timer.ObserveDuration()

	var task model.Task
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrTaskNotFound
		}
		utils.TrackError("database", "task_fetch_failed")
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// Replaces every mutable field of a stored task
func (r *TasksRepo) Update(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("update", tasksCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		utils.TrackError("database", "task_update_failed")
		return fmt.Errorf("update task: %w", err)
	}

	if result.MatchedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return model.ErrTaskNotFound
	}
	return nil
}

// Removes a specific task from the collection
func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", tasksCollection)
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.TrackError("database", "task_deletion_failed")
		return fmt.Errorf("delete task: %w", err)
	}

	if result.DeletedCount == 0 {
		utils.TrackError("database", "task_not_found")
		return model.ErrTaskNotFound
	}
	return nil
}

// Retrieves every task, oldest first
func (r *TasksRepo) All(ctx context.Context) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", tasksCollection)
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.TrackError("database", "task_fetch_failed")
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []*model.Task{}
	if err = cursor.All(ctx, &tasks); err != nil {
		utils.TrackError("database", "task_decode_failed")
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
