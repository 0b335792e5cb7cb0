package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"productivity/model"
	"productivity/utils"
)

type taskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	InsertMany(ctx context.Context, tasks []*model.Task) error
	Get(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*model.Task, error)
}

// exerciseStore runs the same contract checks against any backend.
func exerciseStore(t *testing.T, store taskStore) {
	ctx := context.Background()
	due := time.Date(2026, time.October, 16, 17, 0, 0, 0, time.UTC)
	day := 6

	task := newTask(uuid.New().String(), "Integration")
	task.DueDate = &due
	task.DayOfWeek = &day
	task.Recurrence = model.RecurrenceWeekly
	task.Link = "https://example.com"
	task.Tags = []string{"Work", "home"}

	require.NoError(t, store.Insert(ctx, task))
	assert.ErrorIs(t, store.Insert(ctx, task), model.ErrTaskAlreadyExists)

	got, err := store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Tags, got.Tags)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	require.NotNil(t, got.DayOfWeek)
	assert.Equal(t, 6, *got.DayOfWeek)

	got.Status = model.StatusDone
	require.NoError(t, store.Update(ctx, got))
	got, err = store.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)

	batch := []*model.Task{newTask(uuid.New().String(), "One"), newTask(uuid.New().String(), "Two")}
	require.NoError(t, store.InsertMany(ctx, batch))

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 3)

	for _, id := range []string{task.ID, batch[0].ID, batch[1].ID} {
		require.NoError(t, store.Delete(ctx, id))
	}
	_, err = store.Get(ctx, task.ID)
	assert.ErrorIs(t, err, model.ErrTaskNotFound)
	assert.ErrorIs(t, store.Delete(ctx, task.ID), model.ErrTaskNotFound)
}

func TestTasksRepo_Mongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())
	require.NoError(t, client.Ping(ctx, readpref.Primary()))

	repo := GetTasksRepo(client, "productivity_test", "tasks_"+uuid.NewString()[:8])
	defer repo.MongoCollection.Drop(context.Background())

	require.NoError(t, SetupIndexes(repo.MongoCollection, utils.DiscardLogger()))
	exerciseStore(t, repo)
}

func TestPostgresTasksRepo(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	repo, err := NewPostgresTasksRepo(utils.DiscardLogger(), dsn)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Migrate(context.Background()))
	exerciseStore(t, repo)

	bad := newTask(uuid.New().String(), "Off board but started")
	bad.IsOnBoard = false
	bad.Status = model.StatusInProgress
	assert.ErrorIs(t, repo.Insert(context.Background(), bad), model.ErrTaskInvalid)
}
