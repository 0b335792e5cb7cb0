package usecase

import (
	"context"

	"productivity/model"
)

// TaskStore persists tasks. Get, Update and Delete return
// model.ErrTaskNotFound for unknown ids.
type TaskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	InsertMany(ctx context.Context, tasks []*model.Task) error
	Get(ctx context.Context, id string) (*model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]*model.Task, error)
}

// Notifier holds the current transient notice.
type Notifier interface {
	Post(ctx context.Context, kind model.NoticeKind, message string) error
	Current(ctx context.Context) (*model.Notice, error)
}

type nopNotifier struct{}

func (nopNotifier) Post(context.Context, model.NoticeKind, string) error { return nil }

func (nopNotifier) Current(context.Context) (*model.Notice, error) { return nil, nil }
