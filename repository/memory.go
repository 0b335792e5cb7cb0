package repository

import (
	"context"
	"sync"

	"productivity/model"
	"productivity/utils"
)

const memoryCollection = "tasks_memory"

// MemoryTaskRepo keeps tasks in a map. Tasks are cloned on the way in and out
// so callers never share state with the store.
type MemoryTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
	order []string
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		tasks: make(map[string]*model.Task),
	}
}

func (r *MemoryTaskRepo) Insert(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("insert", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; ok {
		return model.ErrTaskAlreadyExists
	}
	r.put(task)
	return nil
}

// InsertMany stores all tasks or none of them.
func (r *MemoryTaskRepo) InsertMany(ctx context.Context, tasks []*model.Task) error {
	timer := utils.TrackDBOperation("insert_many", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if _, ok := r.tasks[t.ID]; ok {
			return model.ErrTaskAlreadyExists
		}
		if _, ok := seen[t.ID]; ok {
			return model.ErrTaskAlreadyExists
		}
		seen[t.ID] = struct{}{}
	}
	for _, t := range tasks {
		r.put(t)
	}
	return nil
}

func (r *MemoryTaskRepo) Get(ctx context.Context, id string) (*model.Task, error) {
	timer := utils.TrackDBOperation("find", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, model.ErrTaskNotFound
	}
	return t.Clone(), nil
}

func (r *MemoryTaskRepo) Update(ctx context.Context, task *model.Task) error {
	timer := utils.TrackDBOperation("update", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return model.ErrTaskNotFound
	}
	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *MemoryTaskRepo) Delete(ctx context.Context, id string) error {
	timer := utils.TrackDBOperation("delete", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return model.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// All returns every task in insertion order.
func (r *MemoryTaskRepo) All(ctx context.Context) ([]*model.Task, error) {
	timer := utils.TrackDBOperation("find", memoryCollection)
	defer timer.ObserveDuration()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id].Clone())
	}
	return out, nil
}

func (r *MemoryTaskRepo) put(task *model.Task) {
	r.tasks[task.ID] = task.Clone()
	r.order = append(r.order, task.ID)
}
