// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

// FakeTaskRepository is an in-memory implementation of repository.TaskRepository for testing.
type FakeTaskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task

	// Error injection for testing
	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	PingErr   error
}

// NewFakeTaskRepository creates an empty FakeTaskRepository.
func NewFakeTaskRepository() *FakeTaskRepository {
	return &FakeTaskRepository{}
}

// AddTask seeds a task without any checks.
func (f *FakeTaskRepository) AddTask(task domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// Len returns the number of stored tasks.
func (f *FakeTaskRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.tasks)
}

// List implements repository.TaskRepository.
func (f *FakeTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]domain.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetByID implements repository.TaskRepository.
func (f *FakeTaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.index(id)
	if i < 0 {
		return nil, domain.TaskNotFound(id)
	}
	task := f.tasks[i]
	return &task, nil
}

// Create implements repository.TaskRepository.
func (f *FakeTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index(task.ID) >= 0 {
		return domain.TaskConflict(task.ID)
	}
	f.tasks = append(f.tasks, *task)
	return nil
}

// Update implements repository.TaskRepository.
func (f *FakeTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(task.ID)
	if i < 0 {
		return domain.TaskNotFound(task.ID)
	}
	f.tasks[i] = *task
	return nil
}

// Delete implements repository.TaskRepository.
func (f *FakeTaskRepository) Delete(ctx context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return domain.TaskNotFound(id)
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// Ping implements repository.TaskRepository.
func (f *FakeTaskRepository) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *FakeTaskRepository) index(id int64) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

var _ repository.TaskRepository = (*FakeTaskRepository)(nil)
