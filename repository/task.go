package repository

import (
	"context"

	"github.com/fastygo/tasks/domain"
)

// TaskRepository is the persistence contract every store backend satisfies.
// Missing ids surface as NOT_FOUND domain errors, duplicate ids on Create as
// CONFLICT, and backend failures as STORAGE.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
