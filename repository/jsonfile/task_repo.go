// Package jsonfile stores tasks in a single JSON document of the form
// {"tasks": [...]}. Every mutation rewrites the whole document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

const defaultFileMode fs.FileMode = 0o644

type document struct {
	Tasks []domain.Task `json:"tasks"`
}

// TaskRepository keeps the document on disk and never caches it; mu makes
// this process the single writer so read-modify-write cycles don't interleave.
type TaskRepository struct {
	path string
	mu   sync.RWMutex
}

// Open checks for the document at path and creates an empty one when it is missing.
func Open(path string, logger *zap.Logger) (*TaskRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &TaskRepository{path: path}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		logger.Info("task store exists", zap.String("driver", "jsonfile"), zap.String("path", path))
		return r, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	logger.Warn("task store doesn't exist, creating", zap.String("driver", "jsonfile"), zap.String("path", path))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if err := r.write(&document{Tasks: []domain.Task{}}); err != nil {
		return nil, err
	}
	logger.Info("task store created", zap.String("driver", "jsonfile"), zap.String("path", path))
	return r, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.read()
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	return doc.Tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.read()
	if err != nil {
		return nil, domain.Storage("get task", err)
	}
	i := doc.index(id)
	if i < 0 {
		return nil, domain.TaskNotFound(id)
	}
	task := doc.Tasks[i]
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return r.mutate("insert task", func(doc *document) error {
		if doc.index(task.ID) >= 0 {
			return domain.TaskConflict(task.ID)
		}
		doc.Tasks = append(doc.Tasks, *task)
		return nil
	})
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	return r.mutate("update task", func(doc *document) error {
		i := doc.index(task.ID)
		if i < 0 {
			return domain.TaskNotFound(task.ID)
		}
		doc.Tasks[i] = *task
		return nil
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.mutate("delete task", func(doc *document) error {
		i := doc.index(id)
		if i < 0 {
			return domain.TaskNotFound(id)
		}
		doc.Tasks = append(doc.Tasks[:i], doc.Tasks[i+1:]...)
		return nil
	})
}

// Ping verifies the document is still readable and well-formed.
func (r *TaskRepository) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, err := r.read()
	return err
}

func (r *TaskRepository) mutate(op string, fn func(doc *document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return domain.Storage(op, err)
	}
	if err := fn(doc); err != nil {
		return err
	}
	return domain.Storage(op, r.write(doc))
}

func (r *TaskRepository) read() (*document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Tasks == nil {
		doc.Tasks = []domain.Task{}
	}
	return &doc, nil
}

// write replaces the document atomically via a sibling temp file. The
// document keeps its permission bits across rewrites.
func (r *TaskRepository) write(doc *document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	mode := defaultFileMode
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (d *document) index(id int64) int {
	for i, t := range d.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
