package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"

	bbolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

// Bucket holds one JSON-encoded task per key.
const Bucket = "tasks"

type taskRepository struct {
	db     *bbolt.DB
	bucket []byte
}

// NewTaskRepository returns a bbolt-backed TaskRepository. The bucket must
// already exist (see boltdb.Open).
func NewTaskRepository(db *bbolt.DB) repository.TaskRepository {
	return &taskRepository{db: db, bucket: []byte(Bucket)}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	err := r.db.View(func(tx *bbolt.Tx) error {
		return r.tasks(tx).ForEach(func(_, v []byte) error {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			tasks = append(tasks, task)
			return nil
		})
	})
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task *domain.Task
	err := r.db.View(func(tx *bbolt.Tx) error {
		v := r.tasks(tx).Get(key(id))
		if v == nil {
			return domain.TaskNotFound(id)
		}
		task = &domain.Task{}
		return json.Unmarshal(v, task)
	})
	if err != nil {
		return nil, domain.Storage("get task", err)
	}
	return task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := r.tasks(tx)
		if b.Get(key(task.ID)) != nil {
			return domain.TaskConflict(task.ID)
		}
		return put(b, task)
	})
	return domain.Storage("insert task", err)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := r.tasks(tx)
		if b.Get(key(task.ID)) == nil {
			return domain.TaskNotFound(task.ID)
		}
		return put(b, task)
	})
	return domain.Storage("update task", err)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.Update(func(tx *bbolt.Tx) error {
		b := r.tasks(tx)
		if b.Get(key(id)) == nil {
			return domain.TaskNotFound(id)
		}
		return b.Delete(key(id))
	})
	return domain.Storage("delete task", err)
}

func (r *taskRepository) Ping(ctx context.Context) error {
	return r.db.View(func(tx *bbolt.Tx) error {
		if r.tasks(tx) == nil {
			return bbolt.ErrBucketNotFound
		}
		return nil
	})
}

func (r *taskRepository) tasks(tx *bbolt.Tx) *bbolt.Bucket {
	return tx.Bucket(r.bucket)
}

func put(b *bbolt.Bucket, task *domain.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return b.Put(key(task.ID), payload)
}

// key flips the sign bit so negative ids sort before positive ones.
func key(id int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id)^(1<<63))
	return k
}
