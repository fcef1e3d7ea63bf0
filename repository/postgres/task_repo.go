package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	const query = `
	SELECT id, text, day, reminder
	FROM tasks
	ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows, 0)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
	SELECT id, text, day, reminder
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row, id)
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (id, text, day, reminder)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := r.pool.Exec(ctx, query, task.ID, task.Text, task.Day, task.Reminder); err != nil {
		if isUniqueViolation(err) {
			return domain.TaskConflict(task.ID)
		}
		return domain.Storage("insert task", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET text = $2,
		day = $3,
		reminder = $4
	WHERE id = $1
	RETURNING id, text, day, reminder
	`
	row := r.pool.QueryRow(ctx, query, task.ID, task.Text, task.Day, task.Reminder)
	updated, err := scanTask(row, task.ID)
	if err != nil {
		return err
	}
	*task = *updated
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return domain.Storage("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.TaskNotFound(id)
	}
	return nil
}

func (r *taskRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(&task.ID, &task.Text, &task.Day, &task.Reminder); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.TaskNotFound(id)
		}
		return nil, domain.Storage("scan task", err)
	}
	return &task, nil
}
