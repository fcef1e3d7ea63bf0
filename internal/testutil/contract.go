package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/repository"
)

// RunRepositoryContract exercises the behaviour every TaskRepository backend
// must share. newRepo must return an empty repository on each call.
func RunRepositoryContract(t *testing.T, newRepo func(t *testing.T) repository.TaskRepository) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		repo := newRepo(t)
		tasks, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("List: got %#v, want empty non-nil slice", tasks)
		}
	})

	t.Run("create then get", func(t *testing.T) {
		repo := newRepo(t)
		want := domain.Task{ID: 1, Text: "Buy milk", Day: "Wed, May 04", Reminder: true}
		if err := repo.Create(ctx, &want); err != nil {
			t.Fatalf("Create: %v", err)
		}
		got, err := repo.GetByID(ctx, 1)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if *got != want {
			t.Errorf("GetByID: got %+v, want %+v", *got, want)
		}
	})

	t.Run("list returns every created task", func(t *testing.T) {
		repo := newRepo(t)
		ids := []int64{3, -7, 1, 42}
		for _, id := range ids {
			task := domain.Task{ID: id, Text: fmt.Sprintf("task %d", id), Day: "Wed, May 04"}
			if err := repo.Create(ctx, &task); err != nil {
				t.Fatalf("Create(%d): %v", id, err)
			}
		}
		tasks, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(tasks) != len(ids) {
			t.Fatalf("List: got %d tasks, want %d", len(tasks), len(ids))
		}
		for _, id := range ids {
			if _, err := repo.GetByID(ctx, id); err != nil {
				t.Errorf("GetByID(%d): %v", id, err)
			}
		}
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		repo := newRepo(t)
		task := domain.Task{ID: 5, Text: "first", Day: "Wed, May 04"}
		if err := repo.Create(ctx, &task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		dup := domain.Task{ID: 5, Text: "second", Day: "Thu, May 05"}
		err := repo.Create(ctx, &dup)
		if !domain.IsDomainError(err, domain.ErrCodeConflict) {
			t.Fatalf("Create duplicate: got %v, want CONFLICT", err)
		}
		got, _ := repo.GetByID(ctx, 5)
		if got == nil || got.Text != "first" {
			t.Errorf("original task overwritten: %+v", got)
		}
	})

	t.Run("update replaces fields", func(t *testing.T) {
		repo := newRepo(t)
		task := domain.Task{ID: 2, Text: "old", Day: "Wed, May 04", Reminder: true}
		if err := repo.Create(ctx, &task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		updated := domain.Task{ID: 2, Text: "new", Day: "Thu, May 05", Reminder: false}
		if err := repo.Update(ctx, &updated); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, 2)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if *got != updated {
			t.Errorf("GetByID after update: got %+v, want %+v", *got, updated)
		}
	})

	t.Run("delete removes task", func(t *testing.T) {
		repo := newRepo(t)
		task := domain.Task{ID: 9, Text: "gone soon", Day: "Wed, May 04"}
		if err := repo.Create(ctx, &task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := repo.Delete(ctx, 9); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, 9); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			t.Errorf("GetByID after delete: got %v, want NOT_FOUND", err)
		}
		if err := repo.Delete(ctx, 9); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			t.Errorf("second Delete: got %v, want NOT_FOUND", err)
		}
	})

	t.Run("missing id is not found and named", func(t *testing.T) {
		repo := newRepo(t)
		checks := map[string]error{}
		_, checks["get"] = repo.GetByID(ctx, 404)
		checks["update"] = repo.Update(ctx, &domain.Task{ID: 404, Text: "x", Day: "y"})
		checks["delete"] = repo.Delete(ctx, 404)

		for op, err := range checks {
			if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
				t.Errorf("%s: got %v, want NOT_FOUND", op, err)
				continue
			}
			if !strings.Contains(err.Error(), "404") {
				t.Errorf("%s: message %q does not name the id", op, err.Error())
			}
		}
	})

	t.Run("ping", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.Ping(ctx); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})
}
