package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/internal/testutil"
	"github.com/fastygo/tasks/repository"
)

func TestTaskRepositoryContract(t *testing.T) {
	testutil.RunRepositoryContract(t, func(t *testing.T) repository.TaskRepository {
		repo, err := Open(filepath.Join(t.TempDir(), "db.json"), nil)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		return repo
	})
}

func TestOpenCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "db.json")
	if _, err := Open(path, nil); err != nil {
		t.Fatalf("open: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc map[string][]domain.Task
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("document is not JSON: %v", err)
	}
	tasks, ok := doc["tasks"]
	if !ok || len(tasks) != 0 {
		t.Errorf("got %s, want empty tasks document", raw)
	}
}

func TestOpenLeavesExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	seed := `{"tasks":[{"id":7,"text":"seeded","day":"Wed, May 04 2023","reminder":false}]}`
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "seeded" {
		t.Errorf("got %+v", got)
	}
}

func TestListKeepsAppendOrder(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "db.json"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ids := []int64{5, 1, 3}
	for _, id := range ids {
		task := domain.Task{ID: id, Text: "t", Day: "d"}
		if err := repo.Create(ctx, &task); err != nil {
			t.Fatalf("Create(%d): %v", id, err)
		}
	}
	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i, id := range ids {
		if tasks[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, tasks[i].ID, id)
		}
	}
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	repo, err := Open(filepath.Join(t.TempDir(), "db.json"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			task := domain.Task{ID: id, Text: "concurrent", Day: "d"}
			if err := repo.Create(ctx, &task); err != nil {
				t.Errorf("Create(%d): %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != n {
		t.Errorf("got %d tasks, want %d", len(tasks), n)
	}
}

func TestCorruptDocumentIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, err := repo.List(context.Background()); !domain.IsDomainError(err, domain.ErrCodeStorage) {
		t.Errorf("List: got %v, want STORAGE", err)
	}
	if err := repo.Ping(context.Background()); err == nil {
		t.Error("Ping: expected error for corrupt document")
	}
}

func TestWritesKeepFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	repo, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	assertMode(t, path, 0o644)

	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := repo.Create(ctx, &domain.Task{ID: 1, Text: "a", Day: "Thu, May 04"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	assertMode(t, path, 0o640)

	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	assertMode(t, path, 0o640)
}

func assertMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("mode: got %o, want %o", got, want)
	}
}
